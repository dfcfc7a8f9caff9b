package menubar

import (
	_ "embed"
)

// Icon is a menu-bar icon variant.
type Icon int

// Icon variants. The disabled variants are shown while automatic muting is
// suspended.
const (
	IconSpeaker Icon = iota
	IconHeadphones
	IconSpeakerDisabled
	IconHeadphonesDisabled
	IconBlank
)

var (
	//go:embed icons/speaker.png
	speakerPNG []byte
	//go:embed icons/headphones.png
	headphonesPNG []byte
	//go:embed icons/speaker_disabled.png
	speakerDisabledPNG []byte
	//go:embed icons/headphones_disabled.png
	headphonesDisabledPNG []byte
	//go:embed icons/blank.png
	blankPNG []byte
)

// IconFor picks the variant for the given headphone and muting state.
func IconFor(headphonesConnected, mutingEnabled bool) Icon {
	switch {
	case headphonesConnected && mutingEnabled:
		return IconHeadphones
	case headphonesConnected:
		return IconHeadphonesDisabled
	case mutingEnabled:
		return IconSpeaker
	default:
		return IconSpeakerDisabled
	}
}

// PNG returns the template image for the variant.
func (i Icon) PNG() []byte {
	switch i {
	case IconHeadphones:
		return headphonesPNG
	case IconSpeakerDisabled:
		return speakerDisabledPNG
	case IconHeadphonesDisabled:
		return headphonesDisabledPNG
	case IconBlank:
		return blankPNG
	default:
		return speakerPNG
	}
}

func (i Icon) String() string {
	switch i {
	case IconSpeaker:
		return "speaker"
	case IconHeadphones:
		return "headphones"
	case IconSpeakerDisabled:
		return "speaker-disabled"
	case IconHeadphonesDisabled:
		return "headphones-disabled"
	case IconBlank:
		return "blank"
	default:
		return "unknown"
	}
}
