package ui

import "image/color"

type Theme struct {
	AppBackground color.RGBA
	TopBar        color.RGBA
	Pane          color.RGBA
	Panel         color.RGBA
	PanelRowSel   color.RGBA
	Border        color.RGBA
	StatusBar     color.RGBA
	Accent        color.RGBA
	Text          color.RGBA
	TextMuted     color.RGBA
	Tooltip       color.RGBA

	TopBarHeightDp   int
	StatusHeightDp   int
	PanelWidthDp     int
	PanelRowHeightDp int
	PaneMarginDp     int
}

func DefaultTheme() Theme {
	return Theme{
		AppBackground: color.RGBA{0x1B, 0x1E, 0x24, 0xFF},
		TopBar:        color.RGBA{0x23, 0x27, 0x2F, 0xFF},
		Pane:          color.RGBA{0x15, 0x17, 0x1C, 0xFF},
		Panel:         color.RGBA{0x20, 0x24, 0x2B, 0xFF},
		PanelRowSel:   color.RGBA{0x33, 0x4A, 0x6E, 0xFF},
		Border:        color.RGBA{0x3A, 0x40, 0x4C, 0xFF},
		StatusBar:     color.RGBA{0x23, 0x27, 0x2F, 0xFF},
		Accent:        color.RGBA{0x00, 0x80, 0x80, 0xFF},
		Text:          color.RGBA{0xE6, 0xE8, 0xEC, 0xFF},
		TextMuted:     color.RGBA{0x8C, 0x96, 0xAA, 0xFF},
		Tooltip:       color.RGBA{0x30, 0x34, 0x3E, 0xF0},

		TopBarHeightDp:   30,
		StatusHeightDp:   26,
		PanelWidthDp:     260,
		PanelRowHeightDp: 22,
		PaneMarginDp:     8,
	}
}
