// Package ui provides a descriptor-driven HUD for the simulation.
// Panels are described as sections of fields with value getters, so the
// layout can change alongside the data it shows.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Bar centred on zero
	WidgetColorSwatch                   // Colour preview square
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single value.
type FieldDescriptor struct {
	Label       string
	Widget      WidgetType
	Format      string // Printf format when Getter is used for text
	Range       FieldRange
	Visible     func(HUDData) bool // nil = always visible
	Getter      func(HUDData) float32
	TextGetter  func(HUDData) string
	ColorGetter func(HUDData) rl.Color
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(HUDData) bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 10, G: 20, B: 35, A: 200},
		PanelBorder:     rl.Color{R: 70, G: 90, B: 110, A: 255},
		SectionHeader:   rl.Color{R: 150, G: 210, B: 240, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 30, G: 40, B: 50, A: 255},
		BarFill:         rl.Color{R: 90, G: 160, B: 210, A: 255},
		BarFillNegative: rl.Color{R: 210, G: 120, B: 90, A: 255},
		BarFillPositive: rl.Color{R: 110, G: 200, B: 140, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      80,
		BarHeight:       10,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
