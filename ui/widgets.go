package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the next Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for a value in rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	frac := normalize(value, rng)
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 45

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*frac), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar growing left or right of its centre.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 45
	centerX := barX + barWidth/2

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, r.Theme.PanelBorder)

	limit := max(float32(math.Abs(float64(rng.Min))), float32(math.Abs(float64(rng.Max))))
	fillWidth := int32(0)
	if limit > 0 {
		fillWidth = int32(float32(barWidth/2) * min(1, float32(math.Abs(float64(value)))/limit))
	}
	fillX, color := centerX, r.Theme.BarFillPositive
	if value < 0 {
		fillX, color = centerX-fillWidth, r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, color)
	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawColorSwatch draws a colour swatch.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, 12, 12, color)
	rl.DrawRectangleLines(x+r.Theme.LabelWidth, y+1, 12, 12, r.Theme.PanelBorder)
	return y + r.Theme.LineHeight
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data HUDData, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, fieldText(fd, data))
	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, fieldValue(fd, data), fd.Range, width)
	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, fieldValue(fd, data), fd.Range, width)
	case WidgetColorSwatch:
		color := rl.Blank
		if fd.ColorGetter != nil {
			color = fd.ColorGetter(data)
		}
		return r.DrawColorSwatch(x, y, fd.Label, color)
	}
	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data HUDData, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}
	return y + 4
}

// SectionHeight returns the height DrawSection will use for data.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data HUDData) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return 0
	}
	h := int32(4)
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		h += r.Theme.LineHeight
		if fd.Widget == WidgetBar || fd.Widget == WidgetCenteredBar {
			h += 2
		}
	}
	return h
}

func fieldValue(fd FieldDescriptor, data HUDData) float32 {
	if fd.Getter == nil {
		return 0
	}
	return fd.Getter(data)
}

func fieldText(fd FieldDescriptor, data HUDData) string {
	if fd.TextGetter != nil {
		return fd.TextGetter(data)
	}
	if fd.Getter != nil {
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	}
	return ""
}

func normalize(v float32, rng FieldRange) float32 {
	if rng.Max <= rng.Min {
		return 0
	}
	return min(1, max(0, (v-rng.Min)/(rng.Max-rng.Min)))
}
