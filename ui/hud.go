package ui

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/migration/components"
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Distance     float64
	FlipDistance float64
	FlipCount    uint32
	Direction    string
	FlipMessage  string // Empty when no recent flip

	TimeOfDay float64
	Sunny     bool
	Sky       rl.Color
	Raininess float64
	Raining   bool
	Snow      bool

	Counts    [components.NumSpecies]int
	MetWhale  bool    // A whale became curious this leg
	HasBaby   bool
	Departure float64 // Leg distance the baby leaves at
	IntentX   float64

	Tick   int32
	Speed  int
	FPS    int32
	Paused bool
}

// hudSections lays out the status panel.
var hudSections = []SectionDescriptor{
	{
		Title: "Journey",
		Fields: []FieldDescriptor{
			{Label: "Heading", Widget: WidgetText, TextGetter: func(d HUDData) string { return strings.ToUpper(d.Direction) }},
			{Label: "Leg", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 1}, Getter: legProgress},
			{Label: "Flips", Widget: WidgetText, TextGetter: func(d HUDData) string { return fmt.Sprintf("%d", d.FlipCount) }},
			{Label: "Met whale", Widget: WidgetText, TextGetter: func(d HUDData) string { return yesNo(d.MetWhale) }},
			{Label: "Steer", Widget: WidgetCenteredBar, Range: FieldRange{Min: -1, Max: 1}, Getter: func(d HUDData) float32 { return float32(d.IntentX) }},
		},
	},
	{
		Title: "Weather",
		Fields: []FieldDescriptor{
			{Label: "Time", Widget: WidgetText, TextGetter: clockText},
			{Label: "Sky", Widget: WidgetColorSwatch, ColorGetter: func(d HUDData) rl.Color { return d.Sky }},
			{Label: "Rain", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 1}, Getter: func(d HUDData) float32 { return float32(d.Raininess) }},
			{Label: "Falling", Widget: WidgetText, TextGetter: precipitationText},
		},
	},
	{
		Title:   "Calf",
		Visible: func(d HUDData) bool { return d.HasBaby },
		Fields: []FieldDescriptor{
			{Label: "Leaves at", Widget: WidgetText, Format: "%.1f", Getter: func(d HUDData) float32 { return float32(d.Departure) }},
		},
	},
}

func legProgress(d HUDData) float32 {
	if d.FlipDistance <= 0 {
		return 0
	}
	return float32(d.Distance / d.FlipDistance)
}

func clockText(d HUDData) string {
	h := int(d.TimeOfDay)
	m := int((d.TimeOfDay - float64(h)) * 60)
	sky := "stormy"
	if d.Sunny {
		sky = "sunny"
	}
	return fmt.Sprintf("%02d:%02d %s", h, m, sky)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func precipitationText(d HUDData) string {
	switch {
	case !d.Raining:
		return "-"
	case d.Snow:
		return "snow"
	}
	return "rain"
}

// CountsText returns the live creature counts in species order, skipping
// the player.
func CountsText(counts [components.NumSpecies]int) string {
	parts := make([]string, 0, len(counts))
	for sp, n := range counts {
		if components.Species(sp) == components.SpeciesPlayer {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", components.Species(sp), n))
	}
	return strings.Join(parts, " | ")
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    220,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	rl.DrawText("Migration", 10, 10, 20, rl.White)
	rl.DrawText(CountsText(data.Counts), 10, 35, 14, rl.LightGray)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 14, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}

	h.drawStatus(data, screenW)

	if data.FlipMessage != "" {
		size := int32(18)
		w := rl.MeasureText(data.FlipMessage, size)
		rl.DrawText(data.FlipMessage, (screenW-w)/2, screenH/3, size, rl.RayWhite)
	}
}

// drawStatus draws the descriptor-driven panel in the top right corner.
func (h *HUD) drawStatus(data HUDData, screenW int32) {
	r := h.renderer
	pad := r.Theme.Padding

	height := pad * 2
	for _, sd := range hudSections {
		height += r.SectionHeight(sd, data)
	}

	x := screenW - h.width - 10
	y := int32(10)
	r.DrawPanel(x, y, h.width, height)

	y += pad
	for _, sd := range hudSections {
		y = r.DrawSection(x+pad, y, sd, data, h.width-pad*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenH int32, controls string) {
	rl.DrawText(controls, 10, screenH-25, 14, rl.Gray)
}

// PerfPanelData holds per-phase timings for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	Total    time.Duration
	TPS      float64
	Phases   []string            // Phase IDs in tick order
	Name     func(string) string // Display name for a phase ID
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y
	p.renderer.DrawPanel(x-6, y-6, 250, int32(len(data.Phases))*14+48)

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s  TPS: %.0f", data.Total.Round(time.Microsecond), data.TPS), x, y, 12, rl.Yellow)
	y += 16

	for _, id := range data.Phases {
		avg := data.PhaseAvg[id]
		pct := 0.0
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}
		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}
		name := id
		if data.Name != nil {
			name = data.Name(id)
		}
		rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
