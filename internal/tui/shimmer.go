package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ShimmerConfig controls the highlight that sweeps across the current task title
type ShimmerConfig struct {
	Enabled    bool
	SpeedMs    int     // tick interval
	WidthRatio float64 // highlight width relative to the text
	CycleMs    int     // time for one sweep
}

// DefaultShimmerConfig returns the default sweep settings, static when
// reduceMotion is set
func DefaultShimmerConfig(reduceMotion bool) ShimmerConfig {
	return ShimmerConfig{
		Enabled:    !reduceMotion,
		SpeedMs:    100,
		WidthRatio: 0.25,
		CycleMs:    1800,
	}
}

// Shimmer is the animation state. Center moves in glyph units and wraps
// once the highlight has fully left the text.
type Shimmer struct {
	Config    ShimmerConfig
	Center    float64
	TrueColor bool
}

// shimmerTickMsg advances the sweep
type shimmerTickMsg struct{}

// NewShimmer creates a shimmer at the left edge
func NewShimmer(config ShimmerConfig) *Shimmer {
	return &Shimmer{
		Config:    config,
		TrueColor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// Tick schedules the next frame, nil when disabled
func (s *Shimmer) Tick() tea.Cmd {
	if !s.Config.Enabled || s.Config.SpeedMs <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(s.Config.SpeedMs)*time.Millisecond, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Advance moves the highlight one frame across text of length n
func (s *Shimmer) Advance(n int) {
	if !s.Config.Enabled || n <= 0 || s.Config.CycleMs <= 0 || s.Config.SpeedMs <= 0 {
		return
	}
	margin := float64(n) * s.Config.WidthRatio
	ticksPerCycle := float64(s.Config.CycleMs) / float64(s.Config.SpeedMs)
	s.Center += (float64(n) + 2*margin) / ticksPerCycle
	if s.Center > float64(n)+margin {
		s.Center = -margin
	}
}

// Reset moves the highlight back to the start
func (s *Shimmer) Reset() {
	s.Center = 0
}

// Render colors text around the current center. Without animation the
// whole text gets the bright accent.
func (s *Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.Config.Enabled {
		return fmt.Sprintf("\033[38;2;125;211;252m%s\033[0m", text) // ColorAccentBright
	}

	var b strings.Builder
	if !s.TrueColor {
		half := int(math.Max(1, s.Config.WidthRatio*float64(len(runes)))) / 2
		for i, r := range runes {
			if i >= int(s.Center)-half && i <= int(s.Center)+half {
				fmt.Fprintf(&b, "\033[38;5;117m%c", r)
			} else {
				fmt.Fprintf(&b, "\033[38;5;250m%c", r)
			}
		}
		b.WriteString("\033[0m")
		return b.String()
	}

	// base #A9B7C6 blended towards #E0F2FE
	baseR, baseG, baseB := 169.0, 183.0, 198.0
	hiR, hiG, hiB := 224.0, 242.0, 254.0
	sigma := math.Max(1, s.Config.WidthRatio*float64(len(runes))/2)

	for i, r := range runes {
		dx := float64(i) - s.Center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c",
			int(baseR*(1-w)+hiR*w),
			int(baseG*(1-w)+hiG*w),
			int(baseB*(1-w)+hiB*w),
			r)
	}
	b.WriteString("\033[0m")
	return b.String()
}
