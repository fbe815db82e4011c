package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tideflow/internal/models"
)

// Color constants for the tideflow theme
const (
	// Base Colors
	ColorCardBackground = "#0F1B2D" // Deep navy
	ColorBorder         = "#34445C" // Slate

	// Text Colors
	ColorPrimaryText   = "#E6EEF5" // Titles, user input
	ColorSecondaryText = "#A9B7C6" // Labels, metadata
	ColorDisabledText  = "#66758A" // Done or moved rows
	ColorPlaceholder   = "#A9B7C6"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (sea theme)
	ColorAccentMain   = "#0EA5E9" // Logo, active borders
	ColorAccentBright = "#7DD3FC" // Highlights, current row

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"

	// Energy Colors
	ColorEnergyHigh   = "#F43F5E"
	ColorEnergyMedium = "#F59E0B"
	ColorEnergyLow    = "#10B981"
)

// energyColor maps an energy level to its badge color
func energyColor(e models.Energy) string {
	switch e {
	case models.EnergyHigh:
		return ColorEnergyHigh
	case models.EnergyMedium:
		return ColorEnergyMedium
	case models.EnergyLow:
		return ColorEnergyLow
	}
	return ColorDisabledText
}

// energyBadge renders a short colored energy label
func energyBadge(e models.Energy) string {
	icon := map[models.Energy]string{
		models.EnergyHigh:   "▲",
		models.EnergyMedium: "◆",
		models.EnergyLow:    "▼",
	}[e]
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(energyColor(e))).
		Bold(true).
		Render(icon + " " + string(e))
}

// nextEnergy cycles high -> medium -> low -> high
func nextEnergy(e models.Energy) models.Energy {
	for i, candidate := range models.Energies {
		if candidate == e {
			return models.Energies[(i+1)%len(models.Energies)]
		}
	}
	return models.EnergyHigh
}
