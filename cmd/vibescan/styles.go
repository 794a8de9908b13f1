package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

var (
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleLabel  = lipgloss.NewStyle().Width(24)
	styleNumber = lipgloss.NewStyle().Width(6).Align(lipgloss.Right)
)

var bandStyles = map[catalog.Band]lipgloss.Style{
	catalog.BandLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	catalog.BandMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	catalog.BandHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

func renderBand(b catalog.Band) string {
	if s, ok := bandStyles[b]; ok {
		return s.Render(string(b))
	}
	return string(b)
}

// swatch renders a small block in a category's hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}
