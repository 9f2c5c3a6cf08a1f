package main

import "github.com/charmbracelet/lipgloss"

// Color Palette
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // errors and headers
	mintGreen   = lipgloss.Color("#A8E6CF") // success
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Bold(true)

	descStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	resultStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mintGreen).
			Padding(0, 1)

	errorResultStyle = resultStyle.
				BorderForeground(salmonPink)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)
)
