// Package viz renders epidemic trajectories in the terminal: static
// asciigraph charts, lipgloss stat cards and a bubbletea live replay.
package viz
