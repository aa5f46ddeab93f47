package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"sirlab/internal/epi"
)

// Plot renders the three compartment curves on a shared chart.
func Plot(tr *epi.Trajectory, caption string) string {
	return asciigraph.PlotMany(
		[][]float64{tr.Susceptible, tr.Infected, tr.Removed},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
		asciigraph.SeriesLegends("susceptible", "infected", "removed"),
	)
}

// PlotInfected renders only the infected curve, used by the compare
// command to overlay runs with different removal rates.
func PlotInfected(series [][]float64, legends []string, caption string) string {
	colors := []asciigraph.AnsiColor{
		asciigraph.Red, asciigraph.Blue, asciigraph.Green,
		asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan,
	}
	if len(series) > len(colors) {
		series = series[:len(colors)]
		legends = legends[:len(colors)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors[:len(series)]...),
		asciigraph.SeriesLegends(legends...),
	)
}

// Summary prints final compartment values under a plot.
func Summary(tr *epi.Trajectory) string {
	n := tr.Len()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("day %.0f:  %s %.0f   %s %.0f   %s %.0f",
		tr.Times[n-1],
		susceptibleStyle.Render("S"), tr.Susceptible[n-1],
		infectedStyle.Render("I"), tr.Infected[n-1],
		removedStyle.Render("R"), tr.Removed[n-1],
	)
}
