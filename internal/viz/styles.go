package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sirlab/internal/epi"
	"sirlab/internal/metrics"
)

// Compartment colors, matching the dashboard palette: blue susceptible,
// red infected, green removed.
var (
	susceptibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	infectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	removedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#64748B")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8FAFC")).Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
)

func Title(s string) string { return titleStyle.Render(s) }

func Legend() string {
	return strings.Join([]string{
		susceptibleStyle.Render("susceptible"),
		infectedStyle.Render("infected"),
		removedStyle.Render("removed"),
	}, "  ")
}

// StatCards renders the summary row shown after a run: reproduction
// number, peak, peak day, attack rate and any variant extras.
func StatCards(rec *metrics.Record, p epi.Params) string {
	cards := []string{
		card("R0", fmt.Sprintf("%.3f", rec.BasicReproduction)),
		card("Peak infected", fmt.Sprintf("%.0f", rec.PeakInfected)),
		card("Peak day", fmt.Sprintf("%.1f", rec.PeakDay)),
		card("Attack rate", fmt.Sprintf("%.1f%%", rec.AttackRate*100)),
		card("Area under curve", fmt.Sprintf("%.0f", rec.AreaUnderCurve)),
		card("Total infected", fmt.Sprintf("%.0f", rec.AttackRate*p.Population)),
	}

	names := make([]string, 0, len(rec.Extras))
	for name := range rec.Extras {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cards = append(cards, card(prettify(name), fmt.Sprintf("%.2f", rec.Extras[name])))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(label, value string) string {
	content := labelStyle.Render(label) + "\n" + valueStyle.Render(value)
	return cardStyle.Render(content)
}

func prettify(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
