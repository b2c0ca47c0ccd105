package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"housing-dashboard/models"
	"housing-dashboard/services"
)

type control int

const (
	ctrlNeighborhood control = iota
	ctrlYear
	ctrlCondition
	ctrlMinPrice
	ctrlMaxPrice
	controlCount
)

var controlNames = [...]string{"Neighborhood", "Year sold", "Condition", "Min price", "Max price"}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// Model is the terminal front end: selectors for the categorical filters,
// sliders for the price window and a play/pause toggle.
type Model struct {
	ctrl  *services.Controller
	sink  *Sink
	step  float64
	focus control
	snap  models.Snapshot
	err   error
	width int
}

// New creates a Model driving ctrl. sink must be (one of) ctrl's renderers;
// step is the price slider increment.
func New(ctrl *services.Controller, sink *Sink, step float64) Model {
	if step <= 0 {
		step = 1000
	}
	return Model{ctrl: ctrl, sink: sink, step: step, snap: ctrl.Snapshot()}
}

func (m Model) Init() tea.Cmd {
	return m.sink.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = m.sink.Latest()
		return m, m.sink.wait()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Close()
			return m, tea.Quit
		case "up", "k", "shift+tab":
			m.focus = (m.focus + controlCount - 1) % controlCount
		case "down", "j", "tab":
			m.focus = (m.focus + 1) % controlCount
		case "right", "l":
			m.adjust(1)
		case "left", "h":
			m.adjust(-1)
		case " ", "p":
			m.err = m.ctrl.Toggle()
		case "r":
			m.ctrl.Reset()
		default:
			return m, nil
		}
		m.snap = m.sink.Latest()
		return m, nil
	}
	return m, nil
}

// adjust moves the focused control one step in direction dir (+1 / -1).
func (m *Model) adjust(dir int) {
	d := m.ctrl.Domain()
	f := m.ctrl.Filter()

	switch m.focus {
	case ctrlNeighborhood:
		m.ctrl.SetCategory(cycleString(d.Categories, f.Category, dir))
	case ctrlYear:
		m.ctrl.SetYear(cycleInt(d.Years, f.Year, dir))
	case ctrlCondition:
		m.ctrl.SetCondition(cycleInt(d.Conditions, f.Condition, dir))
	case ctrlMinPrice:
		m.ctrl.SetPriceMin(clamp(f.PriceMin+float64(dir)*m.step, d.PriceBounds))
	case ctrlMaxPrice:
		m.ctrl.SetPriceMax(clamp(f.PriceMax+float64(dir)*m.step, d.PriceBounds))
	}
}

func (m Model) View() string {
	var b strings.Builder
	f := m.snap.Filter

	title := "House Sales Explorer"
	if m.snap.Playing {
		title += playingStyle.Render(fmt.Sprintf("  ▶ Year: %d", f.Year))
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	values := [...]string{
		orAll(f.Category, "All Neighborhoods"),
		orAll(intLabel(f.Year), "All Years"),
		conditionText(f.Condition),
		fmt.Sprintf("$%.0f", f.PriceMin),
		fmt.Sprintf("$%.0f", f.PriceMax),
	}
	var controls strings.Builder
	for i, name := range controlNames {
		style, cursor := valueStyle, "  "
		if control(i) == m.focus {
			style, cursor = focusStyle, "› "
		}
		controls.WriteString(cursor + labelStyle.Render(name) + style.Render("◂ "+values[i]+" ▸") + "\n")
	}
	b.WriteString(panelStyle.Render(strings.TrimRight(controls.String(), "\n")) + "\n\n")

	b.WriteString(fmt.Sprintf("Sales: %d", len(m.snap.Subset)))
	if n := len(m.snap.Subset); n > 0 {
		var total float64
		for _, r := range m.snap.Subset {
			total += r.Price
		}
		b.WriteString(fmt.Sprintf("   Average: $%.0f", total/float64(n)))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Average sale price over time") + "\n")
	b.WriteString(trendBars(m.snap.Trend, m.barWidth()))
	b.WriteString("\n" + titleStyle.Render("Sales by neighborhood") + "\n")
	b.WriteString(groupBars(m.snap.Groups, m.barWidth()))

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ select • ←/→ change • space play/pause • r reset • q quit") + "\n")
	return b.String()
}

func (m Model) barWidth() int {
	if m.width > 60 {
		return m.width - 36
	}
	return 30
}

func trendBars(trend []models.YearMean, width int) string {
	if len(trend) == 0 {
		return helpStyle.Render("  no data") + "\n"
	}
	max := 0.0
	for _, p := range trend {
		if p.Mean > max {
			max = p.Mean
		}
	}
	var b strings.Builder
	for _, p := range trend {
		n := int(p.Mean / max * float64(width))
		b.WriteString(fmt.Sprintf("  %d %s $%.0f\n", p.Year, barStyle.Render(strings.Repeat("█", n)), p.Mean))
	}
	return b.String()
}

func groupBars(groups []models.CategoryGroup, width int) string {
	if len(groups) == 0 {
		return helpStyle.Render("  no data") + "\n"
	}
	sorted := append([]models.CategoryGroup(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i].Prices) > len(sorted[j].Prices) })
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	max := len(sorted[0].Prices)
	var b strings.Builder
	for _, g := range sorted {
		n := len(g.Prices) * width / max
		if n == 0 {
			n = 1
		}
		b.WriteString(fmt.Sprintf("  %-10s %s %d\n", truncate(g.Category, 10), barStyle.Render(strings.Repeat("█", n)), len(g.Prices)))
	}
	return b.String()
}

// cycleString steps through "" followed by options, wrapping at both ends.
func cycleString(options []string, current string, dir int) string {
	all := append([]string{""}, options...)
	i := 0
	for j, o := range all {
		if o == current {
			i = j
			break
		}
	}
	return all[wrap(i+dir, len(all))]
}

// cycleInt steps through 0 followed by options, wrapping at both ends.
func cycleInt(options []int, current int, dir int) int {
	all := append([]int{0}, options...)
	i := 0
	for j, o := range all {
		if o == current {
			i = j
			break
		}
	}
	return all[wrap(i+dir, len(all))]
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func clamp(v float64, b models.PriceBounds) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

func conditionText(c int) string {
	if c == 0 {
		return "All Conditions"
	}
	return fmt.Sprintf("%d - %s", c, models.ConditionLabel(c))
}

func orAll(v, all string) string {
	if v == "" {
		return all
	}
	return v
}

func intLabel(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
