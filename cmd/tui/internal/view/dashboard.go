package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type DashboardModel struct {
	CommonModel
	api *apiclient.Client

	stats   *schema.Stats
	loading bool
	err     error
}

func NewDashboardModel(api *apiclient.Client) DashboardModel {
	return DashboardModel{api: api, loading: true}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatsMsg:
		m.loading = false
		m.stats, m.err = msg.stats, msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(describe(m.err) + "\n\n(r to retry, Esc to back)")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Total sales (paid):  %s\n", activeStyle(FormatAmount(m.stats.TotalSales)))
	fmt.Fprintf(&b, "Invoices:            %d\n", m.stats.InvoiceCount)
	fmt.Fprintf(&b, "Pending deliveries:  %d\n\n", m.stats.PendingDeliveries)

	b.WriteString("Top clients\n")

	if len(m.stats.TopClients) == 0 {
		b.WriteString(faint("  no invoices yet") + "\n")
	}

	for i, c := range m.stats.TopClients {
		fmt.Fprintf(&b, "  %d. %-30s %12s\n", i+1, c.Name, FormatAmount(c.TotalAmount))
	}

	return lipgloss.NewStyle().Padding(2).Render(
		"Dashboard\n\n" + b.String() + "\n" + faint("r: refresh | Esc: back"),
	)
}

type loadStatsMsg struct {
	stats *schema.Stats
	err   error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		stats, err := m.api.Stats(ctx)

		return loadStatsMsg{stats: stats, err: err}
	}
}
