package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/roastery/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
	"github.com/MrJamesThe3rd/roastery/internal/config"
)

type model struct {
	api *apiclient.Client

	currentView View

	dashboardView  view.DashboardModel
	clientsView    view.ClientsModel
	invoicesView   view.InvoicesModel
	deliveriesView view.DeliveriesModel
	importView     view.ImportModel
}

type View int

const (
	ViewMenu       View = 0
	ViewDashboard  View = 1
	ViewClients    View = 2
	ViewInvoices   View = 3
	ViewDeliveries View = 4
	ViewImport     View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := apiclient.New(cfg.APIURL, cfg.Token, apiclient.WithTimeout(cfg.Timeout))

	return model{
		api:            api,
		currentView:    ViewMenu,
		dashboardView:  view.NewDashboardModel(api),
		clientsView:    view.NewClientsModel(api),
		invoicesView:   view.NewInvoicesModel(api),
		deliveriesView: view.NewDeliveriesModel(api),
		importView:     view.NewImportModel(api),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.api)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.api)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.api)

				return m, m.invoicesView.Init()
			case "4":
				m.currentView = ViewDeliveries
				m.deliveriesView = view.NewDeliveriesModel(m.api)

				return m, m.deliveriesView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.api)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewDeliveries:
		var newModel tea.Model
		newModel, cmd = m.deliveriesView.Update(msg)
		m.deliveriesView = newModel.(view.DeliveriesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Roastery\n\n" +
				"1. Dashboard\n" +
				"2. Clients\n" +
				"3. Invoices\n" +
				"4. Deliveries\n" +
				"5. Import Clients (CSV)\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewDeliveries:
		return m.deliveriesView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
