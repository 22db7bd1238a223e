package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type deliveriesState int

const (
	deliveriesStateBrowse deliveriesState = iota
	deliveriesStateAdd
)

type deliveryDraft struct {
	invoiceID int64
	date      string
	notes     string
}

type DeliveriesModel struct {
	CommonModel
	api *apiclient.Client

	state      deliveriesState
	table      table.Model
	deliveries []schema.DeliveryWithInvoice
	form       *huh.Form
	draft      *deliveryDraft

	loading bool
	err     error
	status  string
}

func NewDeliveriesModel(api *apiclient.Client) DeliveriesModel {
	return DeliveriesModel{
		api: api,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Status", Width: 10},
			{Title: "Invoice", Width: 14},
			{Title: "Client", Width: 24},
			{Title: "Notes", Width: 32},
		}),
		loading: true,
	}
}

func (m DeliveriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DeliveriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDeliveriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.deliveries = msg.deliveries
		m.refreshTable()

		return m, nil

	case deliveryInvoicesMsg:
		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}

		if len(msg.invoices) == 0 {
			m.status = "Add an invoice before scheduling deliveries."
			return m, nil
		}

		return m.enterAddMode(msg.invoices)

	case deliverySavedMsg:
		m.state = deliveriesStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == deliveriesStateAdd {
		return m.updateAdd(msg)
	}

	return m.updateBrowse(msg)
}

func (m DeliveriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m, m.loadInvoicesCmd()
		case "d":
			idx := cursor(m.table, len(m.deliveries))
			if idx < 0 {
				return m, nil
			}

			if m.deliveries[idx].Status == schema.DeliveryStatusDelivered {
				m.status = "Already delivered."
				return m, nil
			}

			return m, m.markDeliveredCmd(m.deliveries[idx].Delivery)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DeliveriesModel) enterAddMode(invoices []schema.InvoiceWithClient) (tea.Model, tea.Cmd) {
	options := make([]huh.Option[int64], 0, len(invoices))
	for _, inv := range invoices {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", inv.InvoiceNumber, inv.Client.Name), inv.ID))
	}

	m.draft = &deliveryDraft{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Invoice").Options(options...).Value(&m.draft.invoiceID),
			huh.NewInput().Title("Delivery date").Placeholder("YYYY-MM-DD, blank if unscheduled").Value(&m.draft.date).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}

					_, err := schema.ParseDate(s)

					return err
				}),
			huh.NewText().Title("Notes").Value(&m.draft.notes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = deliveriesStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m DeliveriesModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = deliveriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// Leave add mode before the request so later messages cannot submit twice.
	d := *m.draft
	m.state = deliveriesStateBrowse
	m.form = nil
	m.status = "Saving..."

	return m, m.createCmd(d)
}

func (m DeliveriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading deliveries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(describe(m.err) + "\n\n(r to retry, Esc to back)")
	}

	content := framed(m.table.View())

	if m.state == deliveriesStateAdd && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("New Delivery", m.form.View()))
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	help := faint("Esc: back | a: add | d: mark delivered today | r: refresh")

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + help)
}

func (m *DeliveriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.deliveries))
	for _, d := range m.deliveries {
		rows = append(rows, table.Row{
			FormatDate(d.DeliveryDate),
			string(d.Status),
			d.Invoice.InvoiceNumber,
			d.Invoice.Client.Name,
			optional(d.Notes),
		})
	}

	m.table.SetRows(rows)
}

type loadDeliveriesMsg struct {
	deliveries []schema.DeliveryWithInvoice
	err        error
}

func (m DeliveriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		deliveries, err := m.api.ListDeliveries(ctx)

		return loadDeliveriesMsg{deliveries: deliveries, err: err}
	}
}

type deliveryInvoicesMsg struct {
	invoices []schema.InvoiceWithClient
	err      error
}

func (m DeliveriesModel) loadInvoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		invoices, err := m.api.ListInvoices(ctx)

		return deliveryInvoicesMsg{invoices: invoices, err: err}
	}
}

type deliverySavedMsg struct {
	status string
	err    error
}

func (m DeliveriesModel) createCmd(d deliveryDraft) tea.Cmd {
	return func() tea.Msg {
		in := schema.InsertDelivery{
			InvoiceID: d.invoiceID,
			Notes:     optionalInput(d.notes),
		}

		if d.date != "" {
			date, err := schema.ParseDate(d.date)
			if err != nil {
				return deliverySavedMsg{err: err}
			}

			in.DeliveryDate = &date
		}

		ctx, cancel := APICtx()
		defer cancel()

		if _, err := m.api.CreateDelivery(ctx, in); err != nil {
			return deliverySavedMsg{err: err}
		}

		return deliverySavedMsg{status: "Delivery added."}
	}
}

func (m DeliveriesModel) markDeliveredCmd(d schema.Delivery) tea.Cmd {
	today := schema.Today()
	status := schema.DeliveryStatusDelivered

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		_, err := m.api.UpdateDelivery(ctx, d.ID, schema.UpdateDelivery{
			DeliveryDate: &today,
			Status:       &status,
		})
		if err != nil {
			return deliverySavedMsg{err: err}
		}

		return deliverySavedMsg{status: fmt.Sprintf("Delivery %d marked delivered on %s.", d.ID, today)}
	}
}
