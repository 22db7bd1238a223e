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

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateAdd
)

type invoiceDraft struct {
	clientID int64
	number   string
	amount   string
	date     string
	paid     bool
}

type InvoicesModel struct {
	CommonModel
	api *apiclient.Client

	state    invoicesState
	table    table.Model
	invoices []schema.InvoiceWithClient
	form     *huh.Form
	draft    *invoiceDraft

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(api *apiclient.Client) InvoicesModel {
	return InvoicesModel{
		api: api,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Number", Width: 14},
			{Title: "Client", Width: 24},
			{Title: "Amount", Width: 12},
			{Title: "Status", Width: 10},
		}),
		loading: true,
	}
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceClientsMsg:
		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}

		if len(msg.clients) == 0 {
			m.status = "Add a client before creating invoices."
			return m, nil
		}

		return m.enterAddMode(msg.clients)

	case invoiceSavedMsg:
		m.state = invoicesStateBrowse
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

	if m.state == invoicesStateAdd {
		return m.updateAdd(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m, m.loadClientsCmd()
		case "p":
			if idx := cursor(m.table, len(m.invoices)); idx >= 0 {
				return m, m.toggleStatusCmd(m.invoices[idx].ID)
			}

			return m, nil
		case "x":
			if idx := cursor(m.table, len(m.invoices)); idx >= 0 {
				return m, m.deleteCmd(m.invoices[idx].Invoice)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterAddMode(clients []schema.Client) (tea.Model, tea.Cmd) {
	options := make([]huh.Option[int64], 0, len(clients))
	for _, c := range clients {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	m.draft = &invoiceDraft{date: schema.Today().String()}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Client").Options(options...).Value(&m.draft.clientID),
			huh.NewInput().Title("Invoice number").Value(&m.draft.number).Validate(required("invoice number")),
			huh.NewInput().Title("Amount").Placeholder("150.00").Value(&m.draft.amount).
				Validate(func(s string) error {
					_, err := schema.NewMoney(s)
					return err
				}),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&m.draft.date).
				Validate(func(s string) error {
					_, err := schema.ParseDate(s)
					return err
				}),
			huh.NewConfirm().Title("Already paid?").Value(&m.draft.paid),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoicesStateBrowse
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
	m.state = invoicesStateBrowse
	m.form = nil
	m.status = "Saving..."

	return m, m.createCmd(d)
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(describe(m.err) + "\n\n(r to retry, Esc to back)")
	}

	content := framed(m.table.View())

	if m.state == invoicesStateAdd && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("New Invoice", m.form.View()))
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	help := faint("Esc: back | a: add | p: toggle paid | x: delete | r: refresh")

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + help)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			FormatDate(&inv.Date),
			inv.InvoiceNumber,
			inv.Client.Name,
			FormatMoney(inv.Amount),
			string(inv.Status),
		})
	}

	m.table.SetRows(rows)
}

type loadInvoicesMsg struct {
	invoices []schema.InvoiceWithClient
	err      error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		invoices, err := m.api.ListInvoices(ctx)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type invoiceClientsMsg struct {
	clients []schema.Client
	err     error
}

func (m InvoicesModel) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		clients, err := m.api.ListClients(ctx)

		return invoiceClientsMsg{clients: clients, err: err}
	}
}

type invoiceSavedMsg struct {
	status string
	err    error
}

func (m InvoicesModel) createCmd(d invoiceDraft) tea.Cmd {
	return func() tea.Msg {
		amount, err := schema.NewMoney(d.amount)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		date, err := schema.ParseDate(d.date)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		in := schema.InsertInvoice{
			ClientID:      d.clientID,
			InvoiceNumber: d.number,
			Amount:        &amount,
			Date:          date,
		}
		if d.paid {
			in.Status = schema.InvoiceStatusPaid
		}

		ctx, cancel := APICtx()
		defer cancel()

		inv, err := m.api.CreateInvoice(ctx, in)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{status: fmt.Sprintf("Added invoice %s.", inv.InvoiceNumber)}
	}
}

// toggleStatusCmd flips the stored status, which may differ from the row on screen.
func (m InvoicesModel) toggleStatusCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		inv, err := m.api.GetInvoice(ctx, id)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		next := schema.InvoiceStatusPaid
		if inv.Status == schema.InvoiceStatusPaid {
			next = schema.InvoiceStatusPending
		}

		if _, err := m.api.UpdateInvoice(ctx, id, schema.UpdateInvoice{Status: &next}); err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{status: fmt.Sprintf("Invoice %s marked %s.", inv.InvoiceNumber, next)}
	}
}

func (m InvoicesModel) deleteCmd(inv schema.Invoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := m.api.DeleteInvoice(ctx, inv.ID); err != nil {
			return invoiceSavedMsg{err: err}
		}

		return invoiceSavedMsg{status: fmt.Sprintf("Deleted invoice %s.", inv.InvoiceNumber)}
	}
}
