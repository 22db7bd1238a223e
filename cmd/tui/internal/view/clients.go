package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateForm
	clientsStateConfirmDelete
)

// clientDraft backs the add and edit forms. id is zero when adding.
type clientDraft struct {
	id                                    int64
	name, cafeName, address, phone, email string
}

type ClientsModel struct {
	CommonModel
	api *apiclient.Client

	state   clientsState
	table   table.Model
	clients []schema.Client
	form    *huh.Form
	draft   *clientDraft

	loading bool
	err     error
	status  string
}

func NewClientsModel(api *apiclient.Client) ClientsModel {
	return ClientsModel{
		api: api,
		table: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 24},
			{Title: "Café", Width: 24},
			{Title: "Phone", Width: 16},
			{Title: "Email", Width: 28},
		}),
		loading: true,
	}
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.clients = msg.clients
		m.refreshTable()

		return m, nil

	case clientLoadedMsg:
		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}

		c := msg.client

		return m.enterForm(&clientDraft{
			id:       c.ID,
			name:     c.Name,
			cafeName: optional(c.CafeName),
			address:  optional(c.Address),
			phone:    optional(c.Phone),
			email:    optional(c.Email),
		})

	case clientSavedMsg:
		m.state = clientsStateBrowse
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

	switch m.state {
	case clientsStateForm:
		return m.updateForm(msg)
	case clientsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterForm(&clientDraft{})
		case "e":
			if idx := cursor(m.table, len(m.clients)); idx >= 0 {
				return m, m.loadClientCmd(m.clients[idx].ID)
			}

			return m, nil
		case "x":
			if cursor(m.table, len(m.clients)) >= 0 {
				m.state = clientsStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) enterForm(d *clientDraft) (tea.Model, tea.Cmd) {
	m.draft = d
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.draft.name).Validate(required("name")),
			huh.NewInput().Title("Café name").Value(&m.draft.cafeName),
			huh.NewInput().Title("Address").Value(&m.draft.address),
			huh.NewInput().Title("Phone").Value(&m.draft.phone),
			huh.NewInput().Title("Email").Value(&m.draft.email),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateForm
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = clientsStateBrowse
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

	// Leave the form before the request so later messages cannot submit twice.
	d := *m.draft
	m.state = clientsStateBrowse
	m.form = nil
	m.status = "Saving..."

	if d.id != 0 {
		return m, m.updateCmd(d)
	}

	return m, m.createCmd(d)
}

func (m ClientsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() != "y" {
		m.state = clientsStateBrowse
		return m, nil
	}

	idx := cursor(m.table, len(m.clients))
	if idx < 0 {
		m.state = clientsStateBrowse
		return m, nil
	}

	m.state = clientsStateBrowse

	return m, m.deleteCmd(m.clients[idx])
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(describe(m.err) + "\n\n(r to retry, Esc to back)")
	}

	content := framed(m.table.View())

	switch m.state {
	case clientsStateForm:
		title := "New Client"
		if m.draft.id != 0 {
			title = "Edit Client"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	case clientsStateConfirmDelete:
		if idx := cursor(m.table, len(m.clients)); idx >= 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content,
				panel("Delete Client", fmt.Sprintf("Delete %s?\n\n(y to confirm, any key to cancel)", m.clients[idx].Name)))
		}
	}

	help := faint("Esc: back | a: add | e: edit | x: delete | r: refresh")
	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + help)
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{
			fmt.Sprint(c.ID),
			c.Name,
			optional(c.CafeName),
			optional(c.Phone),
			optional(c.Email),
		})
	}

	m.table.SetRows(rows)
}

type loadClientsMsg struct {
	clients []schema.Client
	err     error
}

func (m ClientsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		clients, err := m.api.ListClients(ctx)

		return loadClientsMsg{clients: clients, err: err}
	}
}

type clientLoadedMsg struct {
	client *schema.Client
	err    error
}

func (m ClientsModel) loadClientCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		c, err := m.api.GetClient(ctx, id)

		return clientLoadedMsg{client: c, err: err}
	}
}

type clientSavedMsg struct {
	status string
	err    error
}

func (m ClientsModel) createCmd(d clientDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		c, err := m.api.CreateClient(ctx, schema.InsertClient{
			Name:     d.name,
			CafeName: optionalInput(d.cafeName),
			Address:  optionalInput(d.address),
			Phone:    optionalInput(d.phone),
			Email:    optionalInput(d.email),
		})
		if err != nil {
			return clientSavedMsg{err: err}
		}

		return clientSavedMsg{status: fmt.Sprintf("Added %s.", c.Name)}
	}
}

// updateCmd sends every field; a blank optional field clears it.
func (m ClientsModel) updateCmd(d clientDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		c, err := m.api.UpdateClient(ctx, d.id, schema.UpdateClient{
			Name:     &d.name,
			CafeName: new(strings.TrimSpace(d.cafeName)),
			Address:  new(strings.TrimSpace(d.address)),
			Phone:    new(strings.TrimSpace(d.phone)),
			Email:    new(strings.TrimSpace(d.email)),
		})
		if err != nil {
			return clientSavedMsg{err: err}
		}

		return clientSavedMsg{status: fmt.Sprintf("Updated %s.", c.Name)}
	}
}

func (m ClientsModel) deleteCmd(c schema.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := m.api.DeleteClient(ctx, c.ID); err != nil {
			return clientSavedMsg{err: err}
		}

		return clientSavedMsg{status: fmt.Sprintf("Deleted %s.", c.Name)}
	}
}
