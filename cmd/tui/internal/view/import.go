package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

// ImportModel uploads a clients CSV picked from disk.
type ImportModel struct {
	CommonModel
	api *apiclient.Client

	state      importState
	filePicker filepicker.Model

	status string
	err    error
}

func NewImportModel(api *apiclient.Client) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		api:        api,
		filePicker: fp,
	}
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == importStateResult {
				m.state = importStateFilePick
				m.status = ""
				m.err = nil

				return m, nil
			}

			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d clients.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing clients from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		if m.err != nil {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to pick another file)")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		"Import clients from CSV\n\n" + m.filePicker.View() + "\n" + faint("Enter: select | Esc: back"),
	)
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("opening file: %w", err)}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		clients, err := m.api.ImportClients(ctx, filepath.Base(path), f)

		return importResultMsg{count: len(clients), err: err}
	}
}
