package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polygon-io/simple-binary-encoding/ir"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	signalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	layoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserModel struct {
	err      error
	filename string
	schema   *ir.Ir
	streams  []streamInfo
	viewport viewport.Model
	selected int
	width    int
	height   int
	state    browserState
}

type streamInfo struct {
	label  string
	tokens []*ir.Token
}

type browserState int

const (
	stateSelectStream browserState = iota
	stateBrowseTokens
)

func newBrowserModel(filename string) *browserModel {
	return &browserModel{
		filename: filename,
		state:    stateSelectStream,
	}
}

type irLoadedMsg struct {
	err     error
	schema  *ir.Ir
	streams []streamInfo
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadIr
}

func (m *browserModel) loadIr() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return irLoadedMsg{err: err}
	}

	schema, err := ir.Decode(data)
	if err != nil {
		return irLoadedMsg{err: err}
	}

	var streams []streamInfo
	if header := schema.HeaderStructure(); len(header) > 0 {
		streams = append(streams, streamInfo{
			label:  fmt.Sprintf("header %s (%d bytes)", header[0].Name(), header[0].EncodedLength()),
			tokens: header,
		})
	}
	for _, name := range schema.TypeNames() {
		tokens := schema.Type(name)
		streams = append(streams, streamInfo{
			label:  fmt.Sprintf("type %s (%d tokens)", name, len(tokens)),
			tokens: tokens,
		})
	}
	for _, id := range schema.MessageIDs() {
		tokens := schema.Message(id)
		streams = append(streams, streamInfo{
			label: fmt.Sprintf("message %s (id %d, blockLength %d)",
				tokens[0].Name(), id, tokens[0].EncodedLength()),
			tokens: tokens,
		})
	}

	return irLoadedMsg{schema: schema, streams: streams}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, msg.Height-4)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectStream && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectStream && m.selected < len(m.streams)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectStream && len(m.streams) > 0 {
				m.viewport.SetContent(renderTokens(m.streams[m.selected].tokens))
				m.viewport.GotoTop()
				m.state = stateBrowseTokens
			}

		case "esc":
			if m.state == stateBrowseTokens {
				m.state = stateSelectStream
			}
		}

	case irLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.schema = msg.schema
		m.streams = msg.streams
	}

	if m.state == stateBrowseTokens {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// renderTokens formats a stream one token per line, indented by nesting
// depth, with the resolved layout columns on the right.
func renderTokens(tokens []*ir.Token) string {
	var b strings.Builder
	depth := 0

	for _, t := range tokens {
		if t.Signal().IsEnd() {
			depth--
		}

		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(signalStyle.Render(t.Signal().String()))
		b.WriteString(" ")
		b.WriteString(nameStyle.Render(t.Name()))
		if ref := t.ReferencedName(); ref != "" {
			b.WriteString(" <" + ref + ">")
		}
		b.WriteString(" ")
		b.WriteString(layoutStyle.Render(fmt.Sprintf("offset=%d length=%d", t.Offset(), t.EncodedLength())))
		if p := t.Encoding().PrimitiveType(); p != ir.None {
			b.WriteString(" " + signalStyle.Render(p.String()))
		}
		if t.IsConstantEncoding() {
			b.WriteString(" const=" + t.Encoding().ConstValue().String())
		}
		b.WriteString("\n")

		if t.Signal().IsBegin() {
			depth++
		}
	}

	return b.String()
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.schema == nil {
		return "Loading IR..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("IR Browser"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%s (id %d, version %d)", m.schema.PackageName(), m.schema.ID(), m.schema.Version()))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectStream:
		b.WriteString("Select a token stream:\n\n")
		for i, s := range m.streams {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + s.label))
			} else {
				b.WriteString(cursor + s.label)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter browse • q quit"))

	case stateBrowseTokens:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
