// Package tui renders the defragmenter in a terminal with bubbletea.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"defrag-timer/internal/countdown"
	"defrag-timer/internal/sims/defrag"
)

type tickMsg time.Time

// Model is the bubbletea model driving a Disk.
type Model struct {
	disk     *defrag.Disk
	keys     KeyMap
	help     help.Model
	interval time.Duration
	bell     io.Writer

	editing bool
	inputs  [2]textinput.Model
	focus   int
	err     error

	blocks []string
	styles styles
}

type styles struct {
	title  lipgloss.Style
	clock  lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	frame  lipgloss.Style
}

// New returns a model refreshing disk tps times a second. Completion writes
// a terminal bell to bell; nil disables it.
func New(disk *defrag.Disk, tps int, bell io.Writer) *Model {
	if tps <= 0 {
		tps = 30
	}
	m := &Model{
		disk:     disk,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		interval: time.Second / time.Duration(tps),
		bell:     bell,
		styles: styles{
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d0e0")),
			clock:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
			status: lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0aa")),
			err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
			frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#505060")),
		},
	}

	palette := disk.Palette()
	for _, c := range defrag.Colors() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(c)))
		m.blocks = append(m.blocks, style.Render("██"))
	}

	labels := [2]string{"min", "sec"}
	limits := [2]int{3, 2}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = labels[i] + " "
		in.CharLimit = limits[i]
		in.Width = limits[i] + 1
		m.inputs[i] = in
	}
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) ring() tea.Cmd {
	if m.bell == nil {
		return nil
	}
	w := m.bell
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}

// Init starts the refresh loop.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles ticks and key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		before := m.disk.Status().State
		m.disk.Step()
		if before != countdown.Completed && m.disk.Status().State == countdown.Completed {
			return m, tea.Batch(m.tick(), m.ring())
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m, m.updateForm(msg)
		}
		return m, m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.disk.Toggle()
	case key.Matches(msg, m.keys.Start):
		m.disk.Start()
	case key.Matches(msg, m.keys.Reset):
		m.disk.ResetTimer()
	case key.Matches(msg, m.keys.Reseed):
		m.disk.Reset(time.Now().UnixNano())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Edit):
		return m.openForm()
	}
	return nil
}

func (m *Model) openForm() tea.Cmd {
	m.editing = true
	m.err = nil
	minutes, seconds := countdown.Split(m.disk.Status().Target)
	m.inputs[0].Placeholder = fmt.Sprint(minutes)
	m.inputs[1].Placeholder = fmt.Sprintf("%02d", seconds)
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = 0
	return m.inputs[0].Focus()
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.err = nil
		return nil
	case key.Matches(msg, m.keys.Next):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m.inputs[m.focus].Focus()
	case key.Matches(msg, m.keys.Apply):
		target, err := countdown.ParseTarget(m.inputs[0].Value(), m.inputs[1].Value())
		if err == nil {
			err = m.disk.SetTarget(target)
		}
		if err != nil {
			m.err = err
			return nil
		}
		m.editing = false
		m.err = nil
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

// View renders the disk, the clock and the key help.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Disk Defragmenter"))
	b.WriteString("\n")
	b.WriteString(m.styles.frame.Render(m.grid()))
	b.WriteString("\n")

	status := m.disk.Status()
	b.WriteString(m.styles.clock.Render(countdown.FormatClock(status.Remaining)))
	b.WriteString("  ")
	b.WriteString(m.styles.status.Render(fmt.Sprintf("%-9s %3.0f%%  %d/%d blocks optimized",
		status.State, status.Progress*100, status.Optimized, status.Data)))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.inputs[0].View())
		b.WriteString("  ")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(m.styles.err.Render(m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(formKeys{m.keys}))
		return b.String()
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) grid() string {
	grid := m.disk.Grid()
	var b strings.Builder
	for y := 0; y < grid.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range grid.Row(y) {
			if int(c) < len(m.blocks) {
				b.WriteString(m.blocks[c])
			} else {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}
