// Package tui provides a terminal user interface for hapticsynth
package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hapticlab/hapticsynth/pkg/export"
	"github.com/hapticlab/hapticsynth/pkg/pattern"
)

// Tactile-inspired color scheme
var (
	pulseOrange = lipgloss.Color("#FF6B1A")
	pulseAmber  = lipgloss.Color("#FFC300")
	silverGray  = lipgloss.Color("#C0C0C0")
	darkGray    = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pulseOrange).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(pulseOrange).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(pulseAmber).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(pulseAmber).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(pulseOrange).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pulseOrange).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateSynthesizing
	StateResult
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Target      string
}

var menuItems = []MenuItem{
	{Title: "Synthesize → JSON", Description: "Decode a haptic file into an intensity curve", Target: "json"},
	{Title: "Export → MIDI", Description: "Render a haptic file as MIDI CC automation", Target: "midi"},
	{Title: "Exit", Description: "Exit the application", Target: ""},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	outputFile   string
	target       MenuItem
	diagnostic   string
	err          error
	width        int
	height       int
}

// synthDoneMsg signals synthesis completion
type synthDoneMsg struct {
	outputFile string
	diagnostic string
	err        error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = pattern.SupportedExtensions()
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(pulseOrange)

	return Model{
		state:      StateMenu,
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle file picker state first - it needs to receive all messages
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateSynthesizing
			return m, tea.Batch(m.spinner.Tick, m.performSynthesis())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case synthDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.diagnostic = msg.diagnostic
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		if m.menuIndex == len(menuItems)-1 {
			return m, tea.Quit
		}
		m.target = menuItems[m.menuIndex]
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.diagnostic = ""
		m.selectedFile = ""
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) performSynthesis() tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(m.selectedFile)
		if err != nil {
			return synthDoneMsg{err: err}
		}

		curve, synthErr := pattern.SynthesizeFile(m.selectedFile, data, pattern.DefaultOptions())

		// A parse failure still yields an (empty) curve; surface it as a
		// diagnostic rather than aborting.
		var diagnostic string
		if synthErr != nil {
			diagnostic = synthErr.Error()
		}

		base := strings.TrimSuffix(m.selectedFile, filepath.Ext(m.selectedFile))

		var outputFile string
		switch m.target.Target {
		case "midi":
			midiData, err := export.ToMIDI(curve, export.DefaultMIDIOptions())
			if err != nil {
				return synthDoneMsg{diagnostic: diagnostic, err: err}
			}
			outputFile = base + ".mid"
			if err := os.WriteFile(outputFile, midiData, 0644); err != nil {
				return synthDoneMsg{diagnostic: diagnostic, err: err}
			}
		default:
			out, err := json.MarshalIndent(curve, "", "  ")
			if err != nil {
				return synthDoneMsg{diagnostic: diagnostic, err: err}
			}
			outputFile = base + ".curve.json"
			if err := os.WriteFile(outputFile, out, 0644); err != nil {
				return synthDoneMsg{diagnostic: diagnostic, err: err}
			}
		}

		return synthDoneMsg{outputFile: outputFile, diagnostic: diagnostic}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateSynthesizing:
		s.WriteString(m.viewSynthesizing())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT ACTION "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(pulseAmber).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT HAPTIC FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewSynthesizing() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SYNTHESIZING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Decoding %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  → %s", m.target.Title)))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Synthesis failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Synthesis complete!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Input:  %s\n", filepath.Base(m.selectedFile)))
		s.WriteString(fmt.Sprintf("Output: %s", filepath.Base(m.outputFile)))
		if m.diagnostic != "" {
			s.WriteString("\n\n")
			s.WriteString(warnStyle.Render(fmt.Sprintf("⚠ %s", m.diagnostic)))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   _   _    _    ____ _____ ___ ____ ______   ___   _ _____ _   _
  | | | |  / \  |  _ \_   _|_ _/ ___/ ___\ \ / / \ | |_   _| | | |
  | |_| | / _ \ | |_) || |  | | |   \___ \\ V /|  \| | | | | |_| |
  |  _  |/ ___ \|  __/ | |  | | |___ ___) || | | |\  | | | |  _  |
  |_| |_/_/   \_\_|    |_| |___\____|____/ |_| |_| \_| |_| |_| |_|
`
	return lipgloss.NewStyle().Foreground(pulseOrange).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
