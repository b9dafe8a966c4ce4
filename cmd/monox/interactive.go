package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle  = lipgloss.NewStyle().Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	choiceStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// textPrompt asks for one line of input, re-prompting until the value
// passes validation or the user aborts.
type textPrompt struct {
	input    textinput.Model
	label    string
	validate func(string) error
	invalid  string
	accepted bool
	aborted  bool
}

func (p textPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p textPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.aborted = true
			return p, tea.Quit
		case tea.KeyEnter:
			if p.validate != nil {
				if err := p.validate(p.input.Value()); err != nil {
					p.invalid = err.Error()
					return p, nil
				}
			}
			p.accepted = true
			return p, tea.Quit
		}
	}
	p.invalid = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p textPrompt) View() string {
	if p.accepted {
		return ""
	}
	view := promptStyle.Render(p.label) + "\n" + p.input.View() + "\n"
	if p.invalid != "" {
		view += invalidStyle.Render(p.invalid) + "\n"
	}
	return view
}

// boolPrompt is a yes/no question with a preselected answer.
type boolPrompt struct {
	label    string
	value    bool
	accepted bool
	aborted  bool
}

func (p boolPrompt) Init() tea.Cmd {
	return nil
}

func (p boolPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc":
		p.aborted = true
		return p, tea.Quit
	case "enter":
		p.accepted = true
		return p, tea.Quit
	case "y":
		p.value = true
		p.accepted = true
		return p, tea.Quit
	case "n":
		p.value = false
		p.accepted = true
		return p, tea.Quit
	case "left", "right", "tab", "h", "l":
		p.value = !p.value
	}
	return p, nil
}

func (p boolPrompt) View() string {
	if p.accepted {
		return ""
	}
	yes, no := " Yes ", " No "
	if p.value {
		yes = choiceStyle.Render(yes)
	} else {
		no = choiceStyle.Render(no)
	}
	return fmt.Sprintf("%s %s / %s\n", promptStyle.Render(p.label), yes, no)
}

func promptInput(label, placeholder string, validate func(string) error) (string, error) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()

	final, err := tea.NewProgram(textPrompt{
		input:    input,
		label:    label,
		validate: validate,
	}).Run()
	if err != nil {
		return "", err
	}
	p := final.(textPrompt)
	if p.aborted {
		return "", fmt.Errorf("aborted")
	}
	value := strings.TrimSpace(p.input.Value())
	if value == "" {
		value = placeholder
	}
	return value, nil
}

func promptConfirm(label string, preselected bool) (bool, error) {
	final, err := tea.NewProgram(boolPrompt{label: label, value: preselected}).Run()
	if err != nil {
		return false, err
	}
	p := final.(boolPrompt)
	if p.aborted {
		return false, fmt.Errorf("aborted")
	}
	return p.value, nil
}

// validatePackageName enforces the subset of npm name rules the root
// manifest needs: non-empty, lowercase, no spaces, URL-safe characters.
func validatePackageName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("package name is required")
	}
	if name != strings.ToLower(name) {
		return fmt.Errorf("package name must be lowercase")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == '@', r == '/':
		default:
			return fmt.Errorf("package name contains invalid character %q", r)
		}
	}
	return nil
}
