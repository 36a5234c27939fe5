package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sarchart/sarchart/internal/errors"
)

// PresetInfo is what the picker shows for one preset.
type PresetInfo struct {
	Name        string
	Description string
	SarArgs     []string
}

// presetItem implements list.Item for the Bubbles list component.
type presetItem struct {
	preset PresetInfo
}

func (i presetItem) Title() string {
	return i.preset.Name
}

func (i presetItem) Description() string {
	var parts []string
	if i.preset.Description != "" {
		parts = append(parts, i.preset.Description)
	}
	if len(i.preset.SarArgs) > 0 {
		parts = append(parts, "sar "+strings.Join(i.preset.SarArgs, " "))
	}
	return strings.Join(parts, " | ")
}

func (i presetItem) FilterValue() string {
	// name, description and sar args are all searchable
	values := []string{i.preset.Name, i.preset.Description}
	values = append(values, i.preset.SarArgs...)
	return strings.Join(values, " ")
}

// PresetPickerModel is a Bubble Tea model for selecting a preset.
type PresetPickerModel struct {
	list     list.Model
	presets  []PresetInfo
	selected *PresetInfo
	quitting bool
}

type presetPickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var presetPickerKeys = presetPickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// NewPresetPickerModel creates a new preset picker model.
func NewPresetPickerModel(presets []PresetInfo) PresetPickerModel {
	items := make([]list.Item, len(presets))
	for i, p := range presets {
		items[i] = presetItem{preset: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderForeground(ColorSecondary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted)

	l := list.New(items, delegate, 80, 15)
	l.Title = "Select a preset"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)
	l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	return PresetPickerModel{
		list:    l,
		presets: presets,
	}
}

// Init implements tea.Model.
func (m PresetPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PresetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// while the filter prompt is open keys belong to it
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, presetPickerKeys.Enter):
			if item, ok := m.list.SelectedItem().(presetItem); ok {
				m.selected = &item.preset
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, presetPickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PresetPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the selected preset, or nil if cancelled.
func (m PresetPickerModel) Selected() *PresetInfo {
	return m.selected
}

// PickPreset displays an interactive preset picker on the terminal.
// Returns nil if the user cancels (ESC/q/Ctrl+C).
func PickPreset(presets []PresetInfo) (*PresetInfo, error) {
	return PickPresetWithOutput(presets, os.Stdout, os.Stdin)
}

// PickPresetWithOutput displays the preset picker using custom I/O.
func PickPresetWithOutput(presets []PresetInfo, output io.Writer, input io.Reader) (*PresetInfo, error) {
	if len(presets) == 0 {
		return nil, errors.New(errors.ErrConfig, "No presets to pick from",
			"Add one with 'sarchart presets add <name> -- <sar args>'.")
	}

	if len(presets) == 1 {
		return &presets[0], nil
	}

	p := tea.NewProgram(
		NewPresetPickerModel(presets),
		tea.WithOutput(output),
		tea.WithInput(input),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Preset picker failed",
			"Use --preset to name the preset directly.")
	}

	if m, ok := finalModel.(PresetPickerModel); ok {
		return m.Selected(), nil
	}
	return nil, nil
}
