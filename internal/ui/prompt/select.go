package prompt

import (
	"os"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/dlcmd/internal/ui/styles"
)

// Option is one selectable entry. Description is shown below the title.
type Option struct {
	Title       string
	Description string
}

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

type listItem struct {
	opt   Option
	index int
}

func (i listItem) Title() string       { return i.opt.Title }
func (i listItem) Description() string { return i.opt.Description }
func (i listItem) FilterValue() string { return i.opt.Title }

type selectModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func newSelectModel(prompt string, options []Option) selectModel {
	items := make([]list.Item, len(options))
	showDesc := false
	for i, opt := range options {
		items[i] = listItem{opt: opt, index: i}
		if opt.Description != "" {
			showDesc = true
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = showDesc
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = styles.AccentStyle
	delegate.Styles.SelectedDesc = styles.MutedStyle

	perItem := 1
	if showDesc {
		perItem = 2
	}
	l := list.New(items, delegate, 80, min(len(options)*perItem+6, 24))
	l.Title = prompt
	l.Styles.Title = styles.HeaderStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return selectModel{list: l, selected: -1}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// while typing a filter every key belongs to the list
		if m.list.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

func (m selectModel) result(options []Option) SelectResult {
	if m.cancelled || m.selected < 0 || m.selected >= len(options) {
		return SelectResult{Cancelled: true, Index: -1}
	}
	return SelectResult{Value: options[m.selected].Title, Index: m.selected}
}

// Select shows a list selection prompt on stderr and returns the user's
// selection.
func Select(prompt string, options []Option) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true, Index: -1}, nil
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newSelectModel(prompt, options),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	finalModel, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}
	return finalModel.(selectModel).result(options), nil
}
