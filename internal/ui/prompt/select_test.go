package prompt

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

var testOptions = []Option{
	{Title: "checkout", Description: "git fetch https://x/demo HEAD && git checkout FETCH_HEAD"},
	{Title: "clone with commit msg hook", Description: "git clone https://x/demo demo"},
	{Title: "pull", Description: "git pull https://x/demo HEAD"},
}

func press(m selectModel, keys ...string) (selectModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyPress(k))
		m = updated.(selectModel)
	}
	return m, cmd
}

func TestSelectModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keys      []string
		want      SelectResult
		wantDone  bool
		wantQuit  bool
	}{
		{"enter selects first", []string{"enter"}, SelectResult{Value: "checkout", Index: 0}, true, true},
		{"down then enter", []string{"down", "enter"}, SelectResult{Value: "clone with commit msg hook", Index: 1}, true, true},
		{"esc cancels", []string{"esc"}, SelectResult{Cancelled: true, Index: -1}, true, true},
		{"q cancels", []string{"q"}, SelectResult{Cancelled: true, Index: -1}, true, true},
		{"ctrl+c cancels", []string{"ctrl+c"}, SelectResult{Cancelled: true, Index: -1}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, cmd := press(newSelectModel("Pick a command", testOptions), tt.keys...)
			if m.done != tt.wantDone {
				t.Errorf("done = %v, want %v", m.done, tt.wantDone)
			}
			if (cmd != nil) != tt.wantQuit {
				t.Errorf("cmd returned = %v, want %v", cmd != nil, tt.wantQuit)
			}
			if got := m.result(testOptions); got != tt.want {
				t.Errorf("result = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectModel_ViewEmptyWhenDone(t *testing.T) {
	t.Parallel()

	m, _ := press(newSelectModel("Pick a command", testOptions), "enter")
	if v := m.View(); v.Content != "" {
		t.Errorf("View() after selection = %q, want empty", v.Content)
	}
}

func TestSelect_NoOptions(t *testing.T) {
	t.Parallel()

	res, err := Select("Pick a command", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cancelled {
		t.Error("expected cancelled result for empty options")
	}
}
