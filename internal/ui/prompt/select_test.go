package prompt

import "testing"

func TestSelectModel_Update(t *testing.T) {
	t.Parallel()

	options := []Option{{Title: "default"}, {Title: "python", Detail: "active"}}

	tests := []struct {
		name      string
		keys      []string
		selected  int
		cancelled bool
	}{
		{"enter picks first", []string{"enter"}, 0, false},
		{"down then enter", []string{"j", "enter"}, 1, false},
		{"esc cancels", []string{"esc"}, -1, true},
		{"q cancels", []string{"q"}, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newSelectModel("Activate which devcontainer?", options)
			for _, k := range tt.keys {
				updated, _ := m.Update(keyPress(k))
				m = updated.(selectModel)
			}
			if m.selected != tt.selected {
				t.Errorf("selected = %d, want %d", m.selected, tt.selected)
			}
			if m.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", m.cancelled, tt.cancelled)
			}
			if !m.done {
				t.Error("done = false, want true")
			}
		})
	}
}

func TestSelect_NoOptions(t *testing.T) {
	t.Parallel()

	res, err := Select(t.Context(), "pick", nil)
	if err != nil {
		t.Fatalf("Select = %v", err)
	}
	if !res.Cancelled {
		t.Error("Select with no options should be cancelled")
	}
}
