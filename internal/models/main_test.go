package models

import "testing"

func TestParseTodoState(t *testing.T) {
	valid := []string{"draft", "todo", "doing", "done"}
	for _, s := range valid {
		st, err := ParseTodoState(s)
		if err != nil {
			t.Errorf("ParseTodoState(%q) error: %v", s, err)
		}
		if string(st) != s {
			t.Errorf("ParseTodoState(%q) = %q", s, st)
		}
	}

	invalid := []string{"", "Done", "archived", "in_progress", "todo "}
	for _, s := range invalid {
		if _, err := ParseTodoState(s); err == nil {
			t.Errorf("ParseTodoState(%q) did not return error", s)
		}
	}
}

func TestTodoStateValid(t *testing.T) {
	if !StateDoing.Valid() {
		t.Error("StateDoing reported invalid")
	}
	if TodoState("later").Valid() {
		t.Error("unknown state reported valid")
	}
}
