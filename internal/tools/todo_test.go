package tools

import (
	"context"
	"strings"
	"testing"
)

func TestTodoList_NumberingMonotonic(t *testing.T) {
	l := NewTodoList()

	if n := l.Add("first"); n != 1 {
		t.Fatalf("first number = %d, want 1", n)
	}
	if n := l.Add("second"); n != 2 {
		t.Fatalf("second number = %d, want 2", n)
	}
	if n := l.Add("third"); n != 3 {
		t.Fatalf("third number = %d, want 3", n)
	}
}

func TestTodoList_Markdown(t *testing.T) {
	l := NewTodoList()
	if got := l.Markdown(); got != "No todos yet." {
		t.Fatalf("empty markdown = %q", got)
	}

	l.Add("write tests")
	l.Add("review docs")
	done := true
	l.Edit(2, &done, nil)

	want := "- [ ] 1. write tests\n- [x] 2. review docs"
	if got := l.Markdown(); got != want {
		t.Fatalf("markdown = %q, want %q", got, want)
	}
}

func TestTodoList_EditDoesNotRenumber(t *testing.T) {
	l := NewTodoList()
	l.Add("a")
	l.Add("b")

	text := "b updated"
	if !l.Edit(2, nil, &text) {
		t.Fatal("edit should find item 2")
	}

	item, ok := l.Get(2)
	if !ok || item.Text != "b updated" || item.Number != 2 {
		t.Fatalf("item after edit = %+v", item)
	}
	if l.Edit(99, nil, &text) {
		t.Fatal("edit of missing item should report false")
	}
}

func TestTodoList_ClearResetsNumbering(t *testing.T) {
	l := NewTodoList()
	l.Add("a")
	l.Add("b")
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("len after clear = %d", l.Len())
	}
	if n := l.Add("fresh"); n != 1 {
		t.Fatalf("number after clear = %d, want 1", n)
	}
}

func TestTodoList_Stats(t *testing.T) {
	l := NewTodoList()
	l.Add("a")
	l.Add("b")
	l.Add("c")
	done := true
	l.Edit(1, &done, nil)

	stats := l.Stats()
	if stats.TotalItems != 3 || stats.CompletedItems != 1 || stats.PendingItems != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestTodoTools(t *testing.T) {
	ctx := context.Background()
	list := NewTodoList()
	add := NewTodoAddTool(list)
	edit := NewTodoEditTool(list)
	view := NewTodoViewTool(list)

	result := add.Execute(ctx, map[string]any{"text": "  explore repo  "})
	if !result.Success {
		t.Fatalf("add failed: %s", result.Error)
	}
	data := result.Data.(map[string]any)
	if data["number"] != 1 || data["text"] != "explore repo" {
		t.Fatalf("add data = %v", data)
	}

	result = add.Execute(ctx, map[string]any{"text": "   "})
	if result.Success {
		t.Fatal("empty text should fail")
	}

	result = edit.Execute(ctx, map[string]any{"number": float64(1), "completed": true})
	if !result.Success {
		t.Fatalf("edit failed: %s", result.Error)
	}

	result = edit.Execute(ctx, map[string]any{"number": 42, "completed": true})
	if result.Success || !strings.Contains(result.Error, "#42") {
		t.Fatalf("missing item edit = %+v", result)
	}

	result = edit.Execute(ctx, map[string]any{"number": 1})
	if result.Success {
		t.Fatal("edit with no changes should fail")
	}

	result = view.Execute(ctx, nil)
	if !result.Success {
		t.Fatalf("view failed: %s", result.Error)
	}
	data = result.Data.(map[string]any)
	if data["markdown"] != "- [x] 1. explore repo" {
		t.Fatalf("view markdown = %v", data["markdown"])
	}
	if data["completed_items"] != 1 || data["total_items"] != 1 {
		t.Fatalf("view stats = %v", data)
	}
}
