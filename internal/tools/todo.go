package tools

import (
	"context"
	"fmt"
	"strings"
)

// TodoItem is a single entry in the agent's working plan.
type TodoItem struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Markdown renders the item as a checkbox line.
func (i TodoItem) Markdown() string {
	checkbox := "[ ]"
	if i.Completed {
		checkbox = "[x]"
	}
	return fmt.Sprintf("- %s %d. %s", checkbox, i.Number, i.Text)
}

// TodoList manages an ordered list of todo items with markdown output.
// Item numbers are assigned in strictly increasing order starting at 1 and
// are never reused; edits mutate in place and never renumber. There is no
// per-item delete, only Clear, which restarts numbering.
type TodoList struct {
	items []TodoItem
	next  int
}

// NewTodoList creates an empty todo list.
func NewTodoList() *TodoList {
	return &TodoList{next: 1}
}

// Add appends a new item and returns its assigned number.
func (l *TodoList) Add(text string) int {
	item := TodoItem{Number: l.next, Text: text}
	l.items = append(l.items, item)
	l.next++
	return item.Number
}

// Edit updates an existing item's completion status and/or text. Nil means
// keep the current value. It reports whether the item was found.
func (l *TodoList) Edit(number int, completed *bool, text *string) bool {
	for i := range l.items {
		if l.items[i].Number != number {
			continue
		}
		if completed != nil {
			l.items[i].Completed = *completed
		}
		if text != nil {
			l.items[i].Text = *text
		}
		return true
	}
	return false
}

// Get returns the item with the given number.
func (l *TodoList) Get(number int) (TodoItem, bool) {
	for _, item := range l.items {
		if item.Number == number {
			return item, true
		}
	}
	return TodoItem{}, false
}

// Items returns a copy of all items in insertion order.
func (l *TodoList) Items() []TodoItem {
	out := make([]TodoItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *TodoList) Len() int {
	return len(l.items)
}

// Markdown renders the whole list as checkbox lines in insertion order.
// This exact format is shown to the model as ground truth state.
func (l *TodoList) Markdown() string {
	if len(l.items) == 0 {
		return "No todos yet."
	}
	lines := make([]string, len(l.items))
	for i, item := range l.items {
		lines[i] = item.Markdown()
	}
	return strings.Join(lines, "\n")
}

// TodoStats summarizes list completion.
type TodoStats struct {
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
	PendingItems   int `json:"pending_items"`
}

// Stats returns completion statistics.
func (l *TodoList) Stats() TodoStats {
	completed := 0
	for _, item := range l.items {
		if item.Completed {
			completed++
		}
	}
	return TodoStats{
		TotalItems:     len(l.items),
		CompletedItems: completed,
		PendingItems:   len(l.items) - completed,
	}
}

// Clear removes all items and resets numbering to 1.
func (l *TodoList) Clear() {
	l.items = nil
	l.next = 1
}

// TodoViewTool shows the current todo list.
type TodoViewTool struct {
	list *TodoList
}

// NewTodoViewTool creates a todo_view tool over a shared list.
func NewTodoViewTool(list *TodoList) *TodoViewTool {
	return &TodoViewTool{list: list}
}

func (t *TodoViewTool) Name() string {
	return "todo_view"
}

func (t *TodoViewTool) Description() string {
	return "View the current todo list in markdown format with completion status."
}

func (t *TodoViewTool) Schema() Schema {
	return ObjectSchema(nil)
}

func (t *TodoViewTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	stats := t.list.Stats()
	return OK(map[string]any{
		"markdown":        t.list.Markdown(),
		"total_items":     stats.TotalItems,
		"completed_items": stats.CompletedItems,
		"pending_items":   stats.PendingItems,
	})
}

// TodoAddTool appends a new todo item.
type TodoAddTool struct {
	list *TodoList
}

// NewTodoAddTool creates a todo_add tool over a shared list.
func NewTodoAddTool(list *TodoList) *TodoAddTool {
	return &TodoAddTool{list: list}
}

func (t *TodoAddTool) Name() string {
	return "todo_add"
}

func (t *TodoAddTool) Description() string {
	return "Add a new todo item to the list. Items are automatically numbered."
}

func (t *TodoAddTool) Schema() Schema {
	return ObjectSchema(map[string]Property{
		"text": {
			Type:        "string",
			Description: "Text description for the new todo item",
		},
	}, "text")
}

func (t *TodoAddTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	text, ok := StringArg(args, "text")
	if !ok {
		return Failf("parameter \"text\" must be a string")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Failf("todo text cannot be empty")
	}

	number := t.list.Add(text)
	return OK(map[string]any{
		"number":       number,
		"text":         text,
		"added":        true,
		"new_markdown": t.list.Markdown(),
	})
}

// TodoEditTool edits an existing todo item by number.
type TodoEditTool struct {
	list *TodoList
}

// NewTodoEditTool creates a todo_edit tool over a shared list.
func NewTodoEditTool(list *TodoList) *TodoEditTool {
	return &TodoEditTool{list: list}
}

func (t *TodoEditTool) Name() string {
	return "todo_edit"
}

func (t *TodoEditTool) Description() string {
	return "Edit a todo item by number. Can change completion status (true/false) " +
		"and/or update the text description."
}

func (t *TodoEditTool) Schema() Schema {
	return ObjectSchema(map[string]Property{
		"number": {
			Type:        "integer",
			Description: "Todo item number to edit (must be existing number)",
		},
		"completed": {
			Type:        "boolean",
			Description: "Mark as completed (true) or incomplete (false)",
		},
		"text": {
			Type:        "string",
			Description: "New text description for the todo item",
		},
	}, "number")
}

func (t *TodoEditTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	number, ok := IntArg(args, "number")
	if !ok {
		return Failf("parameter \"number\" must be an integer")
	}

	var completed *bool
	if v, ok := BoolArg(args, "completed"); ok {
		completed = &v
	}
	var text *string
	if v, ok := StringArg(args, "text"); ok {
		text = &v
	}

	if completed == nil && text == nil {
		return Failf("must provide either \"completed\" status or \"text\" to edit")
	}

	if !t.list.Edit(number, completed, text) {
		return Failf("todo item #%d not found", number)
	}

	item, _ := t.list.Get(number)
	return OK(map[string]any{
		"number":  number,
		"updated": true,
		"item": map[string]any{
			"number":    item.Number,
			"text":      item.Text,
			"completed": item.Completed,
		},
		"new_markdown": t.list.Markdown(),
	})
}
