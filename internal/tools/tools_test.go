package tools

import (
	"context"
	"strings"
	"testing"
)

// fakeTool is a configurable tool for registry tests.
type fakeTool struct {
	name    string
	schema  Schema
	execute func(ctx context.Context, args map[string]any) ToolResult
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return "fake tool for tests" }
func (f *fakeTool) Schema() Schema {
	if f.schema.Type == "" {
		return ObjectSchema(nil)
	}
	return f.schema
}
func (f *fakeTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	if f.execute == nil {
		return OK("ok")
	}
	return f.execute(ctx, args)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "echo"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	err := r.Register(&fakeTool{name: "echo"})
	if err == nil {
		t.Fatal("expected error on duplicate registration")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&fakeTool{name: "alpha"})
	r.MustRegister(&fakeTool{name: "beta"})

	result := r.Execute(context.Background(), "gamma", nil)
	if result.Success {
		t.Fatal("expected failure for unknown tool")
	}
	if !strings.Contains(result.Error, "gamma") {
		t.Fatalf("error should name the missing tool: %q", result.Error)
	}
	if !strings.Contains(result.Error, "alpha") || !strings.Contains(result.Error, "beta") {
		t.Fatalf("error should list available tools: %q", result.Error)
	}
}

func TestRegistry_PanicRecovery(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&fakeTool{
		name: "boom",
		execute: func(ctx context.Context, args map[string]any) ToolResult {
			panic("kaboom")
		},
	})

	result := r.Execute(context.Background(), "boom", map[string]any{})
	if result.Success {
		t.Fatal("expected failure when tool panics")
	}
	if !strings.Contains(result.Error, "kaboom") {
		t.Fatalf("error should carry panic value: %q", result.Error)
	}
}

func TestRegistry_AppliesDefaults(t *testing.T) {
	var got map[string]any
	r := NewRegistry()
	r.MustRegister(&fakeTool{
		name: "defaulted",
		schema: ObjectSchema(map[string]Property{
			"depth": {Type: "integer", Default: 3},
			"path":  {Type: "string", Default: "."},
		}),
		execute: func(ctx context.Context, args map[string]any) ToolResult {
			got = args
			return OK(nil)
		},
	})

	result := r.Execute(context.Background(), "defaulted", map[string]any{"path": "src"})
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Error)
	}
	if got["depth"] != 3 {
		t.Fatalf("default depth not applied: %v", got["depth"])
	}
	if got["path"] != "src" {
		t.Fatalf("explicit arg overridden: %v", got["path"])
	}
}

func TestRegistry_OrderPreserved(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.MustRegister(&fakeTool{name: name})
	}

	names := r.Names()
	want := []string{"zeta", "alpha", "mid"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("order not preserved: got %v, want %v", names, want)
		}
	}

	schemas := r.FunctionSchemas()
	if len(schemas) != 3 {
		t.Fatalf("expected 3 schemas, got %d", len(schemas))
	}
	for i, name := range want {
		if schemas[i].Function.Name != name {
			t.Fatalf("schema order mismatch at %d: %s", i, schemas[i].Function.Name)
		}
		if schemas[i].Type != "function" {
			t.Fatalf("schema type should be function, got %q", schemas[i].Type)
		}
	}
}

func TestSchema_Validate(t *testing.T) {
	schema := ObjectSchema(map[string]Property{
		"mode":  {Type: "string", Enum: []string{"fast", "slow"}},
		"depth": {Type: "integer", Minimum: IntPtr(1), Maximum: IntPtr(10)},
		"name":  {Type: "string"},
	}, "name")

	tests := []struct {
		desc    string
		args    map[string]any
		wantErr string
	}{
		{"valid", map[string]any{"name": "x", "mode": "fast", "depth": 5}, ""},
		{"missing required", map[string]any{"mode": "fast"}, "missing required"},
		{"bad enum", map[string]any{"name": "x", "mode": "turbo"}, "must be one of"},
		{"below minimum", map[string]any{"name": "x", "depth": 0}, ">= 1"},
		{"above maximum", map[string]any{"name": "x", "depth": 11}, "<= 10"},
		{"float depth accepted", map[string]any{"name": "x", "depth": float64(4)}, ""},
		{"fractional depth rejected", map[string]any{"name": "x", "depth": 4.5}, "must be an integer"},
		{"unknown keys tolerated", map[string]any{"name": "x", "bogus": true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := schema.Validate(tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]any{
		"int":   7,
		"int64": int64(8),
		"whole": float64(9),
		"frac":  9.5,
		"str":   "10",
	}

	if v, ok := IntArg(args, "int"); !ok || v != 7 {
		t.Fatalf("int: got %d, %v", v, ok)
	}
	if v, ok := IntArg(args, "int64"); !ok || v != 8 {
		t.Fatalf("int64: got %d, %v", v, ok)
	}
	if v, ok := IntArg(args, "whole"); !ok || v != 9 {
		t.Fatalf("whole float: got %d, %v", v, ok)
	}
	if _, ok := IntArg(args, "frac"); ok {
		t.Fatal("fractional float should be rejected")
	}
	if _, ok := IntArg(args, "str"); ok {
		t.Fatal("string should be rejected")
	}
	if _, ok := IntArg(args, "missing"); ok {
		t.Fatal("missing key should be rejected")
	}
}
