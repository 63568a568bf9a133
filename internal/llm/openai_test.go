package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

func testMessages() []types.Message {
	return []types.Message{{Role: types.RoleUser, Content: "hello"}}
}

func TestClient_Generate(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{
					"content": "Let me look at the tree.",
					"tool_calls": []map[string]any{{
						"id":   "call_abc",
						"type": "function",
						"function": map[string]any{
							"name":      "tree",
							"arguments": `{"depth": 2}`,
						},
					}},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "test-model", 5*time.Second, 0.2, 1024)
	schemas := []tools.FunctionSchema{{
		Type:     "function",
		Function: tools.FunctionDetail{Name: "tree", Parameters: tools.ObjectSchema(nil)},
	}}

	resp, err := client.Generate(context.Background(), testMessages(), schemas, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if captured.Model != "test-model" {
		t.Fatalf("model = %q", captured.Model)
	}
	if captured.ToolChoice != "auto" || len(captured.Tools) != 1 {
		t.Fatalf("tools not forwarded: choice=%q n=%d", captured.ToolChoice, len(captured.Tools))
	}

	if !resp.HasToolCalls() {
		t.Fatal("expected tool calls")
	}
	tc := resp.ToolCalls[0]
	if tc.ID != "call_abc" || tc.Name != "tree" || tc.Arguments != `{"depth": 2}` {
		t.Fatalf("tool call = %+v", tc)
	}
	if !resp.ShouldContinue {
		t.Fatal("tool calls must continue")
	}
}

func TestClient_GenerateErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, "", "m", time.Second, 0, 0)
		if _, err := client.Generate(context.Background(), testMessages(), nil, 0); err == nil {
			t.Fatal("expected error on 500")
		}
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer server.Close()

		client := NewClient(server.URL, "", "m", time.Second, 0, 0)
		if _, err := client.Generate(context.Background(), testMessages(), nil, 0); err == nil {
			t.Fatal("expected error on empty choices")
		}
	})
}

func TestShouldContinue(t *testing.T) {
	tests := []struct {
		content   string
		toolCalls int
		want      bool
	}{
		{"anything at all", 2, true},
		{"Task completed, nothing left.", 0, false},
		{"Let me read the config next.", 0, true},
		{"Now I will inspect the handlers.", 0, true},
		{"The weather is nice.", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		if got := shouldContinue(tt.content, tt.toolCalls); got != tt.want {
			t.Errorf("shouldContinue(%q, %d) = %v, want %v", tt.content, tt.toolCalls, got, tt.want)
		}
	}
}

func TestScriptedBackend_Defaults(t *testing.T) {
	backend := NewScriptedBackend()
	schemas := []tools.FunctionSchema{{
		Type:     "function",
		Function: tools.FunctionDetail{Name: "tree"},
	}}

	first, err := backend.Generate(context.Background(), testMessages(), schemas, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !first.HasToolCalls() || first.ToolCalls[0].Name != "tree" {
		t.Fatalf("first response = %+v", first)
	}
	if first.ToolCalls[0].ID == "" {
		t.Fatal("tool call needs an id")
	}

	second, err := backend.Generate(context.Background(), testMessages(), schemas, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if second.HasToolCalls() || second.ShouldContinue {
		t.Fatalf("second response = %+v", second)
	}
	if backend.Calls() != 2 {
		t.Fatalf("calls = %d", backend.Calls())
	}
}

func TestScriptedBackend_Cycles(t *testing.T) {
	backend := NewScriptedBackend(
		Response{Message: "one"},
		Response{Message: "two"},
	)

	want := []string{"one", "two", "one"}
	for i, expected := range want {
		resp, err := backend.Generate(context.Background(), nil, nil, 0)
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		if resp.Message != expected {
			t.Fatalf("call %d = %q, want %q", i, resp.Message, expected)
		}
	}
}
