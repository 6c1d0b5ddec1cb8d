package zhipu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"kb-assistant-be/pkg/llm"
)

func sseServer(t *testing.T, lines []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("request path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", auth)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
		}
	}))
}

func deltaChunk(content string) string {
	chunk := zhipuChatResponse{Choices: []zhipuChoice{{Delta: zhipuMessage{Content: content}}}}
	b, _ := json.Marshal(chunk)
	return "data: " + string(b)
}

func TestChatStreamAccumulatesDeltas(t *testing.T) {
	server := sseServer(t, []string{
		deltaChunk("你"),
		"",
		deltaChunk("好"),
		deltaChunk("！"),
		"data: [DONE]",
	})
	defer server.Close()

	provider := NewZhipuProvider(server.URL, "test-key", "glm-4-flash")

	var deltas []string
	full, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "你好"}},
		func(d string) { deltas = append(deltas, d) })
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}

	if full != "你好！" {
		t.Errorf("ChatStream() full = %q, want %q", full, "你好！")
	}
	if want := []string{"你", "好", "！"}; !reflect.DeepEqual(deltas, want) {
		t.Errorf("deltas = %v, want %v", deltas, want)
	}
}

func TestChatStreamSkipsMalformedChunks(t *testing.T) {
	server := sseServer(t, []string{
		deltaChunk("正常"),
		"data: {not json",
		`data: {"choices":[]}`,
		deltaChunk("内容"),
		"data: [DONE]",
	})
	defer server.Close()

	provider := NewZhipuProvider(server.URL, "test-key", "glm-4-flash")

	full, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "测试"}}, nil)
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}
	if full != "正常内容" {
		t.Errorf("ChatStream() full = %q, want garbled chunk skipped", full)
	}
}

func TestChatStreamStopsAtDone(t *testing.T) {
	server := sseServer(t, []string{
		deltaChunk("前"),
		"data: [DONE]",
		deltaChunk("后"),
	})
	defer server.Close()

	provider := NewZhipuProvider(server.URL, "test-key", "glm-4-flash")

	full, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "测试"}}, nil)
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}
	if full != "前" {
		t.Errorf("ChatStream() full = %q, want reading stopped at [DONE]", full)
	}
}

func TestChatStreamUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewZhipuProvider(server.URL, "bad-key", "glm-4-flash")

	_, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "测试"}}, nil)
	if err == nil {
		t.Fatal("ChatStream() error = nil, want non-200 reported as failure")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("ChatStream() error = %v, want status in message", err)
	}
}

func TestChatNonStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req zhipuChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("Chat() sent stream=true, want false")
		}
		if req.Model != "glm-4-flash" {
			t.Errorf("request model = %q, want glm-4-flash", req.Model)
		}
		resp := zhipuChatResponse{Choices: []zhipuChoice{{Message: zhipuMessage{Role: "assistant", Content: "答案"}}}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := NewZhipuProvider(server.URL, "test-key", "glm-4-flash")

	got, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "问题"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "答案" {
		t.Errorf("Chat() = %q, want %q", got, "答案")
	}
}

func TestNewZhipuProviderDefaultBaseURL(t *testing.T) {
	provider := NewZhipuProvider("", "key", "glm-4-flash")
	if provider.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", provider.BaseURL, DefaultBaseURL)
	}
}
