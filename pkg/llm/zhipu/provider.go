package zhipu

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kb-assistant-be/pkg/llm"
)

const DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4"

// ZhipuProvider talks to the Zhipu GLM chat completions API.
type ZhipuProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

// Ensure ZhipuProvider implements LLMProvider
var _ llm.LLMProvider = &ZhipuProvider{}

func NewZhipuProvider(baseURL, apiKey, modelName string) *ZhipuProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ZhipuProvider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type zhipuChatRequest struct {
	Model       string         `json:"model"`
	Messages    []zhipuMessage `json:"messages"`
	Stream      bool           `json:"stream"`
	Temperature float64        `json:"temperature,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
}

type zhipuMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type zhipuChoice struct {
	Message zhipuMessage `json:"message"`
	Delta   zhipuMessage `json:"delta"`
}

type zhipuChatResponse struct {
	Choices []zhipuChoice `json:"choices"`
}

// --- Interface Implementation ---

func (z *ZhipuProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	resp, err := z.send(ctx, history, false, opts...)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp zhipuChatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("zhipu returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ChatStream consumes the SSE response line by line. Each "data:" line
// carries one delta chunk; lines that fail to parse are skipped so a single
// garbled chunk cannot abort the stream.
func (z *ZhipuProvider) ChatStream(ctx context.Context, history []llm.Message, onDelta func(string), opts ...llm.Option) (string, error) {
	resp, err := z.send(ctx, history, true, opts...)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var full strings.Builder

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}

		var chunk zhipuChatResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue // malformed chunk, skip
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		full.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}

	return full.String(), nil
}

func (z *ZhipuProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return z.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (z *ZhipuProvider) send(ctx context.Context, history []llm.Message, streaming bool, opts ...llm.Option) (*http.Response, error) {
	options := &llm.Options{
		Temperature: 0.5,
		MaxTokens:   2000,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]zhipuMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = zhipuMessage{Role: role, Content: msg.Content}
	}

	model := z.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := zhipuChatRequest{
		Model:       model,
		Messages:    messages,
		Stream:      streaming,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := z.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+z.APIKey)

	resp, err := z.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zhipu request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("zhipu error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}
