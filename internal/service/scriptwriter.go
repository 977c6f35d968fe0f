package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/davey/lotvoice/internal/domain"
	"github.com/davey/lotvoice/internal/prompts"
)

// ScriptWriter generates voiceover script variants through an
// OpenAI-compatible chat completion endpoint.
type ScriptWriter struct {
	client      *resty.Client
	model       string
	temperature float32
	endpoint    string
}

// ScriptWriterConfig holds configuration for the script writer.
type ScriptWriterConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// NewScriptWriter creates a new script writer client.
func NewScriptWriter(cfg *ScriptWriterConfig) *ScriptWriter {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &ScriptWriter{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		endpoint:    baseURL + "/chat/completions",
	}
}

// OpenAI-compatible chat completion request/response structures
type chatRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessage      `json:"messages"`
	Temperature    float32            `json:"temperature"`
	ResponseFormat chatResponseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// variantsPayload is the JSON shape the writer prompt demands. The pointer
// distinguishes a missing "variants" key from an empty list.
type variantsPayload struct {
	Variants *[]domain.Variant `json:"variants"`
}

// Write sends one completion request for the given specs and parses the
// returned variants. Any variant count is accepted, including zero; callers
// see exactly what the model returned, in order.
func (s *ScriptWriter) Write(ctx context.Context, specs *domain.Specs) ([]domain.Variant, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.WriterSystemPrompt},
			{Role: "user", Content: prompts.WriterUserPrompt(specs)},
		},
		Temperature:    s.temperature,
		ResponseFormat: chatResponseFormat{Type: "json_object"},
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return nil, fmt.Errorf("failed to call text generation API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		body := string(httpResp.Body())
		if resp.Error != nil {
			body = resp.Error.Message
		}
		return nil, &domain.UpstreamGenerationError{
			Status: httpResp.StatusCode(),
			Body:   body,
		}
	}

	if resp.Error != nil {
		return nil, &domain.UpstreamGenerationError{
			Status: httpResp.StatusCode(),
			Body:   resp.Error.Message,
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &domain.MalformedUpstreamResponse{Detail: "no choices in response"}
	}

	return parseVariants(resp.Choices[0].Message.Content)
}

// parseVariants extracts the variants list from the model's message content.
// Models occasionally fence the JSON despite the strict-JSON directive, so
// fences are stripped before decoding.
func parseVariants(content string) ([]domain.Variant, error) {
	content = stripCodeFence(content)

	var payload variantsPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, &domain.MalformedUpstreamResponse{Detail: "response is not valid JSON: " + err.Error()}
	}
	if payload.Variants == nil {
		return nil, &domain.MalformedUpstreamResponse{Detail: `response JSON lacks a "variants" list`}
	}

	return *payload.Variants, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
