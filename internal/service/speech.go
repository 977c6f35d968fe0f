package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/davey/lotvoice/internal/domain"
)

// SpeechSynthesizer converts text into audio files through an
// OpenAI-compatible speech endpoint.
type SpeechSynthesizer struct {
	client   *resty.Client
	endpoint string
	model    string
	voice    string
	speed    float64
	format   string
}

// SpeechConfig holds configuration for the speech synthesizer.
type SpeechConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
	Speed   float64
	Format  string
	Timeout time.Duration
}

// NewSpeechSynthesizer creates a new speech synthesizer client.
func NewSpeechSynthesizer(cfg *SpeechConfig) *SpeechSynthesizer {
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

	format := cfg.Format
	if format == "" {
		format = "mp3"
	}

	return &SpeechSynthesizer{
		client:   client,
		endpoint: baseURL + "/audio/speech",
		model:    cfg.Model,
		voice:    cfg.Voice,
		speed:    cfg.Speed,
		format:   format,
	}
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize sends text to the speech endpoint and writes the returned audio
// to path, creating parent directories as needed. On failure the target path
// is left as-is: absent or partially written, no cleanup is attempted.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text, path string) error {
	req := speechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		Speed:          s.speed,
		ResponseFormat: s.format,
	}

	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(s.endpoint)

	if err != nil {
		return fmt.Errorf("failed to call speech synthesis API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return &domain.UpstreamSynthesisError{
			Status: httpResp.StatusCode(),
			Body:   string(httpResp.Body()),
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	if err := os.WriteFile(path, httpResp.Body(), 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
