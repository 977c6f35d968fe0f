package domain

import "fmt"

// ValidationError indicates malformed caller input. Maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamGenerationError indicates a non-success status from the
// text-generation endpoint. Not retried; maps to HTTP 500.
type UpstreamGenerationError struct {
	Status int
	Body   string
}

func (e *UpstreamGenerationError) Error() string {
	return fmt.Sprintf("text generation failed: status %d: %s", e.Status, e.Body)
}

// UpstreamSynthesisError indicates a non-success status from the
// speech-synthesis endpoint. Not retried; maps to HTTP 500.
type UpstreamSynthesisError struct {
	Status int
	Body   string
}

func (e *UpstreamSynthesisError) Error() string {
	return fmt.Sprintf("speech synthesis failed: status %d: %s", e.Status, e.Body)
}

// MalformedUpstreamResponse indicates the text-generation response body was
// not the expected structured JSON.
type MalformedUpstreamResponse struct {
	Detail string
}

func (e *MalformedUpstreamResponse) Error() string {
	return "malformed upstream response: " + e.Detail
}
