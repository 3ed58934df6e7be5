// Copyright 2025 CarePlanGen
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package llm provides a unified interface and types for LLM (Large Language
// Model) providers. It defines the common abstractions the care-plan
// orchestration engine uses to talk to text-generation backends, enabling
// pluggable provider implementations.
package llm

import (
	"fmt"
	"time"

	"careplan/platform/careplan/docjson"
)

// Role identifies the author of a chat message.
type Role string

const (
	// RoleSystem is the system/behavior-setting message role.
	RoleSystem Role = "system"

	// RoleUser is the user message role.
	RoleUser Role = "user"

	// RoleAssistant is the model's own message role.
	RoleAssistant Role = "assistant"
)

// Message is one entry in an ordered chat message list.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest encapsulates all parameters for an LLM completion request.
// This is the unified request type used across all providers.
type CompletionRequest struct {
	// Messages is the ordered system/user message list.
	Messages []Message `json:"messages"`

	// MaxTokens limits the maximum number of tokens in the response.
	// If 0, provider defaults are used.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 = deterministic).
	// Negative means unset; providers apply their default.
	Temperature float64 `json:"temperature,omitempty"`

	// Model overrides the provider's default model.
	Model string `json:"model,omitempty"`

	// Stream enables streaming response mode.
	// When true, use CompleteStream instead of Complete.
	Stream bool `json:"stream,omitempty"`

	// ResponseSchema, when non-nil, constrains the model's structured output
	// to the given JSON Schema. Providers that cannot enforce schemas must
	// reject requests carrying one.
	ResponseSchema docjson.Object `json:"response_schema,omitempty"`

	// Timeout bounds this single request. If 0, provider defaults apply.
	Timeout time.Duration `json:"-"`
}

// CompletionResponse contains the result of an LLM completion.
type CompletionResponse struct {
	// Content is the full raw text the model produced, reasoning
	// delimiters included.
	Content string `json:"content"`

	// Model is the actual model used (may differ from requested).
	Model string `json:"model"`

	// Usage contains token usage statistics.
	Usage UsageStats `json:"usage"`

	// Latency is the time taken to generate the response.
	Latency time.Duration `json:"latency"`

	// FinishReason indicates why generation stopped.
	FinishReason string `json:"finish_reason,omitempty"`
}

// UsageStats tracks token usage for monitoring.
type UsageStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// StreamChunk represents a single chunk in a streaming response.
type StreamChunk struct {
	// Type identifies the chunk type for processing.
	// Common values: "content", "done", "error".
	Type string `json:"type"`

	// Content is the raw text delta of this chunk.
	Content string `json:"content,omitempty"`

	// Done indicates this is the final chunk.
	Done bool `json:"done"`

	// Error contains error information if Type is "error".
	Error string `json:"error,omitempty"`
}

// StreamHandler is a callback function for processing streaming chunks.
// Return an error to abort the stream.
type StreamHandler func(chunk StreamChunk) error

// ProviderError represents an error from an LLM provider.
type ProviderError struct {
	// Provider is the name of the provider that returned the error.
	Provider string `json:"provider"`

	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// StatusCode is the HTTP status code (if applicable).
	StatusCode int `json:"status_code,omitempty"`

	// Retryable indicates if the request can be retried.
	Retryable bool `json:"retryable"`

	// Cause is the underlying error (if any).
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Common error codes.
const (
	// ErrCodeRateLimit indicates rate limiting.
	ErrCodeRateLimit = "rate_limit"

	// ErrCodeAuth indicates authentication failure.
	ErrCodeAuth = "authentication_error"

	// ErrCodeInvalidRequest indicates a malformed request.
	ErrCodeInvalidRequest = "invalid_request"

	// ErrCodeServerError indicates a provider server error.
	ErrCodeServerError = "server_error"

	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"

	// ErrCodeUnavailable indicates the provider is unavailable.
	ErrCodeUnavailable = "unavailable"
)

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Code:      code,
		Message:   message,
		Retryable: isRetryableCode(code),
	}
}

// isRetryableCode determines if an error code is retryable.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeRateLimit, ErrCodeServerError, ErrCodeTimeout, ErrCodeUnavailable:
		return true
	default:
		return false
	}
}
