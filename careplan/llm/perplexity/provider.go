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

// Package perplexity provides an LLM provider implementation for Perplexity's
// Sonar models. It supports schema-constrained structured output and both
// streaming and non-streaming completion modes against the chat-completions
// endpoint.
package perplexity

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"careplan/platform/careplan/docjson"
	"careplan/platform/careplan/llm"
)

const (
	// DefaultBaseURL is the default Perplexity API endpoint
	DefaultBaseURL = "https://api.perplexity.ai"

	// DefaultTimeout is the default HTTP timeout. Schema-constrained
	// generation for one stage can legitimately run for minutes.
	DefaultTimeout = 180 * time.Second

	// DefaultMaxTokens is the default max tokens for completions
	DefaultMaxTokens = 8000

	// DefaultTemperature is the default temperature for completions
	DefaultTemperature = 0.2

	// streamDone is the end-of-stream sentinel on the SSE channel
	streamDone = "[DONE]"
)

// Model constants for supported Sonar models
const (
	ModelSonar             = "sonar"
	ModelSonarPro          = "sonar-pro"
	ModelSonarReasoning    = "sonar-reasoning"
	ModelSonarReasoningPro = "sonar-reasoning-pro"

	// Default model
	DefaultModel = ModelSonarReasoningPro
)

// HTTPClient is an interface for HTTP client operations (enables testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider implements the LLM provider interface for Perplexity Sonar
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	client  HTTPClient
	healthy bool
	mu      sync.RWMutex
}

// Config contains configuration for the Perplexity provider
type Config struct {
	APIKey  string        // Required: Perplexity API key
	BaseURL string        // Optional: API base URL (default: https://api.perplexity.ai)
	Model   string        // Optional: Default model (default: sonar-reasoning-pro)
	Timeout time.Duration // Optional: HTTP timeout (default: 180s)
}

// NewProvider creates a new Perplexity provider instance
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("perplexity API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Provider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		client:  &http.Client{Timeout: cfg.Timeout},
		healthy: true,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "perplexity"
}

// SupportsStreaming indicates if the provider supports streaming
func (p *Provider) SupportsStreaming() bool {
	return true
}

// IsHealthy returns whether the provider is healthy
func (p *Provider) IsHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.healthy && p.apiKey != ""
}

// setHealthy updates the provider health status
func (p *Provider) setHealthy(healthy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = healthy
}

// HealthCheck verifies connectivity and authentication with a minimal
// non-streaming completion request.
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.Complete(ctx, llm.CompletionRequest{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Hello"}},
		MaxTokens: 16,
	})
	if err != nil {
		return fmt.Errorf("perplexity health check failed: %w", err)
	}
	return nil
}

// buildRequestBody assembles the chat-completions payload for a request.
func (p *Provider) buildRequestBody(req llm.CompletionRequest, stream bool) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	// Temperature: 0.0 is valid (deterministic), negative is unset
	temperature := req.Temperature
	if temperature < 0 {
		temperature = DefaultTemperature
	}

	messages := make([]apiMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, apiMessage{Role: string(m.Role), Content: m.Content})
	}

	apiReq := apiRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		Stream:      stream,
	}

	if req.ResponseSchema != nil {
		apiReq.ResponseFormat = &responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchemaWrapper{Schema: req.ResponseSchema},
		}
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return body, nil
}

// doRequest issues the HTTP request and checks the status code.
func (p *Provider) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.setHealthy(false)
		if errors.Is(err, context.DeadlineExceeded) {
			perr := llm.NewProviderError(p.Name(), llm.ErrCodeTimeout, "request timed out")
			perr.Cause = err
			return nil, perr
		}
		perr := llm.NewProviderError(p.Name(), llm.ErrCodeUnavailable, err.Error())
		perr.Cause = err
		return nil, perr
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode >= 500 {
			p.setHealthy(false)
		}
		return nil, p.parseAPIError(resp.StatusCode, respBody)
	}

	p.setHealthy(true)
	return resp, nil
}

// requestContext applies the per-request timeout when one is set.
func (p *Provider) requestContext(ctx context.Context, req llm.CompletionRequest) (context.Context, context.CancelFunc) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = p.timeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Complete generates a non-streaming completion for the given request
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	start := time.Now()

	body, err := p.buildRequestBody(req, false)
	if err != nil {
		return nil, err
	}

	ctx, cancel := p.requestContext(ctx, req)
	defer cancel()

	resp, err := p.doRequest(ctx, body)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var content, finishReason string
	if len(apiResp.Choices) > 0 {
		content = apiResp.Choices[0].Message.Content
		finishReason = apiResp.Choices[0].FinishReason
	}

	return &llm.CompletionResponse{
		Content:      content,
		Model:        apiResp.Model,
		FinishReason: finishReason,
		Usage: llm.UsageStats{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
		Latency: time.Since(start),
	}, nil
}

// CompleteStream generates a streaming completion for the given request.
// The handler receives each raw content delta in order; the aggregated
// response carries the full accumulated text.
func (p *Provider) CompleteStream(ctx context.Context, req llm.CompletionRequest, handler llm.StreamHandler) (*llm.CompletionResponse, error) {
	start := time.Now()

	body, err := p.buildRequestBody(req, true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := p.requestContext(ctx, req)
	defer cancel()

	resp, err := p.doRequest(ctx, body)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return p.processStream(resp.Body, handler, start)
}

// processStream consumes the SSE stream from the chat-completions endpoint.
func (p *Provider) processStream(body io.Reader, handler llm.StreamHandler, start time.Time) (*llm.CompletionResponse, error) {
	scanner := bufio.NewScanner(body)
	// Single deltas can carry large JSON slices; raise the line cap.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var contentBuilder strings.Builder
	var usage llm.UsageStats
	var finishReason string
	var responseModel string

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == streamDone {
			break
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue // Skip malformed events
		}

		if event.Model != "" {
			responseModel = event.Model
		}
		if event.Usage != nil {
			usage.PromptTokens = event.Usage.PromptTokens
			usage.CompletionTokens = event.Usage.CompletionTokens
			usage.TotalTokens = event.Usage.TotalTokens
		}

		if len(event.Choices) == 0 {
			continue
		}
		choice := event.Choices[0]
		if choice.FinishReason != "" {
			finishReason = choice.FinishReason
		}
		if choice.Delta.Content == "" {
			continue
		}

		contentBuilder.WriteString(choice.Delta.Content)
		if handler != nil {
			if err := handler(llm.StreamChunk{
				Type:    "content",
				Content: choice.Delta.Content,
			}); err != nil {
				return nil, fmt.Errorf("handler error: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		perr := llm.NewProviderError(p.Name(), llm.ErrCodeUnavailable, "stream read error")
		perr.Cause = err
		return nil, perr
	}

	if handler != nil {
		if err := handler(llm.StreamChunk{Type: "done", Done: true}); err != nil {
			return nil, fmt.Errorf("handler error: %w", err)
		}
	}

	return &llm.CompletionResponse{
		Content:      contentBuilder.String(),
		Model:        responseModel,
		FinishReason: finishReason,
		Usage:        usage,
		Latency:      time.Since(start),
	}, nil
}

// parseAPIError parses an API error response
func (p *Provider) parseAPIError(statusCode int, body []byte) error {
	var errResp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}

	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	perr := llm.NewProviderError(p.Name(), codeForStatus(statusCode), message)
	perr.StatusCode = statusCode
	return perr
}

// codeForStatus maps HTTP status codes to provider error codes.
func codeForStatus(statusCode int) string {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return llm.ErrCodeRateLimit
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return llm.ErrCodeAuth
	case statusCode == http.StatusRequestTimeout:
		return llm.ErrCodeTimeout
	case statusCode >= 500:
		return llm.ErrCodeServerError
	default:
		return llm.ErrCodeInvalidRequest
	}
}

// Internal API types

type apiRequest struct {
	Model          string          `json:"model"`
	Messages       []apiMessage    `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    *float64        `json:"temperature,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string            `json:"type"`
	JSONSchema jsonSchemaWrapper `json:"json_schema"`
}

type jsonSchemaWrapper struct {
	Schema docjson.Object `json:"schema"`
}

type apiResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage apiUsage `json:"usage"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type streamEvent struct {
	ID      string `json:"id"`
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Delta struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
	Usage *apiUsage `json:"usage,omitempty"`
}

// GetSupportedModels returns a list of supported Sonar models
func GetSupportedModels() []string {
	return []string{
		ModelSonar,
		ModelSonarPro,
		ModelSonarReasoning,
		ModelSonarReasoningPro,
	}
}

// IsValidModel checks if the given model is a known Sonar model
func IsValidModel(model string) bool {
	for _, m := range GetSupportedModels() {
		if m == model {
			return true
		}
	}
	// Also allow custom/future models starting with "sonar-"
	return strings.HasPrefix(model, "sonar-")
}

// Compile-time interface compliance checks
var (
	_ llm.Provider          = (*Provider)(nil)
	_ llm.StreamingProvider = (*Provider)(nil)
)
