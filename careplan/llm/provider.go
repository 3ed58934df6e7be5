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

package llm

import (
	"context"
)

// Provider is the unified interface for all LLM providers.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the unique identifier for this provider instance.
	// This is used for logging and metrics.
	Name() string

	// Complete generates a completion for the given request.
	// This is the primary method for non-streaming interactions.
	// The context should be used for cancellation and timeout.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies the provider is operational. Implementations
	// should check API connectivity and authentication and complete within
	// a reasonable timeout.
	HealthCheck(ctx context.Context) error

	// SupportsStreaming indicates if the provider supports streaming responses.
	// If true, the provider should also implement StreamingProvider.
	SupportsStreaming() bool
}

// StreamingProvider extends Provider with streaming support.
// Providers that return SupportsStreaming() == true should implement this.
type StreamingProvider interface {
	Provider

	// CompleteStream generates a streaming completion.
	// The handler is called for each chunk received, in stream order.
	// Returns the final aggregated response.
	CompleteStream(ctx context.Context, req CompletionRequest, handler StreamHandler) (*CompletionResponse, error)
}
