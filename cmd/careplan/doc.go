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

/*
Command careplan runs the Care Plan Generator backend.

The backend exposes a small HTTP API over which clients initiate a care
plan generation and then follow it live over server-sent events. Each
generation runs the five-stage ADPIE pipeline against Perplexity's Sonar
Reasoning Pro model and streams reasoning text, per-stage JSON fragments
and the final merged document.

# Usage

	careplan

# Environment Variables

Required:
  - SONAR_API_KEY: Perplexity API key

Optional:
  - SONAR_MODEL: model override (default: sonar-reasoning-pro)
  - PORT: HTTP server port (default: 5001)

# Endpoints

	GET  /api/healthcheck               liveness probe
	POST /api/careplan/test             provider connectivity probe
	POST /api/careplan/initiate-stream  register patient payload, get stream id
	GET  /api/careplan/stream           SSE event stream (?streamId=...)
	GET  /prometheus                    Prometheus metrics

# Example

	export SONAR_API_KEY="pplx-..."
	./careplan
*/
package main
