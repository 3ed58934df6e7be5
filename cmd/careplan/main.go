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

// Package main is the entry point for the Care Plan Generator service.
//
// The service generates comprehensive nursing care plans through a
// sequential five-stage pipeline backed by Perplexity's Sonar API:
// - Comprehensive assessment and initial nursing diagnoses
// - Diagnosis refinement and SMART goal setting
// - Evidence-based intervention planning
// - Evaluation criteria planning
// - Interdisciplinary plan, summary and administrative support
//
// Progress streams to clients over SSE: live reasoning text, per-stage
// structured JSON, and the final merged care-plan document.
//
// Usage:
//
//	./careplan
//
// Environment Variables:
//
//	SONAR_API_KEY - Perplexity API key (required)
//	SONAR_MODEL - model override (default: sonar-reasoning-pro)
//	PORT - HTTP server port (default: 5001)
package main

import (
	"careplan/platform/careplan"
)

func main() {
	careplan.Run()
}
