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

package careplan

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics
var (
	promGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careplan_generations_total",
			Help: "Total number of care plan generations started and completed",
		},
		[]string{"status"},
	)
	promStagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careplan_stages_total",
			Help: "Total number of pipeline stages executed, by stage and outcome",
		},
		[]string{"stage", "status"},
	)
	promStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careplan_stage_duration_seconds",
			Help:    "End-to-end stage duration including the streaming LLM call",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120, 180},
		},
		[]string{"stage"},
	)
	promLLMTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careplan_llm_tokens_total",
			Help: "Total LLM tokens consumed, by kind",
		},
		[]string{"kind"},
	)
	promPendingSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "careplan_pending_sessions",
			Help: "Initiated generation sessions not yet consumed by a stream",
		},
	)
	promStreamEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careplan_stream_events_total",
			Help: "Total SSE events written to clients, by event type",
		},
		[]string{"type"},
	)
)

func init() {
	// Register Prometheus metrics
	prometheus.MustRegister(promGenerationsTotal)
	prometheus.MustRegister(promStagesTotal)
	prometheus.MustRegister(promStageDuration)
	prometheus.MustRegister(promLLMTokens)
	prometheus.MustRegister(promPendingSessions)
	prometheus.MustRegister(promStreamEvents)
}
