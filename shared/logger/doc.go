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
Package logger provides structured JSON logging for care-plan service
components.

# Overview

The logger outputs single-line JSON to stdout, making logs easily
consumable by CloudWatch, ELK stack, or other log aggregation systems.

Each log entry includes:
  - Timestamp (RFC3339Nano format)
  - Log level (DEBUG, INFO, WARN, ERROR)
  - Component name (careplan, perplexity, etc.)
  - Instance ID and container name (for distributed tracing)
  - Session ID (correlates all events of one generation run)
  - Stage name (which generation stage produced the entry)
  - Custom fields

# Usage

Create a logger for your component:

	log := logger.New("careplan")

Log messages with session and stage context:

	log.Info("session-123", "stage_1_assessment_setup", "Stage started", map[string]interface{}{
	    "stage_index": 0,
	})

Log errors carrying the underlying error text:

	log.ErrorWithErr("session-123", "stage_3_interventions", "LLM request failed", err, nil)

Log with duration tracking:

	start := time.Now()
	// ... do work ...
	log.InfoWithDuration("session-123", "stage_2_diagnosis_goals", "Stage complete",
	    float64(time.Since(start).Milliseconds()), nil)

# Output Format

Log entries are output as single-line JSON:

	{"timestamp":"2025-01-15T10:30:00.123456789Z","level":"INFO",
	 "component":"careplan","instance_id":"i-abc123","container":"careplan-xyz",
	 "session_id":"session-123","stage":"stage_1_assessment_setup",
	 "message":"Stage started","fields":{"stage_index":0}}

# Environment Variables

The logger reads these environment variables:

  - INSTANCE_ID: Deployment instance identifier
  - HOSTNAME: Container hostname (auto-detected)

# Thread Safety

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger
