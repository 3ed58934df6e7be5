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
Package careplan provides the care-plan generation service: a sequential
multi-stage LLM pipeline that builds a comprehensive nursing care plan and
streams its progress to clients.

# Overview

A generation follows the ADPIE nursing process across five stages:
assessment, diagnosis refinement and goal setting, intervention planning,
evaluation criteria, and interdisciplinary summary. Each stage makes one
schema-constrained streaming call to the LLM provider and contributes a
fragment that is merged into the accumulated care-plan document.

# Pipeline

Each stage runs through the same steps:

	project sub-schema → streaming LLM call → split reasoning / JSON →
	format reasoning → emit events → merge fragment into document

The Orchestrator pushes typed Events to a channel as the pipeline runs;
the HTTP layer forwards them to the client as server-sent events. A stage
failure produces an error event and is skipped; the pipeline always ends
with the accumulated document.

# Stream protocol

Clients use a two-request protocol: POST /api/careplan/initiate-stream
registers the patient payload with the SessionRegistry and returns a
stream id, then GET /api/careplan/stream?streamId=... consumes the
session (exactly once) and streams events until the [DONE] sentinel.

# Document model

Care-plan documents are dynamic JSON trees represented by the docjson
package's Value types. The Document Merger combines per-stage fragments:
objects merge recursively, arrays replace, and the diagnosis stages merge
their nursingDiagnoses lists positionally so that goals, interventions and
evaluations land on the diagnoses created in stage one.
*/
package careplan
