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

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"careplan/platform/careplan/docjson"
	"careplan/platform/careplan/llm"
	"careplan/platform/shared/logger"
)

// Per-stage generation budgets. Stages produce large structured documents,
// so the budgets are deliberately generous.
const (
	stageMaxTokens   = 8000
	stageTemperature = 0.2
	stageTimeout     = 180 * time.Second
)

// GenerationInput is the patient context a generation runs against.
type GenerationInput struct {
	PatientFormData docjson.Object `json:"patient_form_data"`
	CareEnvironment string         `json:"care_environment"`
	FocusAreas      []string       `json:"focus_areas"`
}

// Orchestrator drives the sequential multi-stage care-plan pipeline.
// Each stage makes one schema-constrained streaming LLM call; its output
// is parsed, surfaced as events, and merged into the accumulated document
// before the next stage begins. Safe for concurrent Run calls.
type Orchestrator struct {
	provider  llm.StreamingProvider
	projector *SchemaProjector
	stages    []StageDefinition
	log       *logger.Logger
}

// NewOrchestrator creates an orchestrator backed by the given provider,
// running the standard five-stage pipeline.
func NewOrchestrator(provider llm.StreamingProvider) *Orchestrator {
	return &Orchestrator{
		provider:  provider,
		projector: NewSchemaProjector(CarePlanSchema),
		stages:    Stages,
		log:       logger.New("orchestrator"),
	}
}

// Run executes every stage in order, pushing events to out, and closes out
// when the pipeline ends. A stage that fails (transport error, no JSON)
// produces an error event and is skipped; the pipeline continues with the
// document as it stood. Context cancellation stops further work without a
// completion event. The final event on a run that finishes is always
// full_care_plan_complete carrying the accumulated document.
func (o *Orchestrator) Run(ctx context.Context, sessionID string, input GenerationInput, out chan<- Event) {
	defer close(out)
	// Run executes outside net/http's handler recovery. A panic anywhere in
	// the pipeline (a defective provider implementation, for instance) must
	// surface as an error event so the SSE loop still drains to its sentinel.
	defer func() {
		if r := recover(); r != nil {
			promGenerationsTotal.WithLabelValues("panicked").Inc()
			o.log.Error(sessionID, "", "Generation pipeline panicked", map[string]interface{}{
				"panic": fmt.Sprint(r),
			})
			o.emit(ctx, out, NewErrorEvent("", fmt.Sprintf("Unexpected error during generation: %v", r)))
		}
	}()

	doc := docjson.Object{}
	promGenerationsTotal.WithLabelValues("started").Inc()

	if !o.emit(ctx, out, NewGenerationStartEvent()) {
		return
	}

	for idx, stage := range o.stages {
		if ctx.Err() != nil {
			o.log.Info(sessionID, stage.Name, "Generation cancelled before stage", nil)
			return
		}
		if !o.runStage(ctx, sessionID, stage, idx, input, doc, out) {
			return
		}
	}

	promGenerationsTotal.WithLabelValues("completed").Inc()
	o.emit(ctx, out, NewCompleteEvent(doc))
	o.log.Info(sessionID, "", "All stages complete, final care plan generated", map[string]interface{}{
		"keys": doc.Keys(),
	})
}

// runStage executes one stage against the accumulated document, mutating
// doc on success. Returns false only when the context was cancelled.
func (o *Orchestrator) runStage(ctx context.Context, sessionID string, stage StageDefinition, idx int, input GenerationInput, doc docjson.Object, out chan<- Event) bool {
	start := time.Now()
	o.log.Info(sessionID, stage.Name, "Starting stage", map[string]interface{}{
		"accordion_title": stage.AccordionTitle,
		"stage_index":     idx,
	})
	if !o.emit(ctx, out, NewStageStartEvent(stage, idx)) {
		return false
	}

	req, err := o.buildStageRequest(stage, idx, input, doc)
	if err != nil {
		// Payload marshaling never fails for well-formed documents.
		o.failStage(ctx, sessionID, stage, out, fmt.Errorf("building stage request: %w", err))
		return ctx.Err() == nil
	}

	splitter := &thinkSplitter{}
	var full strings.Builder
	resp, err := o.provider.CompleteStream(ctx, req, func(chunk llm.StreamChunk) error {
		if chunk.Done || chunk.Content == "" {
			return nil
		}
		full.WriteString(chunk.Content)
		if reasoning := splitter.Feed(chunk.Content); reasoning != "" {
			if !o.emit(ctx, out, NewReasoningChunkEvent(stage.Name, reasoning)) {
				return ctx.Err()
			}
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			o.log.Info(sessionID, stage.Name, "Generation cancelled mid-stage", nil)
			return false
		}
		o.failStage(ctx, sessionID, stage, out, err)
		return ctx.Err() == nil
	}
	if resp != nil {
		promLLMTokens.WithLabelValues("prompt").Add(float64(resp.Usage.PromptTokens))
		promLLMTokens.WithLabelValues("completion").Add(float64(resp.Usage.CompletionTokens))
	}
	if tail := splitter.Flush(); tail != "" {
		// Unterminated think block at end of stream; what was held back is reasoning.
		if !o.emit(ctx, out, NewReasoningChunkEvent(stage.Name, tail)) {
			return false
		}
	}

	text := full.String()
	o.log.Debug(sessionID, stage.Name, "Raw stage response received", map[string]interface{}{
		"response_length": len(text),
	})
	markdown := FormatReasoning(ExtractReasoning(text))
	output, extracted := ExtractJSON(text)
	if !extracted {
		o.log.Warn(sessionID, stage.Name, "No JSON output extracted from stage response", map[string]interface{}{
			"response_length": len(text),
		})
	}

	if !o.emit(ctx, out, NewReasoningCompleteEvent(stage.Name, markdown)) {
		return false
	}
	if !o.emit(ctx, out, NewJSONChunkEvent(stage.Name, output)) {
		return false
	}

	if extracted && len(output) > 0 {
		MergeStageOutput(stage.Name, output, doc)
	}

	promStagesTotal.WithLabelValues(stage.Name, "ok").Inc()
	promStageDuration.WithLabelValues(stage.Name).Observe(time.Since(start).Seconds())
	o.log.InfoWithDuration(sessionID, stage.Name, "Stage complete", float64(time.Since(start).Milliseconds()), map[string]interface{}{
		"json_extracted":   extracted,
		"accumulated_keys": len(doc),
	})
	return true
}

// buildStageRequest assembles the system prompt, patient-context user
// message and projected sub-schema for one stage. From the second stage on,
// the accumulated document rides along as currentCarePlanContext.
func (o *Orchestrator) buildStageRequest(stage StageDefinition, idx int, input GenerationInput, doc docjson.Object) (llm.CompletionRequest, error) {
	focusAreas := make(docjson.Array, len(input.FocusAreas))
	for i, area := range input.FocusAreas {
		focusAreas[i] = docjson.String(area)
	}
	patientForm := input.PatientFormData
	if patientForm == nil {
		patientForm = docjson.Object{}
	}

	userContext := docjson.Object{
		"patientFormData": patientForm,
		"careEnvironment": docjson.String(input.CareEnvironment),
		"focusAreas":      focusAreas,
	}
	if idx > 0 {
		userContext["currentCarePlanContext"] = doc
	}
	payload, err := json.MarshalIndent(userContext, "", "  ")
	if err != nil {
		return llm.CompletionRequest{}, err
	}

	return llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: fmt.Sprintf(baseSystemPrompt, stage.Focus)},
			{Role: llm.RoleUser, Content: "Patient and Care Plan Context:\n" + string(payload)},
		},
		MaxTokens:      stageMaxTokens,
		Temperature:    stageTemperature,
		Stream:         true,
		ResponseSchema: o.projector.Project(stage.PropertyPaths, stage.RequiredPaths),
		Timeout:        stageTimeout,
	}, nil
}

func (o *Orchestrator) failStage(ctx context.Context, sessionID string, stage StageDefinition, out chan<- Event, err error) {
	promStagesTotal.WithLabelValues(stage.Name, "error").Inc()
	o.log.ErrorWithErr(sessionID, stage.Name, "Stage failed, continuing with next stage", err, nil)
	o.emit(ctx, out, NewErrorEvent(stage.Name, fmt.Sprintf("Error during %s: %v", stage.Name, err)))
}

// emit sends one event unless the context is done. Returns false when the
// consumer is gone.
func (o *Orchestrator) emit(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
