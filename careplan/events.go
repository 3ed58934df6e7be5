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

import "careplan/platform/careplan/docjson"

// Event type tags as they appear on the wire.
const (
	EventTypeStart             = "start"
	EventTypeGenerationStart   = "overall_generation_start"
	EventTypeStageStart        = "stage_start"
	EventTypeReasoningChunk    = "reasoning_text_chunk"
	EventTypeReasoningComplete = "stage_reasoning_complete"
	EventTypeJSONChunk         = "stage_json_chunk"
	EventTypeError             = "error"
	EventTypeComplete          = "full_care_plan_complete"
)

// Event is one entry in a generation's ordered event stream. Concrete
// variants marshal to a JSON object discriminated by the "type" field.
type Event interface {
	EventType() string
}

// StartEvent opens the SSE response before orchestration begins.
type StartEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func NewStartEvent() StartEvent {
	return StartEvent{Type: EventTypeStart, Content: "Starting care plan generation"}
}

func (e StartEvent) EventType() string { return e.Type }

// GenerationStartEvent marks the beginning of the stage pipeline.
type GenerationStartEvent struct {
	Type string `json:"type"`
}

func NewGenerationStartEvent() GenerationStartEvent {
	return GenerationStartEvent{Type: EventTypeGenerationStart}
}

func (e GenerationStartEvent) EventType() string { return e.Type }

// StageStartEvent announces a stage before its LLM call is made.
type StageStartEvent struct {
	Type           string `json:"type"`
	StageName      string `json:"stage_name"`
	AccordionTitle string `json:"accordion_title"`
	StageIndex     int    `json:"stage_index"`
}

func NewStageStartEvent(stage StageDefinition, index int) StageStartEvent {
	return StageStartEvent{
		Type:           EventTypeStageStart,
		StageName:      stage.Name,
		AccordionTitle: stage.AccordionTitle,
		StageIndex:     index,
	}
}

func (e StageStartEvent) EventType() string { return e.Type }

// ReasoningChunkEvent carries a live fragment of the model's reasoning.
type ReasoningChunkEvent struct {
	Type      string `json:"type"`
	StageName string `json:"stage_name"`
	Content   string `json:"content"`
}

func NewReasoningChunkEvent(stageName, content string) ReasoningChunkEvent {
	return ReasoningChunkEvent{Type: EventTypeReasoningChunk, StageName: stageName, Content: content}
}

func (e ReasoningChunkEvent) EventType() string { return e.Type }

// ReasoningCompleteEvent delivers the stage's full reasoning as markdown.
type ReasoningCompleteEvent struct {
	Type              string `json:"type"`
	StageName         string `json:"stage_name"`
	ReasoningMarkdown string `json:"reasoning_markdown"`
}

func NewReasoningCompleteEvent(stageName, markdown string) ReasoningCompleteEvent {
	return ReasoningCompleteEvent{Type: EventTypeReasoningComplete, StageName: stageName, ReasoningMarkdown: markdown}
}

func (e ReasoningCompleteEvent) EventType() string { return e.Type }

// JSONChunkEvent delivers the stage's extracted JSON output. JSONData is
// the empty object when extraction failed.
type JSONChunkEvent struct {
	Type      string         `json:"type"`
	StageName string         `json:"stage_name"`
	JSONData  docjson.Object `json:"json_data"`
}

func NewJSONChunkEvent(stageName string, data docjson.Object) JSONChunkEvent {
	if data == nil {
		data = docjson.Object{}
	}
	return JSONChunkEvent{Type: EventTypeJSONChunk, StageName: stageName, JSONData: data}
}

func (e JSONChunkEvent) EventType() string { return e.Type }

// ErrorEvent reports a non-fatal stage failure or a session-level error.
type ErrorEvent struct {
	Type      string `json:"type"`
	StageName string `json:"stage_name,omitempty"`
	Content   string `json:"content"`
}

func NewErrorEvent(stageName, content string) ErrorEvent {
	return ErrorEvent{Type: EventTypeError, StageName: stageName, Content: content}
}

func (e ErrorEvent) EventType() string { return e.Type }

// CompleteEvent closes the pipeline with the accumulated care plan.
type CompleteEvent struct {
	Type     string         `json:"type"`
	CarePlan docjson.Object `json:"care_plan"`
}

func NewCompleteEvent(plan docjson.Object) CompleteEvent {
	if plan == nil {
		plan = docjson.Object{}
	}
	return CompleteEvent{Type: EventTypeComplete, CarePlan: plan}
}

func (e CompleteEvent) EventType() string { return e.Type }
