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
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"careplan/platform/careplan/docjson"
	"careplan/platform/careplan/llm"
	"careplan/platform/shared/logger"
)

const sseDoneSentinel = "data: [DONE]\n\n"

// Server wires the HTTP surface to the orchestration engine.
type Server struct {
	provider     llm.StreamingProvider
	registry     *SessionRegistry
	orchestrator *Orchestrator
	log          *logger.Logger
}

// NewServer creates a fully wired server around the given provider.
func NewServer(provider llm.StreamingProvider) *Server {
	return &Server{
		provider:     provider,
		registry:     NewSessionRegistry(),
		orchestrator: NewOrchestrator(provider),
		log:          logger.New("careplan-api"),
	}
}

// Routes registers the API endpoints on r.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/api/healthcheck", s.healthHandler).Methods("GET")
	r.HandleFunc("/api/careplan/test", s.testHandler).Methods("POST")
	r.HandleFunc("/api/careplan/initiate-stream", s.initiateStreamHandler).Methods("POST")
	r.HandleFunc("/api/careplan/stream", s.streamHandler).Methods("GET")
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"message": "Care Plan API is running",
	})
}

// testHandler probes provider connectivity with a minimal completion.
func (s *Server) testHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := s.provider.HealthCheck(ctx); err != nil {
		s.log.ErrorWithErr("", "", "Provider connectivity test failed", err, nil)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "error",
			"message":   fmt.Sprintf("Backend error: %v", err),
			"timestamp": float64(time.Now().UnixMilli()) / 1000,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"message":   "Connection to Perplexity API successful",
		"timestamp": float64(time.Now().UnixMilli()) / 1000,
	})
}

// initiateStreamHandler registers the patient payload and hands back the
// session id the client uses to open the SSE stream.
func (s *Server) initiateStreamHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientFormData map[string]interface{} `json:"patient_form_data"`
		CareEnvironment string                 `json:"care_environment"`
		FocusAreas      []string               `json:"focus_areas"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": fmt.Sprintf("Invalid request body: %v", err),
		})
		return
	}

	patientForm := docjson.Object{}
	if req.PatientFormData != nil {
		if obj, ok := docjson.FromAny(req.PatientFormData).(docjson.Object); ok {
			patientForm = obj
		}
	}

	id := s.registry.Create(GenerationInput{
		PatientFormData: patientForm,
		CareEnvironment: req.CareEnvironment,
		FocusAreas:      req.FocusAreas,
	})
	s.log.Info(id, "", "Stream session initiated", map[string]interface{}{
		"care_environment": req.CareEnvironment,
		"focus_area_count": len(req.FocusAreas),
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{"stream_id": id})
}

// streamHandler runs the generation pipeline and forwards its events to
// the client as server-sent events. The stream always ends with the
// [DONE] sentinel, including the unknown-session and error paths.
func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("streamId")
	if streamID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "No stream ID provided",
		})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Streaming unsupported",
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	writeEvent := func(ev Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			s.log.ErrorWithErr(streamID, "", "Failed to marshal stream event", err, map[string]interface{}{
				"event_type": ev.EventType(),
			})
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
		promStreamEvents.WithLabelValues(ev.EventType()).Inc()
	}
	writeDone := func() {
		fmt.Fprint(w, sseDoneSentinel)
		flusher.Flush()
	}

	input, found := s.registry.Consume(streamID)
	if !found {
		s.log.Warn(streamID, "", "Stream requested for unknown session", nil)
		writeEvent(NewErrorEvent("", "Invalid stream ID"))
		writeDone()
		return
	}

	writeEvent(NewStartEvent())

	events := make(chan Event, 16)
	go s.orchestrator.Run(r.Context(), streamID, input, events)

	for ev := range events {
		writeEvent(ev)
	}
	writeDone()
}

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
