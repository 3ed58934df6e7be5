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

package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

// captureEntry runs fn with log output captured and returns the parsed entry.
func captureEntry(t *testing.T, fn func()) LogEntry {
	t.Helper()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	fn()

	output := buf.String()
	jsonStart := strings.Index(output, "{")
	if jsonStart == -1 {
		t.Fatalf("No JSON found in log output: %q", output)
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(output[jsonStart:])), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v\nOutput: %s", err, output)
	}
	return entry
}

// TestNew tests logger initialization
func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		component      string
		instanceID     string
		expectedComp   string
		expectedInstID string
	}{
		{
			name:           "with instance ID set",
			component:      "careplan",
			instanceID:     "instance-123",
			expectedComp:   "careplan",
			expectedInstID: "instance-123",
		},
		{
			name:           "without instance ID",
			component:      "perplexity",
			instanceID:     "",
			expectedComp:   "perplexity",
			expectedInstID: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.instanceID != "" {
				if err := os.Setenv("INSTANCE_ID", tt.instanceID); err != nil {
					t.Fatalf("Failed to set INSTANCE_ID: %v", err)
				}
				defer func() {
					if err := os.Unsetenv("INSTANCE_ID"); err != nil {
						t.Errorf("Failed to unset INSTANCE_ID: %v", err)
					}
				}()
			} else {
				if err := os.Unsetenv("INSTANCE_ID"); err != nil {
					t.Fatalf("Failed to unset INSTANCE_ID: %v", err)
				}
			}

			logger := New(tt.component)

			if logger.Component != tt.expectedComp {
				t.Errorf("Expected component %s, got %s", tt.expectedComp, logger.Component)
			}

			if logger.InstanceID != tt.expectedInstID {
				t.Errorf("Expected instance ID %s, got %s", tt.expectedInstID, logger.InstanceID)
			}

			if logger.Container == "" {
				t.Error("Expected container to be set from hostname")
			}
		})
	}
}

// TestLogLevels tests all log level methods
func TestLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		logFunc   func(*Logger, string, string, string, map[string]interface{})
		level     LogLevel
		message   string
		sessionID string
		stage     string
		fields    map[string]interface{}
	}{
		{
			name:      "Info log",
			logFunc:   (*Logger).Info,
			level:     INFO,
			message:   "Stage started",
			sessionID: "session-123",
			stage:     "stage_1_assessment_setup",
			fields:    map[string]interface{}{"stage_index": 0},
		},
		{
			name:      "Error log",
			logFunc:   (*Logger).Error,
			level:     ERROR,
			message:   "LLM request failed",
			sessionID: "session-789",
			stage:     "stage_3_interventions",
			fields:    map[string]interface{}{"status_code": 500},
		},
		{
			name:      "Warn log",
			logFunc:   (*Logger).Warn,
			level:     WARN,
			message:   "No JSON extracted for stage",
			sessionID: "session-abc",
			stage:     "stage_2_diagnosis_goals",
			fields:    nil,
		},
		{
			name:      "Debug log",
			logFunc:   (*Logger).Debug,
			level:     DEBUG,
			message:   "Sub-schema projected",
			sessionID: "session-xyz",
			stage:     "stage_5_summary_admin_coordination",
			fields:    map[string]interface{}{"property_count": 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New("test-component")
			entry := captureEntry(t, func() {
				tt.logFunc(logger, tt.sessionID, tt.stage, tt.message, tt.fields)
			})

			if entry.Level != tt.level {
				t.Errorf("Expected level %s, got %s", tt.level, entry.Level)
			}

			if entry.Message != tt.message {
				t.Errorf("Expected message '%s', got '%s'", tt.message, entry.Message)
			}

			if entry.SessionID != tt.sessionID {
				t.Errorf("Expected session ID '%s', got '%s'", tt.sessionID, entry.SessionID)
			}

			if entry.Stage != tt.stage {
				t.Errorf("Expected stage '%s', got '%s'", tt.stage, entry.Stage)
			}

			if entry.Component != "test-component" {
				t.Errorf("Expected component 'test-component', got '%s'", entry.Component)
			}

			if _, err := time.Parse(time.RFC3339Nano, entry.Timestamp); err != nil {
				t.Errorf("Invalid timestamp format: %s", entry.Timestamp)
			}

			if tt.fields != nil {
				for key, expectedValue := range tt.fields {
					actualValue, ok := entry.Fields[key]
					if !ok {
						t.Errorf("Expected field '%s' not found", key)
						continue
					}
					// JSON unmarshals numbers as float64
					if expected, isInt := expectedValue.(int); isInt {
						if actual, isFloat := actualValue.(float64); !isFloat || int(actual) != expected {
							t.Errorf("Field '%s': expected %v, got %v", key, expectedValue, actualValue)
						}
					} else if actualValue != expectedValue {
						t.Errorf("Field '%s': expected %v, got %v", key, expectedValue, actualValue)
					}
				}
			}
		})
	}
}

// TestInfoWithDuration tests the InfoWithDuration helper method
func TestInfoWithDuration(t *testing.T) {
	logger := New("test-component")
	entry := captureEntry(t, func() {
		logger.InfoWithDuration("session-123", "stage_1_assessment_setup", "Stage complete", 123.45, map[string]interface{}{
			"accumulated_keys": 4,
		})
	})

	durationMS, ok := entry.Fields["duration_ms"]
	if !ok {
		t.Error("Expected duration_ms field not found")
	}
	if durationMS != 123.45 {
		t.Errorf("Expected duration_ms 123.45, got %v", durationMS)
	}

	if keys, ok := entry.Fields["accumulated_keys"].(float64); !ok || int(keys) != 4 {
		t.Errorf("Expected accumulated_keys 4, got %v", entry.Fields["accumulated_keys"])
	}

	if entry.Level != INFO {
		t.Errorf("Expected INFO level, got %s", entry.Level)
	}
}

// TestErrorWithErr tests the ErrorWithErr helper method
func TestErrorWithErr(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:           "with error",
			err:            &testError{msg: "connection refused"},
			expectError:    true,
			expectedErrMsg: "connection refused",
		},
		{
			name:        "without error",
			err:         nil,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New("test-component")
			entry := captureEntry(t, func() {
				logger.ErrorWithErr("session-123", "stage_4_evaluation_criteria", "Stage failed", tt.err, nil)
			})

			if entry.Level != ERROR {
				t.Errorf("Expected ERROR level, got %s", entry.Level)
			}

			errMsg, ok := entry.Fields["error"]
			if tt.expectError {
				if !ok {
					t.Error("Expected error field not found")
				} else if errMsg != tt.expectedErrMsg {
					t.Errorf("Expected error message '%s', got '%v'", tt.expectedErrMsg, errMsg)
				}
			} else if ok {
				t.Errorf("Did not expect error field, got '%v'", errMsg)
			}
		})
	}
}

// TestJSONMarshalError tests behavior when JSON marshaling fails
func TestJSONMarshalError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := New("test-component")

	// Channels cannot be marshaled to JSON
	ch := make(chan int)
	logger.Info("session-123", "stage_1_assessment_setup", "Test message", map[string]interface{}{
		"channel": ch,
	})

	output := buf.String()
	if !strings.Contains(output, "Failed to marshal log entry") {
		t.Error("Expected error message about JSON marshaling failure")
	}
}

// Helper type for testing errors
type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

// BenchmarkLog benchmarks the logging performance
func BenchmarkLog(b *testing.B) {
	logger := New("benchmark-component")
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	fields := map[string]interface{}{
		"stage_index":  2,
		"duration":     45.67,
		"success":      true,
		"output_bytes": 15000,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("session-123", "stage_3_interventions", "Stage complete", fields)
	}
}
