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
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionTTL bounds how long an initiated session waits for its stream
// request. Clients open the stream immediately after initiating, so an
// entry this old belongs to a client that gave up.
const sessionTTL = 10 * time.Minute

// pendingSession holds a generation's input between the initiate call and
// the stream call that consumes it.
type pendingSession struct {
	input     GenerationInput
	createdAt time.Time
}

// SessionRegistry is the in-memory handoff between the two-request stream
// protocol: POST initiate-stream registers the payload and returns an id,
// GET stream consumes it exactly once. Safe for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]pendingSession
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]pendingSession),
	}
}

// Create registers a generation input and returns its session id. Sessions
// older than sessionTTL that were never streamed are evicted first.
func (r *SessionRegistry) Create(input GenerationInput) string {
	for _, stale := range r.expired(time.Now()) {
		r.Release(stale)
	}

	id := uuid.New().String()
	r.mu.Lock()
	r.sessions[id] = pendingSession{input: input, createdAt: time.Now()}
	r.mu.Unlock()
	promPendingSessions.Inc()
	return id
}

// Consume removes the session and returns its input. A session can be
// consumed at most once; a second call for the same id reports ok=false.
func (r *SessionRegistry) Consume(id string) (GenerationInput, bool) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		promPendingSessions.Dec()
	}
	return session.input, ok
}

// expired returns the ids of sessions initiated more than sessionTTL before
// now.
func (r *SessionRegistry) expired(now time.Time) []string {
	cutoff := now.Add(-sessionTTL)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, session := range r.sessions {
		if session.createdAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Release discards a session that will never be streamed.
func (r *SessionRegistry) Release(id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		promPendingSessions.Dec()
	}
}

// Len reports the number of pending sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
