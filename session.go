package uxtree

import "sync"

// Session is the explicitly passed handle to the current workflow state
// (sample data for live-preview rendering). It replaces a module-global
// get/set pair: callers construct one, hand it to the controller, and read it
// back through Data. The handle is valid only while exactly one editor
// session is active; it is not shared across sessions.
type Session struct {
	mu   sync.RWMutex
	data any
}

// NewSession wraps the initial sample data.
func NewSession(data any) *Session {
	return &Session{data: data}
}

// Data returns the current sample data. The core passes it through untouched;
// interpretation belongs to the preview renderer.
func (s *Session) Data() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// SetData replaces the sample data, e.g. after a workflow step re-executes.
func (s *Session) SetData(data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}
