package handlers

import (
	"net/http"
	"sync"
)

// Startup step names reported by /healthz
const (
	StepDatabase   = "Database connection"
	StepMigrations = "Running migrations"
	StepAudio      = "Scanning audio library"
	StepServices   = "Initializing services"
	StepTheory     = "Seeding theory topics"
	StepReady      = "Server ready"
)

// StartupStatus tracks the initialization progress
type StartupStatus struct {
	mu       sync.RWMutex
	Ready    bool
	Current  string
	Progress int
	Steps    []StartupStep
}

type StartupStep struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type startupStatusView struct {
	Ready    bool          `json:"ready"`
	Current  string        `json:"current"`
	Progress int           `json:"progress"`
	Steps    []StartupStep `json:"steps"`
}

// NewStartupStatus creates a tracker for the given steps
func NewStartupStatus(steps ...string) *StartupStatus {
	s := &StartupStatus{Current: "Initializing..."}
	for _, name := range steps {
		s.Steps = append(s.Steps, StartupStep{Name: name})
	}
	return s
}

var startupStatus = NewStartupStatus(StepDatabase, StepMigrations, StepAudio, StepServices, StepTheory, StepReady)

// SetCurrentStep updates the current initialization step
func SetCurrentStep(step string) { startupStatus.SetCurrentStep(step) }

// CompleteStep marks a step as completed and updates progress
func CompleteStep(stepName string) { startupStatus.CompleteStep(stepName) }

// MarkReady marks the server as fully initialized
func MarkReady() { startupStatus.MarkReady() }

// IsReady returns whether the server is fully initialized
func IsReady() bool { return startupStatus.IsReady() }

// ShowStartupStatus reports the startup status of the server
func ShowStartupStatus(w http.ResponseWriter, r *http.Request) {
	startupStatus.ServeHTTP(w, r)
}

func (s *StartupStatus) SetCurrentStep(step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Current = step
}

func (s *StartupStatus) CompleteStep(stepName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.Steps {
		if s.Steps[i].Name == stepName {
			s.Steps[i].Completed = true
			break
		}
	}

	completed := 0
	for _, step := range s.Steps {
		if step.Completed {
			completed++
		}
	}
	if len(s.Steps) > 0 {
		s.Progress = (completed * 100) / len(s.Steps)
	}
}

func (s *StartupStatus) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Ready = true
	s.Current = StepReady
	s.Progress = 100
	for i := range s.Steps {
		s.Steps[i].Completed = true
	}
}

func (s *StartupStatus) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Ready
}

// ServeHTTP answers 200 once the server is ready and 503 until then
func (s *StartupStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	view := startupStatusView{
		Ready:    s.Ready,
		Current:  s.Current,
		Progress: s.Progress,
		Steps:    append([]StartupStep(nil), s.Steps...),
	}
	s.mu.RUnlock()

	status := http.StatusOK
	if !view.Ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, view)
}
