package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	matchesCreated       int
	validationFailures   int
	matchCreateDurations []float64
	standingsRequests    int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchCreateDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated++
}

func (m *Mock) IncValidationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationFailures++
}

func (m *Mock) ObserveMatchCreateDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchCreateDurations = append(m.matchCreateDurations, duration)
}

func (m *Mock) IncStandingsRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsRequests++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesCreated returns the number of times IncMatchesCreated was called.
func (m *Mock) MatchesCreatedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated
}

// ValidationFailuresCount returns the number of times IncValidationFailures was called.
func (m *Mock) ValidationFailuresCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validationFailures
}

// SlackNotifSentCount returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailedCount returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
