package match

import "sync"

// MockStore is a mock implementation of the MatchStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	InsertMatchFunc          func(m *Match) error
	GetMatchFunc             func(matchID string) (*Match, error)
	GetMatchesByCategoryFunc func(categoryID string) ([]*Match, error)
	ClearMatchFunc           func(matchID string)

	// Call records
	InsertMatchCalls          []*Match
	GetMatchesByCategoryCalls []string
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) InsertMatch(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchCalls = append(m.InsertMatchCalls, match)
	if m.InsertMatchFunc != nil {
		return m.InsertMatchFunc(match)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) GetMatchesByCategory(categoryID string) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesByCategoryCalls = append(m.GetMatchesByCategoryCalls, categoryID)
	if m.GetMatchesByCategoryFunc != nil {
		return m.GetMatchesByCategoryFunc(categoryID)
	}
	return nil, nil
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearMatchFunc != nil {
		m.ClearMatchFunc(matchID)
	}
}

// MockNotifier is a mock implementation of the Notifier interface.
type MockNotifier struct {
	mu sync.Mutex

	SendMatchResultFunc  func(m *Match, dryRun bool) (string, error)
	SendMatchResultCalls []*Match
}

// NewMockNotifier creates a new mock instance.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendMatchResult(match *Match, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, match)
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, dryRun)
	}
	return "", nil
}
