package club

import "sync"

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertClubFunc          func(club Club) error
	GetClubFunc             func(clubID string) (*Club, error)
	UpsertCategoryFunc      func(category Category) error
	GetCategoryFunc         func(categoryID string) (*Category, error)
	UpsertPlayersFunc       func(players []PlayerInfo) error
	GetPlayerFunc           func(playerID string) (*PlayerInfo, error)
	GetPlayersFunc          func(playerIDs []string) ([]PlayerInfo, error)
	GetAllPlayersFunc       func(clubID string) ([]PlayerInfo, error)
	AddPlayerToCategoryFunc func(categoryID, playerID string) error
	IsCategoryMemberFunc    func(categoryID, playerID string) (bool, error)
	ClearFunc               func()

	// Call records
	GetClubCalls     []string
	GetCategoryCalls []string
	GetPlayerCalls   []string
	GetPlayersCalls  [][]string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertClub(club Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertClubFunc != nil {
		return m.UpsertClubFunc(club)
	}
	return nil
}

func (m *MockStore) GetClub(clubID string) (*Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetClubCalls = append(m.GetClubCalls, clubID)
	if m.GetClubFunc != nil {
		return m.GetClubFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) UpsertCategory(category Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertCategoryFunc != nil {
		return m.UpsertCategoryFunc(category)
	}
	return nil
}

func (m *MockStore) GetCategory(categoryID string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCategoryCalls = append(m.GetCategoryCalls, categoryID)
	if m.GetCategoryFunc != nil {
		return m.GetCategoryFunc(categoryID)
	}
	return nil, nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerCalls = append(m.GetPlayerCalls, playerID)
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) GetAllPlayers(clubID string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) AddPlayerToCategory(categoryID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddPlayerToCategoryFunc != nil {
		return m.AddPlayerToCategoryFunc(categoryID, playerID)
	}
	return nil
}

func (m *MockStore) IsCategoryMember(categoryID, playerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsCategoryMemberFunc != nil {
		return m.IsCategoryMemberFunc(categoryID, playerID)
	}
	return false, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
