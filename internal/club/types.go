package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for clubs, categories and players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Club is one tenant. Every category, player and match belongs to a club.
type Club struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is a competition group inside a club; rankings are computed per
// category over its member players.
type Category struct {
	ID     string `json:"id"`
	ClubID string `json:"club_id"`
	Name   string `json:"name"`
}

// PlayerInfo is a player profile in the store.
type PlayerInfo struct {
	ID     string  `json:"id"`
	ClubID string  `json:"club_id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Level  float64 `json:"level"`
}
