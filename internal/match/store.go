package match

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// NewStore creates a new MatchStore.
func NewStore(db *sql.DB) MatchStore {
	return &store{
		db: db,
	}
}

func (s *store) InsertMatch(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamsJSON, err := json.Marshal(m.Teams)
	if err != nil {
		return err
	}
	setsJSON, err := json.Marshal(m.Sets)
	if err != nil {
		return err
	}
	participantsJSON, err := json.Marshal(m.Participants)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, club_id, category_id, format, best_of, deciding_set, played_at, created_at, teams_json, sets_json, participants_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.ClubID, m.CategoryID, m.Format, m.BestOf, m.DecidingSet, m.PlayedAt, m.CreatedAt, teamsJSON, setsJSON, participantsJSON)
	if err != nil {
		log.Error("Failed to insert match", "error", err, "matchID", m.ID)
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, club_id, category_id, format, best_of, deciding_set, played_at, created_at, teams_json, sets_json, participants_json
		FROM matches WHERE id = ?
	`, matchID)

	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return m, nil
}

func (s *store) GetMatchesByCategory(categoryID string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, club_id, category_id, format, best_of, deciding_set, played_at, created_at, teams_json, sets_json, participants_json
		FROM matches WHERE category_id = ? ORDER BY played_at DESC
	`, categoryID)
	if err != nil {
		log.Error("Failed to query matches for category", "error", err, "categoryID", categoryID)
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID); err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var teamsJSON, setsJSON, participantsJSON string

	err := scanner.Scan(
		&m.ID, &m.ClubID, &m.CategoryID, &m.Format, &m.BestOf, &m.DecidingSet,
		&m.PlayedAt, &m.CreatedAt, &teamsJSON, &setsJSON, &participantsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(teamsJSON), &m.Teams); err != nil {
		log.Error("Failed to unmarshal teams_json", "error", err, "matchID", m.ID)
	}
	if err := json.Unmarshal([]byte(setsJSON), &m.Sets); err != nil {
		log.Error("Failed to unmarshal sets_json", "error", err, "matchID", m.ID)
	}
	if err := json.Unmarshal([]byte(participantsJSON), &m.Participants); err != nil {
		log.Error("Failed to unmarshal participants_json", "error", err, "matchID", m.ID)
	}
	return &m, nil
}
