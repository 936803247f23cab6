package club

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertClub(club Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO clubs (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name;
	`, club.ID, club.Name)
	if err != nil {
		log.Error("Failed to upsert club", "error", err, "clubID", club.ID)
	}
	return err
}

func (s *store) GetClub(clubID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Club
	err := s.db.QueryRow("SELECT id, name FROM clubs WHERE id = ?", clubID).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &c, nil
}

func (s *store) UpsertCategory(category Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO categories (id, club_id, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET club_id = excluded.club_id, name = excluded.name;
	`, category.ID, category.ClubID, category.Name)
	if err != nil {
		log.Error("Failed to upsert category", "error", err, "categoryID", category.ID)
	}
	return err
}

func (s *store) GetCategory(categoryID string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Category
	err := s.db.QueryRow("SELECT id, club_id, name FROM categories WHERE id = ?", categoryID).Scan(&c.ID, &c.ClubID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &c, nil
}

func (s *store) UpsertPlayers(players []PlayerInfo) error {
	if len(players) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, club_id, name, email, phone, level)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			club_id = excluded.club_id,
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			level = excluded.level;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.ClubID, p.Name, p.Email, p.Phone, p.Level); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := scanPlayer(s.db.QueryRow(
		"SELECT id, club_id, name, email, phone, level FROM players WHERE id = ?", playerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	if len(playerIDs) == 0 {
		return []PlayerInfo{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.Repeat("?,", len(playerIDs)-1) + "?"
	query := fmt.Sprintf(
		"SELECT id, club_id, name, email, phone, level FROM players WHERE id IN (%s)", placeholders)

	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *store) GetAllPlayers(clubID string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, club_id, name, email, phone, level FROM players WHERE club_id = ? ORDER BY name", clubID)
	if err != nil {
		log.Error("Failed to query players for club", "error", err, "clubID", clubID)
		return nil, err
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *store) AddPlayerToCategory(categoryID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO category_players (category_id, player_id) VALUES (?, ?)
		ON CONFLICT(category_id, player_id) DO NOTHING;
	`, categoryID, playerID)
	if err != nil {
		log.Error("Failed to add player to category", "error", err, "categoryID", categoryID, "playerID", playerID)
	}
	return err
}

func (s *store) IsCategoryMember(categoryID, playerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM category_players WHERE category_id = ? AND player_id = ?)",
		categoryID, playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check category membership", "error", err, "categoryID", categoryID, "playerID", playerID)
		return false, err
	}
	return exists, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"category_players", "matches", "players", "categories", "clubs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func scanPlayer(row *sql.Row) (*PlayerInfo, error) {
	var p PlayerInfo
	var name, email, phone sql.NullString
	var level sql.NullFloat64
	if err := row.Scan(&p.ID, &p.ClubID, &name, &email, &phone, &level); err != nil {
		return nil, err
	}
	p.Name = name.String
	p.Email = email.String
	p.Phone = phone.String
	p.Level = level.Float64
	return &p, nil
}

func collectPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	players := []PlayerInfo{}
	for rows.Next() {
		var p PlayerInfo
		var name, email, phone sql.NullString
		var level sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.ClubID, &name, &email, &phone, &level); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		p.Email = email.String
		p.Phone = phone.String
		p.Level = level.Float64
		players = append(players, p)
	}
	return players, nil
}
