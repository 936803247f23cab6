package ranking

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/courtside/matchpoint/internal/club"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/metrics"
	"github.com/courtside/matchpoint/internal/pubsub"
)

// Service computes standings and stats for a category by folding its stored
// matches. Nothing is cached; every call reflects the matches present at
// read time.
type Service struct {
	clubs   club.ClubStore
	matches match.MatchStore
	metrics metrics.Metrics
	pubsub  pubsub.PubSubClient
}

// StandingsEvent is the payload published whenever a standings table is
// computed, for downstream subscribers.
type StandingsEvent struct {
	CategoryID string         `json:"category_id"`
	Rows       []StandingsRow `json:"rows"`
}

// NewService creates a new ranking Service.
func NewService(clubs club.ClubStore, matches match.MatchStore, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Service {
	return &Service{
		clubs:   clubs,
		matches: matches,
		metrics: metrics,
		pubsub:  pubsub,
	}
}

// Standings returns the category's points table, highest first. Players
// without a single match are absent.
func (s *Service) Standings(categoryID string) ([]StandingsRow, error) {
	category, err := s.clubs.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &match.NotFoundError{Kind: "category", ID: categoryID}
	}

	matches, err := s.matches.GetMatchesByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	points := Fold(matches)

	playerIDs := make([]string, 0, len(points))
	for playerID := range points {
		playerIDs = append(playerIDs, playerID)
	}
	players, err := s.clubs.GetPlayers(playerIDs)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]club.PlayerInfo, len(players))
	for _, p := range players {
		profiles[p.ID] = p
	}

	rows := make([]StandingsRow, 0, len(points))
	for playerID, pts := range points {
		row := StandingsRow{PlayerID: playerID, Points: pts}
		if profile, ok := profiles[playerID]; ok {
			row.Name = profile.Name
			row.Email = profile.Email
			row.Phone = profile.Phone
			row.ClubID = profile.ClubID
		} else {
			log.Warn("Standings references a player with no profile", "playerID", playerID, "categoryID", categoryID)
		}
		rows = append(rows, row)
	}
	SortRows(rows)

	s.metrics.IncStandingsRequests()
	log.Debug("Computed standings", "categoryID", categoryID, "matches", len(matches), "rows", len(rows))

	// Best effort; the computed table is already going back to the caller.
	event := StandingsEvent{CategoryID: categoryID, Rows: rows}
	if err := s.pubsub.SendMessage(pubsub.EventStandingsComputed, event); err != nil {
		log.Error("Failed to publish standings-computed event", "error", err, "categoryID", categoryID)
	}
	return rows, nil
}

// Stats returns the category's per-player win/loss rollup, most matches won
// first.
func (s *Service) Stats(categoryID string) ([]PlayerStats, error) {
	category, err := s.clubs.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &match.NotFoundError{Kind: "category", ID: categoryID}
	}

	matches, err := s.matches.GetMatchesByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	byPlayer := FoldStats(matches)

	playerIDs := make([]string, 0, len(byPlayer))
	for playerID := range byPlayer {
		playerIDs = append(playerIDs, playerID)
	}
	players, err := s.clubs.GetPlayers(playerIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if stat, ok := byPlayer[p.ID]; ok {
			stat.Name = p.Name
		}
	}

	stats := make([]PlayerStats, 0, len(byPlayer))
	for _, stat := range byPlayer {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].MatchesWon != stats[j].MatchesWon {
			return stats[i].MatchesWon > stats[j].MatchesWon
		}
		if stats[i].SetsWon != stats[j].SetsWon {
			return stats[i].SetsWon > stats[j].SetsWon
		}
		return stats[i].PlayerID < stats[j].PlayerID
	})
	return stats, nil
}
