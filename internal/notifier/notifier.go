package notifier

import (
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/ranking"
)

// Notifier defines a high-level interface for announcing business events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchResult(m *match.Match, dryRun bool) (string, error)
	// For slash commands
	SendStandings(rows []ranking.StandingsRow, dryRun bool) error
	SendPlayerStats(stats *ranking.PlayerStats, query string, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(rows []ranking.StandingsRow) (any, error)
	FormatPlayerStatsResponse(stats *ranking.PlayerStats, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
