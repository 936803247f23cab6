package match

// MatchStore defines the persistence operations for matches.
type MatchStore interface {
	InsertMatch(m *Match) error
	GetMatch(matchID string) (*Match, error)
	GetMatchesByCategory(categoryID string) ([]*Match, error)
	ClearMatch(matchID string)
}

// Notifier defines the notification operations required by the match
// service. This keeps the package decoupled from the concrete provider.
type Notifier interface {
	SendMatchResult(m *Match, dryRun bool) (string, error)
}
