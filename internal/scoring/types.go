package scoring

import "time"

// MatchFormat determines how many players each team must field.
type MatchFormat string

const (
	FormatSingles MatchFormat = "SINGLES"
	FormatDoubles MatchFormat = "DOUBLES"
)

// TeamSize returns the required roster size for the format, or 0 for an
// unknown format.
func (f MatchFormat) TeamSize() int {
	switch f {
	case FormatSingles:
		return 1
	case FormatDoubles:
		return 2
	}
	return 0
}

// DecidingSetType selects the rule applied to the final set of a best-of-3
// match when all three sets are played. Every other set is scored with
// standard rules regardless of this setting.
type DecidingSetType string

const (
	DecidingSetStandard       DecidingSetType = "STANDARD"
	DecidingSetAdvantage      DecidingSetType = "ADVANTAGE"
	DecidingSetSuperTiebreak7 DecidingSetType = "SUPER_TIEBREAK_7"
	DecidingSetSuperTiebreak10 DecidingSetType = "SUPER_TIEBREAK_10"
)

// Result is a per-team (and, expanded, per-player) match result.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLoss Result = "LOSS"
	ResultDraw Result = "DRAW"
)

// GameScore is one team's numeric score inside a set or tiebreak, as
// submitted on the wire.
type GameScore struct {
	TeamIndex int `json:"teamIndex"`
	Score     int `json:"score"`
}

// SetScore is one submitted set. Tiebreak is present only when the set was
// decided by a tiebreak or super tiebreak.
type SetScore struct {
	Games    []GameScore `json:"games"`
	Tiebreak []GameScore `json:"tiebreak,omitempty"`
}

// ScoreTable is a canonical per-team score, indexed by team.
type ScoreTable [2]int

// Team is an ordered list of player ids.
type Team struct {
	Players []string `json:"players"`
}

// MatchRequest is the raw description of a completed match. It is transient;
// only the derived participants are persisted alongside the match.
type MatchRequest struct {
	ClubID      string          `json:"clubId"`
	CategoryID  string          `json:"categoryId"`
	Format      MatchFormat     `json:"format"`
	BestOf      int             `json:"bestOf"`
	DecidingSet DecidingSetType `json:"decidingSetType,omitempty"`
	Teams       []Team          `json:"teams"`
	Sets        []SetScore      `json:"sets"`
	PlayedAt    *time.Time      `json:"playedAt,omitempty"`
}

// SetOutcome is the resolved winner of a single legal set.
type SetOutcome struct {
	WinnerTeamIndex int
}

// Participant is one player's result record for a match.
type Participant struct {
	PlayerID string `json:"playerId"`
	Result   Result `json:"result"`
}

// MatchOutcome is the derived result of a whole match.
type MatchOutcome struct {
	SetsWon      ScoreTable
	TeamResults  [2]Result
	Participants []Participant
}
