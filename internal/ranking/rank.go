package ranking

import (
	"sort"

	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/scoring"
)

// Fixed points credited per participant result.
const (
	PointsWin  = 30
	PointsDraw = 10
	PointsLoss = 0
)

// StandingsRow is one player's accumulated points within a category.
type StandingsRow struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	ClubID   string `json:"club_id"`
	Points   int    `json:"points"`
}

// PlayerStats is a per-player win/loss rollup across a category's matches.
type PlayerStats struct {
	PlayerID      string `json:"player_id"`
	Name          string `json:"name"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	MatchesLost   int    `json:"matches_lost"`
	MatchesDrawn  int    `json:"matches_drawn"`
	SetsWon       int    `json:"sets_won"`
	SetsLost      int    `json:"sets_lost"`
}

// Fold sums fixed per-result points over all participants of the given
// matches. Players with no matches never enter the map, so they produce no
// standings row.
func Fold(matches []*match.Match) map[string]int {
	points := make(map[string]int)
	for _, m := range matches {
		for _, p := range m.Participants {
			switch p.Result {
			case scoring.ResultWin:
				points[p.PlayerID] += PointsWin
			case scoring.ResultDraw:
				points[p.PlayerID] += PointsDraw
			case scoring.ResultLoss:
				points[p.PlayerID] += PointsLoss
			}
		}
	}
	return points
}

// SortRows orders standings by points descending, player id ascending as a
// tie break so the output is reproducible.
func SortRows(rows []StandingsRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}

// FoldStats builds the win/loss/set rollup for the same set of matches.
func FoldStats(matches []*match.Match) map[string]*PlayerStats {
	stats := make(map[string]*PlayerStats)
	get := func(playerID string) *PlayerStats {
		if s, ok := stats[playerID]; ok {
			return s
		}
		s := &PlayerStats{PlayerID: playerID}
		stats[playerID] = s
		return s
	}

	for _, m := range matches {
		setsWon := setWinsByTeam(m)
		for teamIdx, team := range m.Teams {
			for _, playerID := range team.Players {
				s := get(playerID)
				s.SetsWon += setsWon[teamIdx]
				s.SetsLost += setsWon[1-teamIdx]
			}
		}
		for _, p := range m.Participants {
			s := get(p.PlayerID)
			s.MatchesPlayed++
			switch p.Result {
			case scoring.ResultWin:
				s.MatchesWon++
			case scoring.ResultLoss:
				s.MatchesLost++
			case scoring.ResultDraw:
				s.MatchesDrawn++
			}
		}
	}
	return stats
}

// setWinsByTeam recounts set wins from the persisted scores. Stored matches
// passed validation, so every set resolves; one that no longer does is
// skipped rather than guessed at.
func setWinsByTeam(m *match.Match) [2]int {
	var wins [2]int
	for i, set := range m.Sets {
		outcome, err := scoring.ResolveSet(set, scoring.SetContext{
			SetIndex:    i,
			BestOf:      m.BestOf,
			TotalSets:   len(m.Sets),
			DecidingSet: m.DecidingSet,
		})
		if err != nil {
			continue
		}
		wins[outcome.WinnerTeamIndex]++
	}
	return wins
}
