package scoring

import "fmt"

// SetContext is everything the resolver needs to know about the match when
// scoring one set.
type SetContext struct {
	SetIndex    int // zero-based position of the set in the submission
	BestOf      int
	TotalSets   int // number of sets submitted for the whole match
	DecidingSet DecidingSetType
}

// isDeciding reports whether this set is the deciding set. Only the third
// set of a fully played best-of-3 qualifies for non-standard rules.
func (c SetContext) isDeciding() bool {
	return c.BestOf == 3 && c.TotalSets == 3 && c.SetIndex == 2
}

// setRule is the closed set of scoring policies a single set can be played
// under. Each implementation owns the legality rules of its policy.
type setRule interface {
	resolve(games ScoreTable, tiebreak *ScoreTable, n int) (SetOutcome, error)
}

type standardRule struct{}

type advantageRule struct{}

type superTiebreakRule struct {
	target int
}

// ruleFor picks the scoring policy for a set. Non-deciding sets always use
// standard rules no matter how the match is configured.
func ruleFor(ctx SetContext) setRule {
	if !ctx.isDeciding() {
		return standardRule{}
	}
	switch ctx.DecidingSet {
	case DecidingSetAdvantage:
		return advantageRule{}
	case DecidingSetSuperTiebreak7:
		return superTiebreakRule{target: 7}
	case DecidingSetSuperTiebreak10:
		return superTiebreakRule{target: 10}
	default:
		return standardRule{}
	}
}

// ResolveSet decides whether one submitted set is a legal, completed set
// under the match format and returns its winner. Every rejection names the
// offending set so the caller can localize it.
func ResolveSet(set SetScore, ctx SetContext) (SetOutcome, error) {
	n := ctx.SetIndex + 1

	games, err := scoreTable(set.Games, n, "games")
	if err != nil {
		return SetOutcome{}, err
	}

	var tiebreak *ScoreTable
	if set.Tiebreak != nil {
		tb, err := scoreTable(set.Tiebreak, n, "tiebreak")
		if err != nil {
			return SetOutcome{}, err
		}
		tiebreak = &tb
	}

	return ruleFor(ctx).resolve(games, tiebreak, n)
}

// scoreTable collapses the wire-level score list into a per-team table,
// requiring exactly one non-negative score per team index.
func scoreTable(entries []GameScore, n int, kind string) (ScoreTable, error) {
	var table ScoreTable
	present := [2]bool{}
	for _, entry := range entries {
		if entry.TeamIndex < 0 || entry.TeamIndex > 1 {
			return table, fmt.Errorf("set %d: %s score has invalid team index %d", n, kind, entry.TeamIndex)
		}
		if present[entry.TeamIndex] {
			return table, fmt.Errorf("set %d: %s score given twice for team %d", n, kind, entry.TeamIndex+1)
		}
		if entry.Score < 0 {
			return table, fmt.Errorf("set %d: %s score for team %d is negative", n, kind, entry.TeamIndex+1)
		}
		present[entry.TeamIndex] = true
		table[entry.TeamIndex] = entry.Score
	}
	if !present[0] || !present[1] {
		return table, fmt.Errorf("set %d: %s score missing for one team", n, kind)
	}
	return table, nil
}

// tiebreakWinner applies the reach-target-with-a-two-point-lead rule shared
// by set tiebreaks and super tiebreaks.
func tiebreakWinner(tb ScoreTable, target int, n int) (int, error) {
	winner := 0
	if tb[1] > tb[0] {
		winner = 1
	}
	hi, lo := tb[winner], tb[1-winner]
	if hi < target || hi-lo < 2 {
		return 0, fmt.Errorf("set %d: tiebreak %d-%d is not a valid finish to %d", n, tb[0], tb[1], target)
	}
	return winner, nil
}

func (standardRule) resolve(games ScoreTable, tiebreak *ScoreTable, n int) (SetOutcome, error) {
	if games[0] > 7 || games[1] > 7 {
		return SetOutcome{}, fmt.Errorf("set %d: game score %d-%d exceeds the maximum of 7", n, games[0], games[1])
	}

	if games[0] == games[1] {
		if games[0] != 6 {
			return SetOutcome{}, fmt.Errorf("set %d: tied game score %d-%d is not a finished set", n, games[0], games[1])
		}
		if tiebreak == nil {
			return SetOutcome{}, fmt.Errorf("set %d: 6-6 requires a tiebreak", n)
		}
		winner, err := tiebreakWinner(*tiebreak, 7, n)
		if err != nil {
			return SetOutcome{}, err
		}
		return SetOutcome{WinnerTeamIndex: winner}, nil
	}

	leader := 0
	if games[1] > games[0] {
		leader = 1
	}
	hi, lo := games[leader], games[1-leader]

	if tiebreak != nil {
		if hi != 7 || lo != 6 {
			return SetOutcome{}, fmt.Errorf("set %d: tiebreak submitted but game score is %d-%d, not 7-6", n, games[0], games[1])
		}
		winner, err := tiebreakWinner(*tiebreak, 7, n)
		if err != nil {
			return SetOutcome{}, err
		}
		if winner != leader {
			return SetOutcome{}, fmt.Errorf("set %d: tiebreak winner does not match the 7-6 game score", n)
		}
		return SetOutcome{WinnerTeamIndex: winner}, nil
	}

	if (hi == 6 && lo <= 4) || (hi == 7 && lo == 5) {
		return SetOutcome{WinnerTeamIndex: leader}, nil
	}
	return SetOutcome{}, fmt.Errorf("set %d: %d-%d is not a finished set", n, games[0], games[1])
}

func (advantageRule) resolve(games ScoreTable, tiebreak *ScoreTable, n int) (SetOutcome, error) {
	if tiebreak != nil {
		return SetOutcome{}, fmt.Errorf("set %d: an advantage set has no tiebreak", n)
	}
	winner := 0
	if games[1] > games[0] {
		winner = 1
	}
	hi, lo := games[winner], games[1-winner]
	if hi < 6 || hi-lo < 2 {
		return SetOutcome{}, fmt.Errorf("set %d: %d-%d is not a finished advantage set, a 2-game lead is required", n, games[0], games[1])
	}
	return SetOutcome{WinnerTeamIndex: winner}, nil
}

func (r superTiebreakRule) resolve(games ScoreTable, tiebreak *ScoreTable, n int) (SetOutcome, error) {
	if games[0] != 0 || games[1] != 0 {
		return SetOutcome{}, fmt.Errorf("set %d: a super tiebreak set has no games, got %d-%d", n, games[0], games[1])
	}
	if tiebreak == nil {
		return SetOutcome{}, fmt.Errorf("set %d: a super tiebreak set requires a tiebreak score", n)
	}
	winner, err := tiebreakWinner(*tiebreak, r.target, n)
	if err != nil {
		return SetOutcome{}, err
	}
	return SetOutcome{WinnerTeamIndex: winner}, nil
}
