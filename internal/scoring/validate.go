package scoring

import "fmt"

// ValidateStructure checks the shape of a match request before any set is
// scored: best-of sanity, deciding-set coupling, team and roster cardinality,
// duplicate players and the set-count bound. It normalizes an empty deciding
// set type to STANDARD. The first violation aborts validation.
//
// Player, category and club existence are deliberately not checked here;
// those lookups belong to the caller so a missing entity surfaces as
// not-found rather than a generic validation failure.
func ValidateStructure(req *MatchRequest) error {
	if req.BestOf < 1 || req.BestOf%2 == 0 {
		return fmt.Errorf("bestOf must be a positive odd number, got %d", req.BestOf)
	}

	if req.DecidingSet == "" {
		req.DecidingSet = DecidingSetStandard
	}
	switch req.DecidingSet {
	case DecidingSetStandard, DecidingSetAdvantage, DecidingSetSuperTiebreak7, DecidingSetSuperTiebreak10:
	default:
		return fmt.Errorf("unknown deciding set type %q", req.DecidingSet)
	}
	if req.DecidingSet != DecidingSetStandard && req.BestOf != 3 {
		return fmt.Errorf("deciding set type %s requires a best-of-3 match, got best-of-%d", req.DecidingSet, req.BestOf)
	}

	if len(req.Teams) != 2 {
		return fmt.Errorf("a match needs exactly 2 teams, got %d", len(req.Teams))
	}

	size := req.Format.TeamSize()
	if size == 0 {
		return fmt.Errorf("unknown match format %q", req.Format)
	}
	for i, team := range req.Teams {
		if len(team.Players) != size {
			return fmt.Errorf("team %d must have %d player(s) for a %s match, got %d", i+1, size, req.Format, len(team.Players))
		}
	}

	seen := make(map[string]bool)
	for _, team := range req.Teams {
		for _, playerID := range team.Players {
			if seen[playerID] {
				return fmt.Errorf("player %s appears more than once in the match", playerID)
			}
			seen[playerID] = true
		}
	}

	if len(req.Sets) == 0 {
		return fmt.Errorf("a match needs at least one set")
	}
	if len(req.Sets) > req.BestOf {
		return fmt.Errorf("a best-of-%d match allows at most %d sets, got %d", req.BestOf, req.BestOf, len(req.Sets))
	}

	return nil
}
