package scoring

// Aggregate tallies resolved set outcomes into a match outcome and expands
// it into one participant record per player, team order first, roster order
// second.
//
// Equal set-win counts leave both teams with a DRAW; partial submissions
// are scored as given, never rejected here.
func Aggregate(outcomes []SetOutcome, teams []Team) MatchOutcome {
	var out MatchOutcome
	for _, o := range outcomes {
		out.SetsWon[o.WinnerTeamIndex]++
	}

	switch {
	case out.SetsWon[0] > out.SetsWon[1]:
		out.TeamResults = [2]Result{ResultWin, ResultLoss}
	case out.SetsWon[1] > out.SetsWon[0]:
		out.TeamResults = [2]Result{ResultLoss, ResultWin}
	default:
		out.TeamResults = [2]Result{ResultDraw, ResultDraw}
	}

	for i, team := range teams {
		for _, playerID := range team.Players {
			out.Participants = append(out.Participants, Participant{
				PlayerID: playerID,
				Result:   out.TeamResults[i],
			})
		}
	}
	return out
}
