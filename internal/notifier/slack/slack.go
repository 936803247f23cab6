package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/metrics"
	"github.com/courtside/matchpoint/internal/notifier"
	"github.com/courtside/matchpoint/internal/ranking"
	"github.com/courtside/matchpoint/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchResult(m *match.Match, dryRun bool) (string, error) {
	msg := s.formatMatchResult(m)
	_, ts, err := s.sendMessage(msg, dryRun)
	return ts, err
}

func (s *Notifier) SendStandings(rows []ranking.StandingsRow, dryRun bool) error {
	msg := s.formatStandings(rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerStats(stats *ranking.PlayerStats, query string, dryRun bool) error {
	msg := s.formatPlayerStats(stats, query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerNotFound(query string, dryRun bool) error {
	msg := s.formatPlayerNotFound(query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats a standings message for a slash command response.
func (s *Notifier) FormatStandingsResponse(rows []ranking.StandingsRow) (any, error) {
	return s.formatStandings(rows), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(stats *ranking.PlayerStats, query string) (any, error) {
	return s.formatPlayerStats(stats, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match result recorded! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details - Use newlines for clear separation.
	loc, err := time.LoadLocation("Europe/Copenhagen")
	var timeStr string
	if err == nil {
		timeStr = time.Unix(m.PlayedAt, 0).In(loc).Format("Monday 02 Jan, 15:04")
	} else {
		timeStr = time.Unix(m.PlayedAt, 0).Format("Monday 02 Jan, 15:04")
	}
	detailsText := fmt.Sprintf("Played: %s\nSets: %s", timeStr, formatSetLine(m.Sets))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Result header
	teamNames := make([]string, len(m.Teams))
	for i, team := range m.Teams {
		teamNames[i] = strings.Join(team.Players, " & ")
	}
	resultText := "Result: It's a draw! 🤝"
	for _, p := range m.Participants {
		if p.Result != scoring.ResultWin {
			continue
		}
		for i, team := range m.Teams {
			for _, playerID := range team.Players {
				if playerID == p.PlayerID {
					resultText = fmt.Sprintf("Result: %s won! 🏆", teamNames[i])
				}
			}
		}
		break
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	// Teams
	var teamLines []string
	for i, name := range teamNames {
		teamLines = append(teamLines, fmt.Sprintf("• Team %d: %s", i+1, name))
	}
	if len(teamLines) > 0 {
		teamsText := "Teams:\n" + strings.Join(teamLines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", teamsText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the category standings.
func (s *Notifier) formatStandings(rows []ranking.StandingsRow) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Category Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No standings available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, row := range rows {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		name := row.Name
		if name == "" {
			name = row.PlayerID
		}
		playerText := fmt.Sprintf("%d. %s %s\n> Points: %d", rank, medal, name, row.Points)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(stats *ranking.PlayerStats, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	name := stats.Name
	if name == "" {
		name = stats.PlayerID
	}
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 Stats for %s 📊", name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	statsText := fmt.Sprintf("Matches: %d (W %d / D %d / L %d)\nSets won: %d\nSets lost: %d",
		stats.MatchesPlayed,
		stats.MatchesWon,
		stats.MatchesDrawn,
		stats.MatchesLost,
		stats.SetsWon,
		stats.SetsLost,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", statsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player lookup fails.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := slack.NewTextBlockObject("plain_text", fmt.Sprintf("No player found matching %q. Check the spelling and try again.", query), false, false)
	return slack.NewBlockMessage(slack.NewSectionBlock(text, nil, nil))
}

// formatSetLine renders set scores as "6-3 7-6 (7-4)". A super tiebreak set
// carries no games, so only the tiebreak points show.
func formatSetLine(sets []scoring.SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		games := pairScores(set.Games)
		switch {
		case len(set.Tiebreak) == 0:
			parts = append(parts, fmt.Sprintf("%d-%d", games[0], games[1]))
		case games[0] == 0 && games[1] == 0:
			tb := pairScores(set.Tiebreak)
			parts = append(parts, fmt.Sprintf("%d-%d", tb[0], tb[1]))
		default:
			tb := pairScores(set.Tiebreak)
			parts = append(parts, fmt.Sprintf("%d-%d (%d-%d)", games[0], games[1], tb[0], tb[1]))
		}
	}
	return strings.Join(parts, " ")
}

func pairScores(entries []scoring.GameScore) [2]int {
	var scores [2]int
	for _, e := range entries {
		if e.TeamIndex == 0 || e.TeamIndex == 1 {
			scores[e.TeamIndex] = e.Score
		}
	}
	return scores
}
