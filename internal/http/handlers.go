package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"io"

	"github.com/charmbracelet/log"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/ranking"
	"github.com/courtside/matchpoint/internal/scoring"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Matches.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.URL.Query().Get("club_id")
		if clubID == "" {
			http.Error(w, "club_id is required", http.StatusBadRequest)
			return
		}

		players, err := s.Store.GetAllPlayers(clubID)
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// MatchesHandler records a match on POST and lists a category's matches on GET.
func (s *Server) MatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.createMatch(w, r)
		case http.MethodGet:
			s.listMatches(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	var req scoring.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode match request", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	isDryRun := isDryRunFromContext(r)
	m, err := s.MatchSvc.CreateMatch(&req, isDryRun)
	if err != nil {
		writeDomainError(w, err, "Failed to create match")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category_id")
	if categoryID == "" {
		http.Error(w, "category_id is required", http.StatusBadRequest)
		return
	}

	matches, err := s.Matches.GetMatchesByCategory(categoryID)
	if err != nil {
		http.Error(w, "Failed to get matches", http.StatusInternalServerError)
		log.Error("Failed to get matches from store", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// StandingsHandler returns a handler that serves a category's points table.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.URL.Query().Get("category_id")
		if categoryID == "" {
			http.Error(w, "category_id is required", http.StatusBadRequest)
			return
		}

		rows, err := s.Ranking.Standings(categoryID)
		if err != nil {
			writeDomainError(w, err, "Failed to compute standings")
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// StatsHandler returns a handler that serves a category's per-player rollup.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.URL.Query().Get("category_id")
		if categoryID == "" {
			http.Error(w, "category_id is required", http.StatusBadRequest)
			return
		}

		stats, err := s.Ranking.Stats(categoryID)
		if err != nil {
			writeDomainError(w, err, "Failed to compute stats")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// NotifyResultHandler consumes a Pub/Sub push message carrying a recorded
// match and announces it. Used when notifications are routed through a push
// subscription instead of the synchronous path.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify result message", "body", string(bodyBytes))
		// Push delivery wraps the payload in JSON with a base64 data field.
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		m := match.Match{}
		s.pubsub.ProcessMessage(rawData, &m)
		if _, err := s.Notifier.SendMatchResult(&m, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err, "matchID", m.ID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyStandingsHandler computes a category's standings and posts them to
// the configured channel. Meant to be hit by a scheduler after match days.
func (s *Server) NotifyStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.URL.Query().Get("category_id")
		if categoryID == "" {
			http.Error(w, "category_id is required", http.StatusBadRequest)
			return
		}

		rows, err := s.Ranking.Standings(categoryID)
		if err != nil {
			writeDomainError(w, err, "Failed to compute standings")
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendStandings(rows, isDryRun); err != nil {
			log.Error("Failed to send standings notification", "error", err, "categoryID", categoryID)
			http.Error(w, "Failed to notify standings", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyPlayerStatsHandler posts one player's rollup to the configured
// channel, or a not-found message when the player has no recorded matches.
func (s *Server) NotifyPlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.URL.Query().Get("category_id")
		query := r.URL.Query().Get("player")
		if categoryID == "" || query == "" {
			http.Error(w, "category_id and player are required", http.StatusBadRequest)
			return
		}

		stats, err := s.Ranking.Stats(categoryID)
		if err != nil {
			writeDomainError(w, err, "Failed to compute stats")
			return
		}

		isDryRun := isDryRunFromContext(r)
		if found := findPlayerStats(stats, query); found != nil {
			err = s.Notifier.SendPlayerStats(found, query, isDryRun)
		} else {
			log.Warn("Could not find player stats", "player", query, "categoryID", categoryID)
			err = s.Notifier.SendPlayerNotFound(query, isDryRun)
		}
		if err != nil {
			log.Error("Failed to send player stats notification", "error", err, "player", query)
			http.Error(w, "Failed to notify player stats", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
// The command text is the category id.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		categoryID := strings.TrimSpace(r.FormValue("text"))
		if categoryID == "" {
			http.Error(w, "Category id is required.", http.StatusBadRequest)
			return
		}

		rows, err := s.Ranking.Standings(categoryID)
		if err != nil {
			writeDomainError(w, err, "Failed to compute standings")
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(rows)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack
// command. The command text is "<category-id> <player name>".
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		categoryID, query, ok := strings.Cut(strings.TrimSpace(r.FormValue("text")), " ")
		if !ok || strings.TrimSpace(query) == "" {
			http.Error(w, "Usage: <category-id> <player name>", http.StatusBadRequest)
			return
		}
		query = strings.TrimSpace(query)

		log.Info("Received player stats command", "categoryID", categoryID, "player", query)

		stats, err := s.Ranking.Stats(categoryID)
		if err != nil {
			writeDomainError(w, err, "Failed to compute stats")
			return
		}

		var msg any
		if found := findPlayerStats(stats, query); found != nil {
			msg, err = s.Notifier.FormatPlayerStatsResponse(found, query)
		} else {
			log.Warn("Could not find player stats", "player", query, "categoryID", categoryID)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(query)
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// findPlayerStats matches by player id first, then by case-insensitive name.
func findPlayerStats(stats []ranking.PlayerStats, query string) *ranking.PlayerStats {
	for i := range stats {
		if stats[i].PlayerID == query {
			return &stats[i]
		}
	}
	for i := range stats {
		if strings.EqualFold(stats[i].Name, query) {
			return &stats[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeDomainError maps service errors onto HTTP statuses. A missing entity
// is a 404, a rejected request is a 400, anything else stays a 500 with the
// detail kept out of the response.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	var notFound *match.NotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, notFound.Error(), http.StatusNotFound)
		return
	}
	var validation *match.ValidationError
	if errors.As(err, &validation) {
		http.Error(w, validation.Error(), http.StatusBadRequest)
		return
	}
	log.Error(fallback, "error", err)
	http.Error(w, fallback, http.StatusInternalServerError)
}
