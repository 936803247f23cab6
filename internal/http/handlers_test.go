package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/courtside/matchpoint/internal/club"
	"github.com/courtside/matchpoint/internal/config"
	"github.com/courtside/matchpoint/internal/database"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/metrics"
	"github.com/courtside/matchpoint/internal/notifier"
	"github.com/courtside/matchpoint/internal/pubsub"
	"github.com/courtside/matchpoint/internal/ranking"
	"github.com/prometheus/client_golang/prometheus"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notif *notifier.Mock) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clubStore := club.New(db)
	matchStore := match.NewStore(db)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	ps := pubsub.NewMock("TEST")
	matchSvc := match.NewService(clubStore, matchStore, notif, metricsSvc, ps)
	rankingSvc := ranking.NewService(clubStore, matchStore, metricsSvc, ps)
	server := NewServer(clubStore, matchStore, matchSvc, rankingSvc, metricsSvc, metricsHandler, cfg, notif, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

// seedCategory sets up a club, a category and four enrolled players.
func seedCategory(t *testing.T, store club.ClubStore) {
	t.Helper()

	require.NoError(t, store.UpsertClub(club.Club{ID: "club-1", Name: "Courtside"}))
	require.NoError(t, store.UpsertCategory(club.Category{ID: "cat-1", ClubID: "club-1", Name: "Division 1"}))

	players := []club.PlayerInfo{
		{ID: "p1", ClubID: "club-1", Name: "Alice"},
		{ID: "p2", ClubID: "club-1", Name: "Bob"},
		{ID: "p3", ClubID: "club-1", Name: "Carol"},
		{ID: "p4", ClubID: "club-1", Name: "Dan"},
	}
	require.NoError(t, store.UpsertPlayers(players))
	for _, p := range players {
		require.NoError(t, store.AddPlayerToCategory("cat-1", p.ID))
	}
}

func matchRequestBody(sets string) string {
	return fmt.Sprintf(`{
		"clubId": "club-1",
		"categoryId": "cat-1",
		"format": "SINGLES",
		"bestOf": 3,
		"teams": [{"players": ["p1"]}, {"players": ["p2"]}],
		"sets": %s
	}`, sets)
}

const straightSets = `[
	{"games": [{"teamIndex": 0, "score": 6}, {"teamIndex": 1, "score": 3}]},
	{"games": [{"teamIndex": 0, "score": 6}, {"teamIndex": 1, "score": 4}]}
]`

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestCreateMatchHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()
	seedCategory(t, server.Store)

	req, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "cat-1", created.CategoryID)
	assert.Len(t, created.Participants, 2)

	stored, err := server.Matches.GetMatch(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, notif.SendMatchResultCalls, 1)
}

func TestCreateMatchHandler_DryRun(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	req, err := http.NewRequest("POST", "/matches?dry_run=true", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	stored, err := server.Matches.GetMatch(created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored, "dry run must not persist the match")
}

func TestCreateMatchHandler_InvalidJSON(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("POST", "/matches", strings.NewReader("{not json"))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateMatchHandler_UnknownClub(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "club club-1 not found")
}

func TestCreateMatchHandler_IllegalSet(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	illegal := `[{"games": [{"teamIndex": 0, "score": 6}, {"teamIndex": 1, "score": 5}]}]`
	req, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(illegal)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "set 1")
}

func TestMatchesHandler_MethodNotAllowed(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("DELETE", "/matches", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestListMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	// Missing category_id.
	req, err := http.NewRequest("GET", "/matches", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	create, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	list, err := http.NewRequest("GET", "/matches?category_id=cat-1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, list)

	require.Equal(t, http.StatusOK, rr.Code)
	var matches []match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	assert.Len(t, matches, 1)
}

func TestListMembersHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	req, err := http.NewRequest("GET", "/members", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req, err = http.NewRequest("GET", "/members?club_id=club-1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var players []club.PlayerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 4)
}

func TestStandingsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	create, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	req, err := http.NewRequest("GET", "/standings?category_id=cat-1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rows []ranking.StandingsRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "p1", rows[0].PlayerID)
	assert.Equal(t, ranking.PointsWin, rows[0].Points)
	assert.Equal(t, "p2", rows[1].PlayerID)
	assert.Equal(t, ranking.PointsLoss, rows[1].Points)
}

func TestStandingsHandler_UnknownCategory(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/standings?category_id=nope", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	create, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	req, err := http.NewRequest("GET", "/stats?category_id=cat-1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var stats []ranking.PlayerStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "p1", stats[0].PlayerID)
	assert.Equal(t, 1, stats[0].MatchesWon)
	assert.Equal(t, 2, stats[0].SetsWon)
}

func TestClearStoreHandler_SingleMatch(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedCategory(t, server.Store)

	create, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created match.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	clear, err := http.NewRequest("GET", "/clear?matchID="+created.ID, nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, clear)
	require.Equal(t, http.StatusOK, rr.Code)

	stored, err := server.Matches.GetMatch(created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestNotifyStandingsHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()
	seedCategory(t, server.Store)

	create, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Missing category_id.
	req, err := http.NewRequest("GET", "/notify-standings", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req, err = http.NewRequest("GET", "/notify-standings?category_id=cat-1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, notif.SendStandingsCalls, 1)
	assert.Len(t, notif.SendStandingsCalls[0], 2)
}

func TestNotifyStandingsHandler_UnknownCategory(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()

	req, err := http.NewRequest("GET", "/notify-standings?category_id=nope", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, notif.SendStandingsCalls)
}

func TestNotifyPlayerStatsHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()
	seedCategory(t, server.Store)

	create, err := http.NewRequest("POST", "/matches", strings.NewReader(matchRequestBody(straightSets)))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, create)
	require.Equal(t, http.StatusCreated, rr.Code)

	req, err := http.NewRequest("GET", "/notify-player-stats?category_id=cat-1&player=Alice", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, notif.SendPlayerStatsCalls, 1)
	assert.Equal(t, "p1", notif.SendPlayerStatsCalls[0].Stats.PlayerID)
	assert.Empty(t, notif.SendPlayerNotFoundCalls)

	// A player with no recorded matches gets the not-found message.
	req, err = http.NewRequest("GET", "/notify-player-stats?category_id=cat-1&player=Nobody", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, notif.SendPlayerNotFoundCalls, 1)
	assert.Equal(t, "Nobody", notif.SendPlayerNotFoundCalls[0])
}

func TestStandingsCommandHandler(t *testing.T) {
	notif := notifier.NewMock()
	notif.FormatStandingsResponseFunc = func(rows []ranking.StandingsRow) (any, error) {
		return slackapi.NewBlockMessage(), nil
	}
	server, teardown := setupTestServer(t, notif)
	defer teardown()
	seedCategory(t, server.Store)

	form := url.Values{}
	form.Set("text", "cat-1")
	req, err := http.NewRequest("POST", "/slack/command/standings", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotNil(t, notif.LastStandingsResponse)
}

func TestPlayerStatsCommandHandler_NotFound(t *testing.T) {
	notif := notifier.NewMock()
	notif.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
		return slackapi.NewBlockMessage(), nil
	}
	server, teardown := setupTestServer(t, notif)
	defer teardown()
	seedCategory(t, server.Store)

	form := url.Values{}
	form.Set("text", "cat-1 Nobody")
	req, err := http.NewRequest("POST", "/slack/command/player-stats", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotNil(t, notif.LastPlayerNotFoundResponse)
}
