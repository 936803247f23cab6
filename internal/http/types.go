package http

import (
	"net/http"

	"github.com/courtside/matchpoint/internal/club"
	"github.com/courtside/matchpoint/internal/config"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/metrics"
	"github.com/courtside/matchpoint/internal/notifier"
	"github.com/courtside/matchpoint/internal/pubsub"
	"github.com/courtside/matchpoint/internal/ranking"
)

type Server struct {
	Store          club.ClubStore
	Matches        match.MatchStore
	MatchSvc       *match.Service
	Ranking        *ranking.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
