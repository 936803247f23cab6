package match

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside/matchpoint/internal/club"
	"github.com/courtside/matchpoint/internal/metrics"
	"github.com/courtside/matchpoint/internal/pubsub"
	"github.com/courtside/matchpoint/internal/scoring"
	"github.com/google/uuid"
)

// Service orchestrates match creation: entity lookups, the scoring engine
// and persistence. It is the only place the scoring rules meet I/O.
type Service struct {
	clubs    club.ClubStore
	matches  MatchStore
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}

// NewService creates a new match Service.
func NewService(clubs club.ClubStore, matches MatchStore, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Service {
	return &Service{
		clubs:    clubs,
		matches:  matches,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}

// CreateMatch validates and scores a submitted match, then persists it with
// the derived per-player results. Nothing is written until every check has
// passed; the first failure aborts the whole request. With dryRun set the
// full pipeline runs but no row is inserted and no event leaves the process.
func (s *Service) CreateMatch(req *scoring.MatchRequest, dryRun bool) (*Match, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.ObserveMatchCreateDuration(time.Since(startTime).Seconds())
	}()

	clubRec, err := s.clubs.GetClub(req.ClubID)
	if err != nil {
		return nil, err
	}
	if clubRec == nil {
		return nil, &NotFoundError{Kind: "club", ID: req.ClubID}
	}

	category, err := s.clubs.GetCategory(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &NotFoundError{Kind: "category", ID: req.CategoryID}
	}
	if category.ClubID != req.ClubID {
		return nil, s.reject(validationErrorf("category %s does not belong to club %s", req.CategoryID, req.ClubID))
	}

	if err := scoring.ValidateStructure(req); err != nil {
		return nil, s.reject(&ValidationError{Err: err})
	}

	for _, team := range req.Teams {
		for _, playerID := range team.Players {
			player, err := s.clubs.GetPlayer(playerID)
			if err != nil {
				return nil, err
			}
			if player == nil {
				return nil, &NotFoundError{Kind: "player", ID: playerID}
			}
			if player.ClubID != req.ClubID {
				return nil, s.reject(validationErrorf("player %s does not belong to club %s", playerID, req.ClubID))
			}
			member, err := s.clubs.IsCategoryMember(req.CategoryID, playerID)
			if err != nil {
				return nil, err
			}
			if !member {
				return nil, s.reject(validationErrorf("player %s is not a member of category %s", playerID, req.CategoryID))
			}
		}
	}

	// Re-asserted here because it gates the per-set contexts below.
	if len(req.Sets) > req.BestOf {
		return nil, s.reject(validationErrorf("a best-of-%d match allows at most %d sets, got %d", req.BestOf, req.BestOf, len(req.Sets)))
	}

	outcomes := make([]scoring.SetOutcome, 0, len(req.Sets))
	for i, set := range req.Sets {
		outcome, err := scoring.ResolveSet(set, scoring.SetContext{
			SetIndex:    i,
			BestOf:      req.BestOf,
			TotalSets:   len(req.Sets),
			DecidingSet: req.DecidingSet,
		})
		if err != nil {
			return nil, s.reject(&ValidationError{Err: err})
		}
		outcomes = append(outcomes, outcome)
	}

	result := scoring.Aggregate(outcomes, req.Teams)

	playedAt := time.Now()
	if req.PlayedAt != nil {
		playedAt = *req.PlayedAt
	}

	m := &Match{
		ID:           uuid.NewString(),
		ClubID:       req.ClubID,
		CategoryID:   req.CategoryID,
		Format:       req.Format,
		BestOf:       req.BestOf,
		DecidingSet:  req.DecidingSet,
		Teams:        req.Teams,
		Sets:         req.Sets,
		Participants: result.Participants,
		PlayedAt:     playedAt.Unix(),
		CreatedAt:    time.Now().Unix(),
	}

	if dryRun {
		log.Info("[Dry Run] Match validated, skipping persistence", "matchID", m.ID, "category", m.CategoryID)
		return m, nil
	}

	if err := s.matches.InsertMatch(m); err != nil {
		return nil, err
	}
	s.metrics.IncMatchesCreated()
	log.Info("Match created", "matchID", m.ID, "club", m.ClubID, "category", m.CategoryID, "sets", len(m.Sets))

	// Post-persist fanout is best effort; the match is already stored.
	if err := s.pubsub.SendMessage(pubsub.EventMatchCreated, m); err != nil {
		log.Error("Failed to publish match-created event", "error", err, "matchID", m.ID)
	}
	if _, err := s.notifier.SendMatchResult(m, dryRun); err != nil {
		log.Error("Failed to send match result notification", "error", err, "matchID", m.ID)
	}

	return m, nil
}

func (s *Service) reject(err error) error {
	s.metrics.IncValidationFailures()
	return err
}
