package http

import (
	"net/http"

	"github.com/tobiasvn/benchboss/internal/config"
	"github.com/tobiasvn/benchboss/internal/match"
	"github.com/tobiasvn/benchboss/internal/metrics"
	"github.com/tobiasvn/benchboss/internal/notifier"
)

func NewServer(store Store, matchSvc *match.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Matches:        matchSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/roster", Chain(s.ListRosterHandler(), paramsMiddleware))
	s.Router.Handle("/roster/add", Chain(s.AddPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/match", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/start", Chain(s.StartMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/substitute", Chain(s.SubstituteHandler(), paramsMiddleware))
	s.Router.Handle("/match/goalie", Chain(s.ChangeGoalieHandler(), paramsMiddleware))
	s.Router.Handle("/match/swap", Chain(s.SwapRolesHandler(), paramsMiddleware))
	s.Router.Handle("/match/pause", Chain(s.PauseMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/resume", Chain(s.ResumeMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/period/end", Chain(s.EndPeriodHandler(), paramsMiddleware))
	s.Router.Handle("/match/squad", Chain(s.EditSquadHandler(), paramsMiddleware))
	s.Router.Handle("/match/finish", Chain(s.FinishMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/points", Chain(s.RolePointsHandler(), paramsMiddleware))
	s.Router.Handle("/match/stats", Chain(s.MatchStatsHandler(), paramsMiddleware))
	s.Router.Handle("/match/suggestions", Chain(s.SuggestionsHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
