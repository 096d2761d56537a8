package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchboss_matches_started_total",
			Help: "The total number of matches started.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchboss_matches_completed_total",
			Help: "The total number of matches finished and archived.",
		}),
		Substitutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchboss_substitutions_total",
			Help: "The total number of substitutions applied across all matches.",
		}),
		SquadEdits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchboss_squad_edits_total",
			Help: "The total number of mid-match squad selection edits.",
		}),
		SuggestionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "benchboss_suggestion_duration_seconds",
			Help:    "The duration of substitution suggestion computations.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchboss_notifications_sent_total",
			Help: "The total number of coach notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchboss_notifications_failed_total",
			Help: "The total number of coach notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "benchboss_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesStarted,
		s.MatchesCompleted,
		s.Substitutions,
		s.SquadEdits,
		s.SuggestionDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesStarted() {
	s.MatchesStarted.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncSubstitutions() {
	s.Substitutions.Inc()
}

func (s *Service) IncSquadEdits() {
	s.SquadEdits.Inc()
}

func (s *Service) ObserveSuggestionDuration(duration float64) {
	s.SuggestionDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
