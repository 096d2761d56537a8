package http

import (
	"net/http"

	"github.com/tobiasvn/benchboss/internal/config"
	"github.com/tobiasvn/benchboss/internal/match"
	"github.com/tobiasvn/benchboss/internal/metrics"
	"github.com/tobiasvn/benchboss/internal/notifier"
)

type Server struct {
	Store          Store
	Matches        *match.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}
