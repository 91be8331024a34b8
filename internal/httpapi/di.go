package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gparth254/meet-ai/internal/agent"
	"github.com/gparth254/meet-ai/internal/auth"
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/meeting"
	"github.com/gparth254/meet-ai/internal/metrics"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/voice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

const readHeaderTimeout = 10 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*gin.Engine, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.IsDevelopment() {
			gin.SetMode(gin.ReleaseMode)
		}
		return NewRouter(Dependencies{
			Auth:     do.MustInvoke[auth.Authenticator](i),
			Agents:   do.MustInvoke[*agent.Service](i),
			Meetings: do.MustInvoke[*meeting.Service](i),
			Voice:    do.MustInvoke[*voice.Service](i),
			Health:   do.MustInvoke[repository.Repository](i),
			Metrics:  do.MustInvoke[*metrics.HTTPMetrics](i),
			Gatherer: do.MustInvoke[*prometheus.Registry](i),
		}), nil
	})
	do.Provide(injector, func(i do.Injector) (*http.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           do.MustInvoke[*gin.Engine](i),
			ReadHeaderTimeout: readHeaderTimeout,
		}, nil
	})
}
