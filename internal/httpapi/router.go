package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gparth254/meet-ai/internal/agent"
	"github.com/gparth254/meet-ai/internal/auth"
	"github.com/gparth254/meet-ai/internal/meeting"
	"github.com/gparth254/meet-ai/internal/metrics"
	"github.com/gparth254/meet-ai/internal/pagination"
	"github.com/gparth254/meet-ai/internal/voice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type AgentService interface {
	GetOne(ctx context.Context, id string) (*agent.View, error)
	GetMany(ctx context.Context, in agent.ListInput) (*pagination.Page[agent.View], error)
	Create(ctx context.Context, in agent.CreateInput) (*agent.View, error)
	Update(ctx context.Context, id string, in agent.UpdateInput) (*agent.View, error)
	Remove(ctx context.Context, id string) (*agent.View, error)
}

type MeetingService interface {
	GetOne(ctx context.Context, id string) (*meeting.View, error)
	GetMany(ctx context.Context, in meeting.ListInput) (*pagination.Page[meeting.View], error)
	Create(ctx context.Context, in meeting.CreateInput) (*meeting.View, error)
	Update(ctx context.Context, id string, in meeting.UpdateInput) (*meeting.View, error)
	Remove(ctx context.Context, id string) (*meeting.View, error)
	GenerateToken(ctx context.Context) (string, error)
	GetTranscript(ctx context.Context, id string) ([]meeting.TranscriptEntry, error)
}

type VoiceService interface {
	Reply(ctx context.Context, in voice.ReplyInput) (*voice.Reply, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Auth     auth.Authenticator
	Agents   AgentService
	Meetings MeetingService
	Voice    VoiceService
	Health   Pinger
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(requestLogger())

	r.GET("/healthz", healthHandler(deps.Health))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(withRequestContext(deps.Auth), requireCaller())
	{
		a := &agentHandlers{svc: deps.Agents}
		api.GET("/agents", a.getMany)
		api.GET("/agents/:id", a.getOne)
		api.POST("/agents", a.create)
		api.PATCH("/agents/:id", a.update)
		api.DELETE("/agents/:id", a.remove)

		m := &meetingHandlers{svc: deps.Meetings}
		api.GET("/meetings", m.getMany)
		api.POST("/meetings", m.create)
		api.POST("/meetings/token", m.generateToken)
		api.GET("/meetings/:id", m.getOne)
		api.PATCH("/meetings/:id", m.update)
		api.DELETE("/meetings/:id", m.remove)
		api.GET("/meetings/:id/transcript", m.getTranscript)

		v := &voiceHandlers{svc: deps.Voice}
		api.POST("/agent-voice", v.reply)
	}
	return r
}

func healthHandler(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
