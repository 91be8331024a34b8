package meeting

import (
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/notify"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/transcript"
	"github.com/gparth254/meet-ai/internal/video"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		gw := do.MustInvoke[video.Gateway](i)
		fetcher := do.MustInvoke[transcript.Fetcher](i)
		notifier := do.MustInvoke[notify.Publisher](i)
		svc := NewService(repo, gw, fetcher, notifier, cfg.StreamCallType)
		svc.enforceTransitions = cfg.EnforceStatusTransitions
		return svc, nil
	})
}
