package video

import (
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/video"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (video.Gateway, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewStreamGateway(c.StreamVideoAPIKey, c.StreamVideoSecretKey, c.StreamVideoBaseURL), nil
	})
}
