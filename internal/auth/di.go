package auth

import (
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (Authenticator, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		return NewSessionAuthenticator(repo, cfg.SessionCookieName), nil
	})
}
