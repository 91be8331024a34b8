package agent

import (
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Service, error) {
		return NewService(do.MustInvoke[repository.Repository](i)), nil
	})
}
