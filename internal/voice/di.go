package voice

import (
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		completer := do.MustInvoke[Completer](i)
		var recognizer Recognizer
		if cfg.SpeechRecognitionEnabled() {
			recognizer = do.MustInvoke[Recognizer](i)
		}
		return NewService(repo, completer, recognizer), nil
	})
}
