package completion

import (
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/voice"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (voice.Completer, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewOpenAICompleter(c.OpenAIAPIKey, c.OpenAIBaseURL, c.OpenAIModel), nil
	})
}
