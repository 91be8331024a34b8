package transcript

import (
	"github.com/gparth254/meet-ai/internal/transcript"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcript.Fetcher, error) {
		return NewHTTPFetcher(), nil
	})
}
