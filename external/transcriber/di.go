package transcriber

import (
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/voice"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*CloudSpeechRecognizer, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCloudSpeechRecognizer(CloudSpeechConfig{
			ProjectID:       c.GoogleCloudProjectID,
			CredentialsJSON: c.GoogleCloudCredentialsJSON,
			Language:        c.SpeechLanguage,
			Location:        c.GoogleCloudSpeechLocation,
			Model:           c.GoogleCloudSpeechModel,
		}), nil
	})
	do.Provide(injector, func(i do.Injector) (voice.Recognizer, error) {
		return do.MustInvoke[*CloudSpeechRecognizer](i), nil
	})
}
