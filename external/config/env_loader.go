package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/gparth254/meet-ai/internal/config"
	"github.com/joho/godotenv"
)

var dotenvFiles = []string{".env.local", ".env"}

type envConfig struct {
	Env                        string `env:"ENV" envDefault:"production"`
	HTTPAddr                   string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL                string `env:"DATABASE_URL,required"`
	SessionCookieName          string `env:"SESSION_COOKIE_NAME" envDefault:"better-auth.session_token"`
	StreamVideoAPIKey          string `env:"STREAM_VIDEO_API_KEY,required"`
	StreamVideoSecretKey       string `env:"STREAM_VIDEO_SECRET_KEY,required"`
	StreamVideoBaseURL         string `env:"STREAM_VIDEO_BASE_URL" envDefault:"https://video.stream-io-api.com"`
	StreamCallType             string `env:"STREAM_CALL_TYPE" envDefault:"default"`
	OpenAIAPIKey               string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL              string `env:"OPENAI_BASE_URL"`
	OpenAIModel                string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	GoogleCloudProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"long"`
	SpeechLanguage             string `env:"SPEECH_LANGUAGE" envDefault:"en-US"`
	RedisURL                   string `env:"REDIS_URL"`
	DiscordToken               string `env:"DISCORD_TOKEN"`
	DiscordNotifyChannelID     string `env:"DISCORD_NOTIFY_CHANNEL_ID"`
	MeetingWebhookURL          string `env:"MEETING_WEBHOOK_URL"`
	EnforceStatusTransitions   bool   `env:"ENFORCE_STATUS_TRANSITIONS" envDefault:"true"`
}

// Load reads .env.local and .env when present, then the process environment.
// Values already set in the environment are never overridden by the files.
func Load() (*internalconfig.Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return loadFromEnv()
}

func loadFromEnv() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		HTTPAddr:                   raw.HTTPAddr,
		DatabaseURL:                raw.DatabaseURL,
		SessionCookieName:          raw.SessionCookieName,
		StreamVideoAPIKey:          raw.StreamVideoAPIKey,
		StreamVideoSecretKey:       raw.StreamVideoSecretKey,
		StreamVideoBaseURL:         raw.StreamVideoBaseURL,
		StreamCallType:             raw.StreamCallType,
		OpenAIAPIKey:               raw.OpenAIAPIKey,
		OpenAIBaseURL:              raw.OpenAIBaseURL,
		OpenAIModel:                raw.OpenAIModel,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		SpeechLanguage:             raw.SpeechLanguage,
		RedisURL:                   raw.RedisURL,
		DiscordToken:               raw.DiscordToken,
		DiscordNotifyChannelID:     raw.DiscordNotifyChannelID,
		MeetingWebhookURL:          raw.MeetingWebhookURL,
		EnforceStatusTransitions:   raw.EnforceStatusTransitions,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
