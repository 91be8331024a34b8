package config

import (
	"fmt"
	"strings"
)

const openAIPlaceholderKey = "your_openai_api_key"

type Config struct {
	Env                        string
	HTTPAddr                   string
	DatabaseURL                string
	SessionCookieName          string
	StreamVideoAPIKey          string
	StreamVideoSecretKey       string
	StreamVideoBaseURL         string
	StreamCallType             string
	OpenAIAPIKey               string
	OpenAIBaseURL              string
	OpenAIModel                string
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
	SpeechLanguage             string
	RedisURL                   string
	DiscordToken               string
	DiscordNotifyChannelID     string
	MeetingWebhookURL          string
	EnforceStatusTransitions   bool
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("DATABASE_URL must start with postgres:// or postgresql://")
	}
	if c.OpenAIAPIKey == openAIPlaceholderKey {
		return fmt.Errorf("OPENAI_API_KEY is still the placeholder value")
	}
	if (c.DiscordToken == "") != (c.DiscordNotifyChannelID == "") {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_NOTIFY_CHANNEL_ID must be set together")
	}
	if (c.GoogleCloudProjectID == "") != (c.GoogleCloudCredentialsJSON == "") {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID and GOOGLE_CLOUD_CREDENTIALS_JSON must be set together")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "HTTP_ADDR", value: c.HTTPAddr},
		{name: "DATABASE_URL", value: c.DatabaseURL},
		{name: "SESSION_COOKIE_NAME", value: c.SessionCookieName},
		{name: "STREAM_VIDEO_API_KEY", value: c.StreamVideoAPIKey},
		{name: "STREAM_VIDEO_SECRET_KEY", value: c.StreamVideoSecretKey},
		{name: "STREAM_VIDEO_BASE_URL", value: c.StreamVideoBaseURL},
		{name: "STREAM_CALL_TYPE", value: c.StreamCallType},
		{name: "OPENAI_API_KEY", value: c.OpenAIAPIKey},
		{name: "OPENAI_MODEL", value: c.OpenAIModel},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) SpeechRecognitionEnabled() bool {
	return c.GoogleCloudProjectID != "" && c.GoogleCloudCredentialsJSON != ""
}

func (c *Config) DiscordNotifyEnabled() bool {
	return c.DiscordToken != "" && c.DiscordNotifyChannelID != ""
}
