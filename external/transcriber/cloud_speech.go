package transcriber

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const speechAPIEndpointPort = 443

type CloudSpeechConfig struct {
	ProjectID       string
	CredentialsJSON string
	Language        string
	Location        string
	Model           string
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// CloudSpeechRecognizer transcribes short voice clips with a single
// Recognize call. The client is created on first use.
type CloudSpeechRecognizer struct {
	projectID       string
	credentialsJSON string
	language        string
	location        string
	model           string

	mu        sync.Mutex
	client    *speech.Client
	recognize recognizeFunc
}

func NewCloudSpeechRecognizer(cfg CloudSpeechConfig) *CloudSpeechRecognizer {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}
	return &CloudSpeechRecognizer{
		projectID:       cfg.ProjectID,
		credentialsJSON: cfg.CredentialsJSON,
		language:        cfg.Language,
		location:        location,
		model:           strings.TrimSpace(cfg.Model),
	}
}

func (r *CloudSpeechRecognizer) Recognize(ctx context.Context, audio []byte) (string, error) {
	recognize, err := r.recognizer(ctx)
	if err != nil {
		return "", err
	}
	resp, err := recognize(ctx, r.request(audio))
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			return "", fmt.Errorf("audio rejected: %s", st.Message())
		}
		return "", fmt.Errorf("recognize: %w", err)
	}
	var parts []string
	for _, result := range resp.GetResults() {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		if text := strings.TrimSpace(alternatives[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func (r *CloudSpeechRecognizer) request(audio []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", r.projectID, r.location),
		Config: &speechpb.RecognitionConfig{
			Model:         r.model,
			LanguageCodes: []string{r.language},
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
			Features: &speechpb.RecognitionFeatures{EnableAutomaticPunctuation: true},
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: audio},
	}
}

func (r *CloudSpeechRecognizer) recognizer(ctx context.Context) (recognizeFunc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recognize != nil {
		return r.recognize, nil
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		CredentialsJSON: []byte(r.credentialsJSON),
		Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
	})
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}
	opts := []option.ClientOption{
		option.WithAuthCredentials(creds),
	}
	if r.location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", r.location, speechAPIEndpointPort)))
	}
	client, err := speech.NewClient(context.WithoutCancel(ctx), opts...)
	if err != nil {
		return nil, err
	}
	slog.Info("cloud speech client initialized", "location", r.location, "model", r.model)
	r.client = client
	r.recognize = func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}
	return r.recognize, nil
}

func (r *CloudSpeechRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	r.recognize = nil
	return err
}
