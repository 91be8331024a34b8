package transcriber

import (
	"context"
	"strings"
	"testing"

	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTestRecognizer(fn recognizeFunc) *CloudSpeechRecognizer {
	r := NewCloudSpeechRecognizer(CloudSpeechConfig{
		ProjectID: "proj-1",
		Language:  "en-US",
		Location:  "us",
		Model:     "short",
	})
	r.recognize = fn
	return r
}

func TestRecognize_JoinsResults(t *testing.T) {
	var got *speechpb.RecognizeRequest
	r := newTestRecognizer(func(_ context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		got = req
		return &speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "book room four "}}},
			{},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "at noon"}, {Transcript: "at moon"}}},
		}}, nil
	})

	text, err := r.Recognize(context.Background(), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "book room four at noon" {
		t.Fatalf("unexpected text: %q", text)
	}
	if got.GetRecognizer() != "projects/proj-1/locations/us/recognizers/_" {
		t.Fatalf("unexpected recognizer: %s", got.GetRecognizer())
	}
	if got.GetConfig().GetModel() != "short" || got.GetConfig().GetLanguageCodes()[0] != "en-US" {
		t.Fatalf("unexpected config: %v", got.GetConfig())
	}
	if got.GetConfig().GetAutoDecodingConfig() == nil {
		t.Fatal("expected auto decoding")
	}
	if string(got.GetContent()) != string([]byte{1, 2, 3}) {
		t.Fatal("expected audio content to be sent inline")
	}
}

func TestRecognize_InvalidArgument(t *testing.T) {
	r := newTestRecognizer(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return nil, status.Error(codes.InvalidArgument, "audio too long")
	})
	_, err := r.Recognize(context.Background(), []byte{1})
	if err == nil || !strings.Contains(err.Error(), "audio too long") {
		t.Fatalf("expected rejected audio error, got %v", err)
	}
}

func TestRecognize_Unavailable(t *testing.T) {
	r := newTestRecognizer(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return nil, status.Error(codes.Unavailable, "try later")
	})
	_, err := r.Recognize(context.Background(), []byte{1})
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("expected wrapped unavailable error, got %v", err)
	}
}

func TestNewCloudSpeechRecognizer_DefaultLocation(t *testing.T) {
	r := NewCloudSpeechRecognizer(CloudSpeechConfig{ProjectID: "p"})
	if r.location != "global" {
		t.Fatalf("expected global location, got %s", r.location)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close without client: %v", err)
	}
}
