package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/model"
)

func TestRatingForUrgency(t *testing.T) {
	tests := []struct {
		urgency string
		want    int
	}{
		{model.UrgencyCritical, 1},
		{model.UrgencyHigh, 2},
		{model.UrgencyMedium, 3},
		{model.UrgencyLow, 4},
		{"unknown", 3},
		{"", 3},
	}
	for _, tt := range tests {
		if got := RatingForUrgency(tt.urgency); got != tt.want {
			t.Errorf("RatingForUrgency(%q) = %d, want %d", tt.urgency, got, tt.want)
		}
	}
}

func TestAnalyzeDoorSuccess(t *testing.T) {
	image := []byte("fake jpeg bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Image != base64.StdEncoding.EncodeToString(image) {
			t.Error("image payload not base64 of the original bytes")
		}
		if req.MediaType != "image/jpeg" {
			t.Errorf("mediaType = %q", req.MediaType)
		}
		_ = json.NewEncoder(w).Encode(analyzeResponse{
			Analysis: &model.AIAnalysis{
				DoorType:         "medieval oak plank door",
				EstimatedAge:     "c. 1400",
				ConditionSummary: "Severe rot at the base rail",
				UrgencyLevel:     model.UrgencyCritical,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	analysis, err := client.AnalyzeDoor(context.Background(), image, "image/jpeg")
	if err != nil {
		t.Fatalf("AnalyzeDoor: %v", err)
	}
	if analysis.DoorType != "medieval oak plank door" {
		t.Errorf("DoorType = %q", analysis.DoorType)
	}
	if analysis.UrgencyLevel != model.UrgencyCritical {
		t.Errorf("UrgencyLevel = %q", analysis.UrgencyLevel)
	}
}

func TestAnalyzeDoorUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(analyzeResponse{Error: "model overloaded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.AnalyzeDoor(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}

func TestAnalyzeDoorUnparsablePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.AnalyzeDoor(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}

func TestAnalyzeDoorEmptyAnalysis(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(analyzeResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.AnalyzeDoor(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}

func TestAnalyzeDoorConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut the server down so the dial fails

	client := NewClient(server.URL, "")
	_, err := client.AnalyzeDoor(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}
