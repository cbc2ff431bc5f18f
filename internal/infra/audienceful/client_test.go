package audienceful

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"designer-quiz-service/internal/domain"
)

func TestSubscribeSendsTagsAndExtraData(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(server.URL, "secret", "designer-teszt")
	err := client.Subscribe(context.Background(), "user@example.com", sampleResult())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if captured["email"] != "user@example.com" {
		t.Fatalf("expected email in payload, got %v", captured["email"])
	}
	if captured["tags"] != "designer-teszt, vizionarius" {
		t.Fatalf("expected quiz tag plus primary type, got %v", captured["tags"])
	}
	extra, ok := captured["extra_data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected extra_data object, got %v", captured["extra_data"])
	}
	if extra["designer_type_primary"] != "vizionarius" || extra["designer_type_secondary"] != "stratega" {
		t.Fatalf("expected types in extra data, got %v", extra)
	}
	if scores, _ := extra["designer_scores"].(string); !strings.Contains(scores, "vizionarius") {
		t.Fatalf("expected serialized scores, got %v", extra["designer_scores"])
	}
	if extra["quiz_completed_at"] == "" {
		t.Fatalf("expected completion timestamp")
	}
}

func TestSubscribeMapsDuplicateError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "This email is already subscribed"})
	}))
	defer server.Close()

	client := New(server.URL, "secret", "designer-teszt")
	err := client.Subscribe(context.Background(), "user@example.com", sampleResult())
	if err != domain.ErrAlreadySubscribed {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
}

func TestSubscribePassesRemoteMessageThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid email domain"})
	}))
	defer server.Close()

	client := New(server.URL, "secret", "designer-teszt")
	err := client.Subscribe(context.Background(), "user@example.com", sampleResult())
	if err == nil || !strings.Contains(err.Error(), "invalid email domain") {
		t.Fatalf("expected remote message, got %v", err)
	}
}

func TestSubscribeGenericFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "secret", "designer-teszt")
	err := client.Subscribe(context.Background(), "user@example.com", sampleResult())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected generic failure, got %v", err)
	}
}

func TestSubscribeRequiresAPIKey(t *testing.T) {
	client := New("", "", "designer-teszt")
	if err := client.Subscribe(context.Background(), "user@example.com", sampleResult()); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func sampleResult() domain.Result {
	return domain.Result{
		Primary:       domain.CategoryVizionarius,
		PrimaryName:   domain.CategoryVizionarius.DisplayName(),
		PrimaryPct:    71,
		Secondary:     domain.CategoryStratega,
		SecondaryName: domain.CategoryStratega.DisplayName(),
		SecondaryPct:  29,
		Scores: map[domain.Category]domain.CategoryScore{
			domain.CategoryVizionarius: {Score: 5, Percentage: 71},
			domain.CategoryStratega:    {Score: 2, Percentage: 29},
		},
		Total: 7,
	}
}
