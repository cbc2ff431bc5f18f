package share

import (
	"net/url"
	"strings"
	"testing"

	"designer-quiz-service/internal/domain"
)

func TestResultURL(t *testing.T) {
	result := domain.Result{
		Primary:      domain.CategoryVizionarius,
		PrimaryPct:   71,
		Secondary:    domain.CategoryStratega,
		SecondaryPct: 29,
	}

	raw := ResultURL("https://teszt.example.com", result, "abc12345")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if parsed.Path != "/eredmeny/vizionarius" {
		t.Fatalf("expected primary type in path, got %s", parsed.Path)
	}
	q := parsed.Query()
	if q.Get("alt") != "stratega" || q.Get("pp") != "71" || q.Get("sp") != "29" || q.Get("s") != "abc12345" {
		t.Fatalf("unexpected query params: %v", q)
	}
}

func TestResultURLWithoutShareID(t *testing.T) {
	raw := ResultURL("https://teszt.example.com", domain.Result{Primary: domain.CategoryHid, Secondary: domain.CategoryKameleon}, "")
	if strings.Contains(raw, "s=") && strings.Contains(raw, "&s=") {
		t.Fatalf("expected no share id param, got %s", raw)
	}
}

func TestShareLinksEncodeURL(t *testing.T) {
	links := ShareLinks("https://teszt.example.com/eredmeny/hid?alt=stratega", "My designer type")
	if !strings.HasPrefix(links.Facebook, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2F") {
		t.Fatalf("unexpected facebook link: %s", links.Facebook)
	}
	if !strings.Contains(links.Twitter, "text=My+designer+type") {
		t.Fatalf("expected encoded title in twitter link: %s", links.Twitter)
	}
	if !strings.Contains(links.LinkedIn, "share-offsite") {
		t.Fatalf("unexpected linkedin link: %s", links.LinkedIn)
	}
}

func TestNewShareIDLength(t *testing.T) {
	id := NewShareID()
	if len(id) != 8 {
		t.Fatalf("expected 8-char share id, got %q", id)
	}
}
