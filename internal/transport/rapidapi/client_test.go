package rapidapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hireloop/talentscout/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Host:    "provider.example.com",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchProfile_Success(t *testing.T) {
	var gotKey, gotHost, gotUsername string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		gotUsername = r.URL.Query().Get("username")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 12345,
			"urn": "urn:li:person:abc",
			"firstName": "Jane",
			"lastName": "Doe",
			"headline": "Senior Go Developer",
			"summary": "Ten years of backend work.",
			"position": [{"title": "Engineer", "companyName": "Acme"}],
			"fullPositions": [{"title": "Intern", "companyName": "Beta"}],
			"skills": [{"name": "Go"}, {"name": "Redis"}],
			"educations": [{"degree": "BSc", "fieldOfStudy": "CS", "schoolName": "MIT"}]
		}`))
	}))

	p, err := c.FetchProfile(context.Background(), "jdoe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("unexpected api key header: %q", gotKey)
	}
	if gotHost != "provider.example.com" {
		t.Errorf("unexpected host header: %q", gotHost)
	}
	if gotUsername != "jdoe" {
		t.Errorf("unexpected username param: %q", gotUsername)
	}

	if p.ID.String() != "12345" {
		t.Errorf("unexpected id: %s", p.ID)
	}
	if p.FirstName != "Jane" || p.LastName != "Doe" {
		t.Errorf("unexpected name: %s %s", p.FirstName, p.LastName)
	}
	if len(p.Position) != 1 || p.Position[0].CompanyName != "Acme" {
		t.Errorf("unexpected position: %+v", p.Position)
	}
	if len(p.FullPositions) != 1 || p.FullPositions[0].Title != "Intern" {
		t.Errorf("unexpected fullPositions: %+v", p.FullPositions)
	}
	if len(p.Skills) != 2 || p.Skills[1].Name != "Redis" {
		t.Errorf("unexpected skills: %+v", p.Skills)
	}
	if len(p.Educations) != 1 || p.Educations[0].SchoolName != "MIT" {
		t.Errorf("unexpected educations: %+v", p.Educations)
	}
}

func TestFetchProfile_SparsePayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"firstName": "Solo"}`))
	}))

	p, err := c.FetchProfile(context.Background(), "solo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FirstName != "Solo" {
		t.Errorf("unexpected firstName: %q", p.FirstName)
	}
	if p.Headline != "" || len(p.Skills) != 0 || len(p.Position) != 0 {
		t.Errorf("expected zero values for absent keys: %+v", p)
	}
}

func TestFetchProfile_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := c.FetchProfile(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrProfileUnavailable) {
		t.Errorf("expected ErrProfileUnavailable, got %v", err)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.Code != http.StatusNotFound || se.Username != "ghost" {
		t.Errorf("unexpected status error: %+v", se)
	}
}

func TestFetchProfile_RateLimited(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))

	_, err := c.FetchProfile(context.Background(), "jdoe")
	if !errors.Is(err, domain.ErrProfileUnavailable) {
		t.Errorf("expected ErrProfileUnavailable, got %v", err)
	}
}

func TestFetchProfile_BadJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	_, err := c.FetchProfile(context.Background(), "jdoe")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrProfileUnavailable) {
		t.Error("decode failures should not map to ErrProfileUnavailable")
	}
}

func TestFetchProfile_EmptyUsername(t *testing.T) {
	c := &Client{} // no request is made
	if _, err := c.FetchProfile(context.Background(), ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "k"}); err == nil {
		t.Error("expected error for missing base url")
	}
	if _, err := NewClient(Config{BaseURL: "https://x"}); err == nil {
		t.Error("expected error for missing api key")
	}
}
