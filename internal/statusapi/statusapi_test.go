package statusapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transportkeys/internal/domain"
	"transportkeys/internal/observability"
	"transportkeys/internal/statusapi"
)

// fakeManager is a KeyManager holding fixed key sets.
type fakeManager struct {
	domain.KeyManager
	sets      []domain.KeySet
	rotated   int
	rotateErr error
}

func (f *fakeManager) KeySets() []domain.KeySet { return f.sets }

func (f *fakeManager) RotateAll() error {
	f.rotated++
	return f.rotateErr
}

func sampleSets() []domain.KeySet {
	keys := domain.TransportKeys{TransportID: "lan"}
	keys.CurrentOutgoing = domain.OutgoingKeys{TimePeriod: 7, Active: true}
	keys.CurrentOutgoing.TagKey[0] = 1
	static := domain.StaticTransportKeys{TransportKeys: keys}
	return []domain.KeySet{
		{ID: "a", ContactID: "bob", TransportID: "lan", Keys: &keys, OutgoingStreamCounter: 3},
		{ID: "b", ContactID: "carol", TransportID: "lan", Static: true, StaticKeys: &static},
	}
}

func TestClient_KeySets(t *testing.T) {
	km := &fakeManager{sets: sampleSets()}
	srv := httptest.NewServer(statusapi.NewHandler(km, observability.Nop(), nil))
	defer srv.Close()

	got, err := statusapi.NewClient(srv.URL+"/").KeySets(context.Background())
	if err != nil {
		t.Fatalf("KeySets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d key sets, want 2", len(got))
	}
	if got[0].Variant != "ephemeral" || got[1].Variant != "static" {
		t.Fatalf("variants: %q %q", got[0].Variant, got[1].Variant)
	}
	if got[0].TimePeriod != 7 || !got[0].Active || got[0].OutgoingStreamCounter != 3 {
		t.Fatalf("unexpected summary %+v", got[0])
	}
	if len(got[0].OutgoingTag) != 16 {
		t.Fatalf("fingerprint %q", got[0].OutgoingTag)
	}
}

func TestClient_Rotate(t *testing.T) {
	km := &fakeManager{sets: sampleSets()}
	srv := httptest.NewServer(statusapi.NewHandler(km, observability.Nop(), nil))
	defer srv.Close()
	c := statusapi.NewClient(srv.URL)

	if _, err := c.Rotate(context.Background()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if km.rotated != 1 {
		t.Fatalf("RotateAll called %d times", km.rotated)
	}

	km.rotateErr = errors.New("disk full")
	_, err := c.Rotate(context.Background())
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected 500 error, got %v", err)
	}
}

func TestHandler_MethodsAndMetrics(t *testing.T) {
	km := &fakeManager{}
	h := statusapi.NewHandler(km, observability.Nop(), observability.NewMetrics())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rotate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /rotate: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "transportkeys_") {
		t.Fatalf("GET /metrics: %d", rec.Code)
	}
}
