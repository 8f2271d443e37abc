package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/model"
)

func testPersona() config.PersonaConfig {
	return config.Default().Persona
}

func TestCompose_ScenarioReturnsReplyUnmodified(t *testing.T) {
	provider := &mockProvider{response: "Dear Hiring Manager, ..."}
	job := model.JobPosting{Role: "Software Engineer"}

	got, err := NewComposer(provider, nil, testPersona()).Compose(context.Background(), job, []string{"https://example.com/portfolio/a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Dear Hiring Manager, ..." {
		t.Errorf("got %q, want reply unmodified", got)
	}
}

func TestCompose_PromptEmbedsJobLinksAndPersona(t *testing.T) {
	provider := &mockProvider{response: "email"}
	job := model.JobPosting{Role: "ML Engineer", Skills: []string{"PyTorch"}}
	links := []string{"https://example.com/a", "https://example.com/b"}

	if _, err := NewComposer(provider, nil, testPersona()).Compose(context.Background(), job, links); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`"role": "ML Engineer"`,
		`"PyTorch"`,
		"- https://example.com/a\n- https://example.com/b",
		"You are Mohan, a business development executive at AtliQ.",
		"### EMAIL (NO PREAMBLE):",
	} {
		if !strings.Contains(provider.prompt, want) {
			t.Errorf("prompt missing %q\n---\n%s", want, provider.prompt)
		}
	}
}

func TestCompose_NoLinks(t *testing.T) {
	provider := &mockProvider{response: "email"}

	if _, err := NewComposer(provider, nil, testPersona()).Compose(context.Background(), model.JobPosting{Role: "QA"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.prompt, "(no portfolio links available)") {
		t.Error("prompt should note that no links were supplied")
	}
}

func TestCompose_ProviderErrorPropagatesUnchanged(t *testing.T) {
	tErr := &model.TransportError{Err: errors.New("connection reset")}
	provider := &mockProvider{err: tErr}

	_, err := NewComposer(provider, nil, testPersona()).Compose(context.Background(), model.JobPosting{}, nil)
	if err != tErr {
		t.Fatalf("err = %v, want the provider's error unchanged", err)
	}
}

// A deterministic server plus the real client: identical inputs produce
// identical requests and identical output, and temperature 0 is on the wire.
func TestCompose_DeterministicOverClient(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Temperature != 0 {
			t.Errorf("temperature = %v, want 0", req.Temperature)
		}
		bodies = append(bodies, req.Messages[0].Content)
		json.NewEncoder(w).Encode(replyWith("Dear team, " + req.Model))
	}))
	defer srv.Close()

	composer := NewComposer(newTestClient(t, srv), nil, testPersona())
	job := model.JobPosting{Role: "Software Engineer"}
	links := []string{"https://example.com/portfolio/a"}

	first, err := composer.Compose(context.Background(), job, links)
	if err != nil {
		t.Fatalf("first Compose: %v", err)
	}
	second, err := composer.Compose(context.Background(), job, links)
	if err != nil {
		t.Fatalf("second Compose: %v", err)
	}
	if first != second {
		t.Errorf("outputs differ: %q vs %q", first, second)
	}
	if len(bodies) != 2 || bodies[0] != bodies[1] {
		t.Error("prompts differ between identical calls")
	}
}
