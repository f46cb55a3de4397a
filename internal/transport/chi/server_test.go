package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/assistant"
)

type mockAssistant struct {
	askResp     assistant.Response
	askErr      error
	articleResp assistant.Response
	articleErr  error
	lastTopic   assistant.Topic
}

func (m *mockAssistant) Ask(_ context.Context, _ string) (assistant.Response, error) {
	return m.askResp, m.askErr
}

func (m *mockAssistant) ComposeArticle(_ context.Context, topic assistant.Topic) (assistant.Response, error) {
	m.lastTopic = topic
	return m.articleResp, m.articleErr
}

func newTestRouter(svc assistantService) *chi.Mux {
	r := chi.NewRouter()
	NewServer(svc, zap.NewNop()).Routes(r)
	return r
}

func TestHandleAsk(t *testing.T) {
	svc := &mockAssistant{askResp: assistant.Response{
		Answer:     "She builds Go services.",
		Confidence: domain.ConfidenceHigh,
		Evidence:   []string{"skills"},
		Matches:    []domain.RetrievedChunk{{ID: "a", Path: "skills", Text: "Go", Score: 0.9}},
	}}
	r := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(`{"question":"what does she do?"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp assistant.Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "She builds Go services." || resp.Confidence != domain.ConfidenceHigh {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Matches) != 1 {
		t.Errorf("matches = %v", resp.Matches)
	}
}

func TestHandleAsk_InvalidInput400(t *testing.T) {
	svc := &mockAssistant{askErr: domain.ErrInvalidInput}
	r := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(`{"question":""}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != "invalid_input" {
		t.Errorf("code = %s", errResp.Code)
	}
}

func TestHandleAsk_MalformedBody400(t *testing.T) {
	r := newTestRouter(&mockAssistant{})

	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleAsk_SeedingFailure500(t *testing.T) {
	svc := &mockAssistant{askErr: domain.ErrSeedingFailed}
	r := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(`{"question":"q"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}

	var errResp errorResponse
	_ = json.NewDecoder(rr.Body).Decode(&errResp)
	if errResp.Message != "internal error" {
		t.Errorf("internal details must not leak: %q", errResp.Message)
	}
}

func TestHandleArticle(t *testing.T) {
	svc := &mockAssistant{articleResp: assistant.Response{
		Answer:     "## Article",
		Confidence: domain.ConfidenceMedium,
		Evidence:   []string{"summary"},
	}}
	r := newTestRouter(svc)

	body := `{"name":"Ada","role":"engineer","focus":"APIs","audience":"recruiters"}`
	req := httptest.NewRequest("POST", "/api/article", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	want := assistant.Topic{Name: "Ada", Role: "engineer", Focus: "APIs", Audience: "recruiters"}
	if svc.lastTopic != want {
		t.Errorf("topic = %+v, want %+v", svc.lastTopic, want)
	}
}

func TestHandleHealth(t *testing.T) {
	r := newTestRouter(&mockAssistant{})

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q", resp["status"])
	}
}

func TestHandleMetrics(t *testing.T) {
	r := newTestRouter(&mockAssistant{})

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d", rr.Code)
	}
}
