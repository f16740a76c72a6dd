package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/familyfinance/internal/advisor"
	"github.com/mmynk/familyfinance/internal/auth"
	"github.com/mmynk/familyfinance/internal/events"
	"github.com/mmynk/familyfinance/internal/middleware"
	"github.com/mmynk/familyfinance/internal/storage/sqlite"
	"github.com/mmynk/familyfinance/pkg/api/apiconnect"
)

// bearer is a client interceptor that attaches a session token.
type bearer string

func (b bearer) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		req.Header().Set("Authorization", "Bearer "+string(b))
		return next(ctx, req)
	}
}

func (b bearer) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		conn.RequestHeader().Set("Authorization", "Bearer "+string(b))
		return conn
	}
}

func (b bearer) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}

// testPublisher records published events.
type testPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *testPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *testPublisher) Close() error { return nil }

func (p *testPublisher) ofType(typ string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, ev := range p.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// fakeAdvisor is an OpenAI-compatible endpoint that answers with a fixed text.
type fakeAdvisor struct {
	mu       sync.Mutex
	messages []advisor.Message
	status   int
}

func (f *fakeAdvisor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Messages []advisor.Message `json:"messages"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.messages = body.Messages
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Gastas mucho en Comida."}}]}`))
}

func (f *fakeAdvisor) lastMessages() []advisor.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages
}

type testEnv struct {
	sessions     apiconnect.SessionServiceClient
	transactions apiconnect.TransactionServiceClient
	juntas       apiconnect.JuntaServiceClient
	advisor      apiconnect.AdvisorServiceClient

	// anonymous clients carry no session token.
	anonymous apiconnect.TransactionServiceClient

	jwt       *auth.JWTManager
	publisher *testPublisher
	registry  *prometheus.Registry
	llm       *fakeAdvisor
}

// setupTestServer starts every service against a temporary SQLite database.
// Authenticated clients act as Pilar.
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	env := &testEnv{
		jwt:       auth.NewJWTManager("test-secret", time.Hour),
		publisher: &testPublisher{},
		registry:  prometheus.NewRegistry(),
		llm:       &fakeAdvisor{},
	}
	llmServer := httptest.NewServer(env.llm)

	metrics := middleware.NewMetrics(env.registry)
	interceptors := connect.WithInterceptors(
		middleware.RequireSession(env.jwt,
			apiconnect.SessionServiceListMembersProcedure,
			apiconnect.SessionServiceSelectMemberProcedure,
		),
		metrics.Interceptor(),
	)

	directory := auth.NewDirectory([]string{"Pilar", "Tomas", "Matias"})
	sessionPath, sessionHandler := apiconnect.NewSessionServiceHandler(NewSessionService(directory, env.jwt), interceptors)
	txnPath, txnHandler := apiconnect.NewTransactionServiceHandler(NewTransactionService(store, "USD", "en-US"), interceptors)
	juntaPath, juntaHandler := apiconnect.NewJuntaServiceHandler(NewJuntaService(store, JuntaConfig{
		Collectors: []string{"Pilar", "Tomas"},
		Locale:     "en-US",
		Publisher:  env.publisher,
		Metrics:    metrics,
	}), interceptors)
	advisorPath, advisorHandler := apiconnect.NewAdvisorServiceHandler(
		NewAdvisorService(store, advisor.NewClient(llmServer.URL, "test-key", "test-model")), interceptors)

	mux := http.NewServeMux()
	mux.Handle(sessionPath, sessionHandler)
	mux.Handle(txnPath, txnHandler)
	mux.Handle(juntaPath, juntaHandler)
	mux.Handle(advisorPath, advisorHandler)

	server := httptest.NewServer(mux)

	token, _, err := env.jwt.Generate("Pilar")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	withToken := connect.WithInterceptors(bearer(token))

	env.sessions = apiconnect.NewSessionServiceClient(http.DefaultClient, server.URL)
	env.transactions = apiconnect.NewTransactionServiceClient(http.DefaultClient, server.URL, withToken)
	env.juntas = apiconnect.NewJuntaServiceClient(http.DefaultClient, server.URL, withToken)
	env.advisor = apiconnect.NewAdvisorServiceClient(http.DefaultClient, server.URL, withToken)
	env.anonymous = apiconnect.NewTransactionServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		llmServer.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return env, cleanup
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code = %v, want %v (%v)", got, want, err)
	}
}

// counterValue sums every series of the named counter.
func counterValue(t *testing.T, env *testEnv, name string) float64 {
	t.Helper()
	families, err := env.registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
