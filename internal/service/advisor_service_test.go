package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/familyfinance/internal/advisor"
	"github.com/mmynk/familyfinance/internal/middleware"
	"github.com/mmynk/familyfinance/internal/models"
	api "github.com/mmynk/familyfinance/pkg/api"
)

func TestAsk(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	createTransaction(t, env, expense("Pilar", "Comida", "120", "2024-03-01"))

	resp, err := env.advisor.Ask(context.Background(), connect.NewRequest(&api.AskRequest{
		Question: "¿En qué gasto más?",
		History: []*api.ChatMessage{
			{Role: "user", Content: "Hola"},
			{Role: "assistant", Content: "¡Hola! Soy FinPal."},
		},
	}))
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if resp.Msg.Answer != "Gastas mucho en Comida." {
		t.Errorf("answer = %q", resp.Msg.Answer)
	}

	msgs := env.llm.lastMessages()
	if len(msgs) != 4 {
		t.Fatalf("sent %d messages, want system + 2 history + question", len(msgs))
	}
	if msgs[0].Role != advisor.RoleSystem || !strings.Contains(msgs[0].Content, `"category": "Comida"`) {
		t.Errorf("system prompt does not carry the transactions: %q", msgs[0].Content)
	}
	if msgs[3].Content != "¿En qué gasto más?" {
		t.Errorf("last message = %+v", msgs[3])
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := env.advisor.Ask(context.Background(), connect.NewRequest(&api.AskRequest{Question: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestAsk_UpstreamFailure(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	env.llm.mu.Lock()
	env.llm.status = http.StatusInternalServerError
	env.llm.mu.Unlock()

	_, err := env.advisor.Ask(context.Background(), connect.NewRequest(&api.AskRequest{Question: "hola"}))
	assertCode(t, err, connect.CodeUnavailable)
}

func TestAsk_NotConfigured(t *testing.T) {
	svc := NewAdvisorService(nil, advisor.NewClient("http://unused", "", "m"))
	ctx := middleware.WithSession(context.Background(), models.Session{Member: "Pilar"})

	_, err := svc.Ask(ctx, connect.NewRequest(&api.AskRequest{Question: "hola"}))
	assertCode(t, err, connect.CodeUnavailable)
}
