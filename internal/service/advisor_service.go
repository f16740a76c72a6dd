package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/familyfinance/internal/advisor"
	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
	api "github.com/mmynk/familyfinance/pkg/api"
)

var errEmptyQuestion = errors.New("question is required")

// AdvisorService answers finance questions using the household's transactions.
type AdvisorService struct {
	store  storage.Store
	client *advisor.Client
}

// NewAdvisorService creates an advisor service. A client without an API key
// makes every call fail with Unavailable.
func NewAdvisorService(store storage.Store, client *advisor.Client) *AdvisorService {
	return &AdvisorService{store: store, client: client}
}

// Ask sends the question, the earlier turns and all transactions to the model.
func (s *AdvisorService) Ask(ctx context.Context, req *connect.Request[api.AskRequest]) (*connect.Response[api.AskResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	question := strings.TrimSpace(req.Msg.Question)
	if question == "" {
		return nil, invalidArgument(errEmptyQuestion)
	}
	if !s.client.Configured() {
		return nil, connect.NewError(connect.CodeUnavailable, advisor.ErrNotConfigured)
	}

	txns, err := s.store.ListTransactions(ctx, storage.TransactionFilter{}, storage.OrderDateDesc)
	if err != nil {
		slog.Error("Failed to list transactions for advisor", "error", err)
		return nil, toConnectError(err)
	}
	values := make([]models.Transaction, len(txns))
	for i, t := range txns {
		values[i] = *t
	}
	system, err := advisor.SystemPrompt(values)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	history := make([]advisor.Message, 0, len(req.Msg.History))
	for _, m := range req.Msg.History {
		if m != nil {
			history = append(history, advisor.Message{Role: m.Role, Content: m.Content})
		}
	}

	answer, err := s.client.Chat(ctx, advisor.Conversation(system, history, question))
	if err != nil {
		slog.Error("Advisor call failed", "member", session.Member, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	slog.Info("Advisor answered", "member", session.Member, "transactions", len(values))
	return connect.NewResponse(&api.AskResponse{Answer: answer}), nil
}
