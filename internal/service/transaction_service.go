package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/familyfinance/internal/calculator"
	"github.com/mmynk/familyfinance/internal/middleware"
	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
	api "github.com/mmynk/familyfinance/pkg/api"
)

var (
	errInvalidType         = errors.New("type must be income or expense")
	errInvalidAmount       = errors.New("amount must be greater than zero")
	errPersonTooShort      = errors.New("person must be at least 2 characters")
	errDescriptionRequired = errors.New("description is required")
	errCategoryRequired    = errors.New("category is required")
	errDateRequired        = errors.New("date is required")
	errInvalidOrder        = errors.New("unknown order")
	errWatchLagging        = errors.New("watcher fell behind; resubscribe")
)

// watchBuffer is how many changes a slow watcher may fall behind before its
// stream is closed.
const watchBuffer = 64

// TransactionService implements the TransactionService RPC interface.
type TransactionService struct {
	store   storage.Store
	display display
}

// NewTransactionService creates a transaction service. Amounts are displayed
// in currencyCode for locale.
func NewTransactionService(store storage.Store, currencyCode, locale string) *TransactionService {
	return &TransactionService{
		store:   store,
		display: display{currency: currencyCode, locale: locale},
	}
}

func validateTransaction(t *models.Transaction) error {
	if !t.Type.Valid() {
		return errInvalidType
	}
	if !t.Amount.IsPositive() {
		return errInvalidAmount
	}
	if len([]rune(strings.TrimSpace(t.Person))) < 2 {
		return errPersonTooShort
	}
	if strings.TrimSpace(t.Description) == "" {
		return errDescriptionRequired
	}
	if strings.TrimSpace(t.Category) == "" {
		return errCategoryRequired
	}
	if t.Date.IsZero() {
		return errDateRequired
	}
	return nil
}

// CreateTransaction records an income or expense for the acting member.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("CreateTransaction request", "type", req.Msg.Type, "person", req.Msg.Person)

	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, invalidArgument(err)
	}
	date, err := parseOptionalDate("date", req.Msg.Date)
	if err != nil {
		return nil, invalidArgument(err)
	}

	txn := &models.Transaction{
		Type:        models.TransactionType(req.Msg.Type),
		Amount:      amount,
		Category:    strings.TrimSpace(req.Msg.Category),
		Date:        date,
		Person:      strings.TrimSpace(req.Msg.Person),
		Description: strings.TrimSpace(req.Msg.Description),
		CreatedBy:   session.Member,
	}
	if err := validateTransaction(txn); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		slog.Error("Failed to create transaction", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Transaction created", "transaction_id", txn.ID, "type", txn.Type, "member", session.Member)
	return connect.NewResponse(&api.CreateTransactionResponse{
		Transaction: toAPITransaction(txn, s.display),
	}), nil
}

// patchFrom parses the set fields of req.
func patchFrom(req *api.UpdateTransactionRequest) (storage.TransactionPatch, error) {
	var patch storage.TransactionPatch
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		patch.Type = &t
	}
	if req.Amount != nil {
		amount, err := parseAmount("amount", *req.Amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if req.Date != nil {
		date, err := parseOptionalDate("date", *req.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	if req.Category != nil {
		c := strings.TrimSpace(*req.Category)
		patch.Category = &c
	}
	if req.Person != nil {
		p := strings.TrimSpace(*req.Person)
		patch.Person = &p
	}
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		patch.Description = &d
	}
	return patch, nil
}

// UpdateTransaction merges or replaces the fields of a transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("UpdateTransaction request", "transaction_id", req.Msg.Id, "merge", req.Msg.Merge)

	patch, err := patchFrom(req.Msg)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if !req.Msg.Merge && !patch.Complete() {
		return nil, invalidArgument(storage.ErrIncompletePatch)
	}

	// Validate the record as it would look after the update.
	current, err := s.store.GetTransaction(ctx, req.Msg.Id)
	if err != nil {
		return nil, toConnectError(err)
	}
	preview := *current
	patch.Apply(&preview)
	if err := validateTransaction(&preview); err != nil {
		return nil, invalidArgument(err)
	}

	updated, err := s.store.UpdateTransaction(ctx, req.Msg.Id, patch, req.Msg.Merge)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to update transaction", err, "transaction_id", req.Msg.Id)
		return nil, err
	}

	slog.Info("Transaction updated", "transaction_id", updated.ID, "member", session.Member)
	return connect.NewResponse(&api.UpdateTransactionResponse{
		Transaction: toAPITransaction(updated, s.display),
	}), nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	txn, err := s.store.GetTransaction(ctx, req.Msg.Id)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to get transaction", err, "transaction_id", req.Msg.Id)
		return nil, err
	}
	return connect.NewResponse(&api.GetTransactionResponse{
		Transaction: toAPITransaction(txn, s.display),
	}), nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteTransaction(ctx, req.Msg.Id); err != nil {
		err = toConnectError(err)
		logFailure("Failed to delete transaction", err, "transaction_id", req.Msg.Id)
		return nil, err
	}
	slog.Info("Transaction deleted", "transaction_id", req.Msg.Id, "member", session.Member)
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

func filterFrom(person, txnType, category, from, to string) (storage.TransactionFilter, error) {
	f := storage.TransactionFilter{
		Person:   strings.TrimSpace(person),
		Type:     models.TransactionType(txnType),
		Category: strings.TrimSpace(category),
	}
	if f.Type != "" && !f.Type.Valid() {
		return f, errInvalidType
	}
	var err error
	if f.From, err = parseOptionalDate("from", from); err != nil {
		return f, err
	}
	if f.To, err = parseOptionalDate("to", to); err != nil {
		return f, err
	}
	return f, nil
}

// ListTransactions returns transactions matching the request filter.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	m := req.Msg
	filter, err := filterFrom(m.Person, m.Type, m.Category, m.From, m.To)
	if err != nil {
		return nil, invalidArgument(err)
	}
	order := storage.TransactionOrder(m.Order)
	if !order.Valid() {
		return nil, invalidArgument(errInvalidOrder)
	}

	txns, err := s.store.ListTransactions(ctx, filter, order)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{
		Transactions: toAPITransactions(txns, s.display),
	}), nil
}

// GetSummary aggregates income and expenses for the dashboard.
func (s *TransactionService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	filter, err := filterFrom(req.Msg.Person, "", "", req.Msg.From, req.Msg.To)
	if err != nil {
		return nil, invalidArgument(err)
	}

	txns, err := s.store.ListTransactions(ctx, filter, storage.OrderDateDesc)
	if err != nil {
		slog.Error("Failed to list transactions for summary", "error", err)
		return nil, toConnectError(err)
	}
	values := make([]models.Transaction, len(txns))
	for i, t := range txns {
		values[i] = *t
	}
	summary := calculator.Summarize(values)

	categories := make([]*api.CategoryTotal, len(summary.SpendingByCategory))
	for i, c := range summary.SpendingByCategory {
		categories[i] = &api.CategoryTotal{
			Category:      c.Category,
			Amount:        c.Amount.String(),
			AmountDisplay: s.display.format(c.Amount),
		}
	}
	people := make([]*api.PersonTotal, len(summary.ByPerson))
	for i, p := range summary.ByPerson {
		people[i] = &api.PersonTotal{
			Person:  p.Person,
			Income:  p.Income.String(),
			Expense: p.Expense.String(),
		}
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		Currency:     s.display.currency,
		TotalIncome:  summary.TotalIncome.String(),
		TotalExpense: summary.TotalExpense.String(),
		Balance:      summary.Balance.String(),
		Display: map[string]string{
			"totalIncome":  s.display.format(summary.TotalIncome),
			"totalExpense": s.display.format(summary.TotalExpense),
			"balance":      s.display.format(summary.Balance),
		},
		Count:              int32(summary.Count),
		SpendingByCategory: categories,
		ByPerson:           people,
	}), nil
}

// WatchTransactions streams the current matching transactions followed by
// every change until the client goes away.
func (s *TransactionService) WatchTransactions(ctx context.Context, req *connect.Request[api.WatchTransactionsRequest], stream *connect.ServerStream[api.WatchTransactionsResponse]) error {
	filter, err := filterFrom(req.Msg.Person, req.Msg.Type, req.Msg.Category, "", "")
	if err != nil {
		return invalidArgument(err)
	}

	events := make(chan storage.TransactionEvent, watchBuffer)
	lagging := make(chan struct{})
	var once sync.Once
	// Subscribe before listing so no change between the two is missed.
	unsubscribe := s.store.SubscribeTransactions(filter, func(ev storage.TransactionEvent) {
		select {
		case events <- ev:
		default:
			once.Do(func() { close(lagging) })
		}
	})
	defer unsubscribe()

	txns, err := s.store.ListTransactions(ctx, filter, storage.OrderDateDesc)
	if err != nil {
		slog.Error("Failed to list transactions for watch", "error", err)
		return toConnectError(err)
	}
	if err := stream.Send(&api.WatchTransactionsResponse{
		Kind:         "snapshot",
		Transactions: toAPITransactions(txns, s.display),
	}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-lagging:
			slog.Warn("Transaction watcher fell behind", "member", middleware.GetMember(ctx))
			return connect.NewError(connect.CodeResourceExhausted, errWatchLagging)
		case ev := <-events:
			if err := stream.Send(&api.WatchTransactionsResponse{
				Kind:        string(ev.Kind),
				Transaction: toAPITransaction(&ev.Transaction, s.display),
			}); err != nil {
				return err
			}
		}
	}
}

// ListCategories returns the suggested categories followed by any other
// category already in use.
func (s *TransactionService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	txns, err := s.store.ListTransactions(ctx, storage.TransactionFilter{}, storage.OrderDateDesc)
	if err != nil {
		slog.Error("Failed to list transactions for categories", "error", err)
		return nil, toConnectError(err)
	}

	categories := slices.Clone(models.CategorySuggestions)
	var extra []string
	known := func(c string) bool {
		has := func(k string) bool { return strings.EqualFold(k, c) }
		return slices.ContainsFunc(categories, has) || slices.ContainsFunc(extra, has)
	}
	for _, t := range txns {
		if !known(t.Category) {
			extra = append(extra, t.Category)
		}
	}
	slices.Sort(extra)

	return connect.NewResponse(&api.ListCategoriesResponse{
		Categories: append(categories, extra...),
	}), nil
}
