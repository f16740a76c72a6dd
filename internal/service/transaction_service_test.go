package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"connectrpc.com/connect"

	api "github.com/mmynk/familyfinance/pkg/api"
)

func createTransaction(t *testing.T, env *testEnv, req *api.CreateTransactionRequest) *api.Transaction {
	t.Helper()
	resp, err := env.transactions.CreateTransaction(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	return resp.Msg.Transaction
}

func expense(person, category, amount, date string) *api.CreateTransactionRequest {
	return &api.CreateTransactionRequest{
		Type:        "expense",
		Amount:      amount,
		Category:    category,
		Date:        date,
		Person:      person,
		Description: category + " de " + person,
	}
}

func TestCreateTransaction_And_GetTransaction(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	created := createTransaction(t, env, &api.CreateTransactionRequest{
		Type:        "income",
		Amount:      "1234.56",
		Category:    "Ingresos",
		Date:        "2024-03-01",
		Person:      "Tomas",
		Description: "  Sueldo  ",
	})

	if created.Id == "" {
		t.Error("expected an ID")
	}
	if created.CreatedBy != "Pilar" {
		t.Errorf("createdBy = %q, want the acting member Pilar", created.CreatedBy)
	}
	if created.Description != "Sueldo" {
		t.Errorf("description = %q, want trimmed", created.Description)
	}
	if created.AmountDisplay != "$1,234.56" {
		t.Errorf("amountDisplay = %q, want $1,234.56", created.AmountDisplay)
	}

	resp, err := env.transactions.GetTransaction(context.Background(), connect.NewRequest(&api.GetTransactionRequest{Id: created.Id}))
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	got := resp.Msg.Transaction
	if got.Amount != "1234.56" || got.Date != "2024-03-01" || got.Person != "Tomas" || got.Type != "income" {
		t.Errorf("unexpected transaction: %+v", got)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	valid := func() *api.CreateTransactionRequest {
		return expense("Pilar", "Comida", "25", "2024-03-01")
	}
	tests := []struct {
		name   string
		modify func(r *api.CreateTransactionRequest)
	}{
		{"unknown type", func(r *api.CreateTransactionRequest) { r.Type = "transfer" }},
		{"zero amount", func(r *api.CreateTransactionRequest) { r.Amount = "0" }},
		{"negative amount", func(r *api.CreateTransactionRequest) { r.Amount = "-5" }},
		{"amount not a number", func(r *api.CreateTransactionRequest) { r.Amount = "veinte" }},
		{"person too short", func(r *api.CreateTransactionRequest) { r.Person = "P" }},
		{"missing description", func(r *api.CreateTransactionRequest) { r.Description = "  " }},
		{"missing category", func(r *api.CreateTransactionRequest) { r.Category = "" }},
		{"missing date", func(r *api.CreateTransactionRequest) { r.Date = "" }},
		{"malformed date", func(r *api.CreateTransactionRequest) { r.Date = "01/03/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.modify(req)
			_, err := env.transactions.CreateTransaction(context.Background(), connect.NewRequest(req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	list, err := env.transactions.ListTransactions(context.Background(), connect.NewRequest(&api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list.Msg.Transactions) != 0 {
		t.Errorf("rejected transactions were stored: %d", len(list.Msg.Transactions))
	}
}

func TestUpdateTransaction(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	created := createTransaction(t, env, expense("Pilar", "Comida", "25", "2024-03-01"))

	t.Run("merge", func(t *testing.T) {
		amount := "30.50"
		resp, err := env.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			Id:     created.Id,
			Merge:  true,
			Amount: &amount,
		}))
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		got := resp.Msg.Transaction
		if got.Amount != "30.5" || got.Category != "Comida" || got.Person != "Pilar" {
			t.Errorf("unexpected merge result: %+v", got)
		}
	})

	t.Run("replace requires every field", func(t *testing.T) {
		category := "Salud"
		_, err := env.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			Id:       created.Id,
			Category: &category,
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("replace", func(t *testing.T) {
		typ, amount, category, date, person, desc := "income", "100", "Ingresos", "2024-03-05", "Tomas", "Venta"
		resp, err := env.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			Id:          created.Id,
			Type:        &typ,
			Amount:      &amount,
			Category:    &category,
			Date:        &date,
			Person:      &person,
			Description: &desc,
		}))
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		got := resp.Msg.Transaction
		if got.Type != "income" || got.Person != "Tomas" || got.Date != "2024-03-05" {
			t.Errorf("unexpected replace result: %+v", got)
		}
		if got.CreatedBy != "Pilar" {
			t.Errorf("createdBy changed to %q", got.CreatedBy)
		}
	})

	t.Run("merged result must stay valid", func(t *testing.T) {
		person := "X"
		_, err := env.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			Id:     created.Id,
			Merge:  true,
			Person: &person,
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("not found", func(t *testing.T) {
		amount := "1"
		_, err := env.transactions.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
			Id:     "non-existent-id",
			Merge:  true,
			Amount: &amount,
		}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestDeleteTransaction(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	created := createTransaction(t, env, expense("Pilar", "Comida", "25", "2024-03-01"))

	if _, err := env.transactions.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{Id: created.Id})); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}

	_, err := env.transactions.GetTransaction(ctx, connect.NewRequest(&api.GetTransactionRequest{Id: created.Id}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.transactions.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{Id: created.Id}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListTransactions(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	createTransaction(t, env, expense("Pilar", "Comida", "25", "2024-03-01"))
	createTransaction(t, env, expense("Tomas", "Transporte", "80", "2024-03-03"))
	createTransaction(t, env, expense("Pilar", "Salud", "40", "2024-03-02"))

	tests := []struct {
		name  string
		req   *api.ListTransactionsRequest
		dates []string
	}{
		{"default newest first", &api.ListTransactionsRequest{}, []string{"2024-03-03", "2024-03-02", "2024-03-01"}},
		{"oldest first", &api.ListTransactionsRequest{Order: "date_asc"}, []string{"2024-03-01", "2024-03-02", "2024-03-03"}},
		{"by amount", &api.ListTransactionsRequest{Order: "amount_desc"}, []string{"2024-03-03", "2024-03-02", "2024-03-01"}},
		{"by person ignoring case", &api.ListTransactionsRequest{Person: "pilar"}, []string{"2024-03-02", "2024-03-01"}},
		{"date window", &api.ListTransactionsRequest{From: "2024-03-02", To: "2024-03-02"}, []string{"2024-03-02"}},
		{"by category", &api.ListTransactionsRequest{Category: "transporte"}, []string{"2024-03-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.transactions.ListTransactions(ctx, connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("ListTransactions failed: %v", err)
			}
			var dates []string
			for _, txn := range resp.Msg.Transactions {
				dates = append(dates, txn.Date)
			}
			if !slices.Equal(dates, tt.dates) {
				t.Errorf("dates = %v, want %v", dates, tt.dates)
			}
		})
	}

	t.Run("unknown order", func(t *testing.T) {
		_, err := env.transactions.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{Order: "random"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestGetSummary(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	createTransaction(t, env, &api.CreateTransactionRequest{
		Type: "income", Amount: "1500", Category: "Ingresos", Date: "2024-03-01", Person: "Tomas", Description: "Sueldo",
	})
	createTransaction(t, env, expense("Pilar", "Comida", "200", "2024-03-02"))
	createTransaction(t, env, expense("Tomas", "Transporte", "50", "2024-03-02"))
	createTransaction(t, env, expense("Pilar", "Comida", "100.25", "2024-03-03"))

	resp, err := env.transactions.GetSummary(context.Background(), connect.NewRequest(&api.GetSummaryRequest{}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	s := resp.Msg

	if s.TotalIncome != "1500" || s.TotalExpense != "350.25" || s.Balance != "1149.75" {
		t.Errorf("totals = %s / %s / %s", s.TotalIncome, s.TotalExpense, s.Balance)
	}
	if s.Display["balance"] != "$1,149.75" {
		t.Errorf("balance display = %q", s.Display["balance"])
	}
	if s.Count != 4 {
		t.Errorf("count = %d, want 4", s.Count)
	}
	if len(s.SpendingByCategory) != 2 || s.SpendingByCategory[0].Category != "Comida" || s.SpendingByCategory[0].Amount != "300.25" {
		t.Errorf("spending by category = %+v", s.SpendingByCategory)
	}
	if len(s.ByPerson) != 2 || s.ByPerson[0].Person != "Pilar" || s.ByPerson[1].Income != "1500" {
		t.Errorf("by person = %+v", s.ByPerson)
	}

	filtered, err := env.transactions.GetSummary(context.Background(), connect.NewRequest(&api.GetSummaryRequest{Person: "Pilar"}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if filtered.Msg.TotalExpense != "300.25" || filtered.Msg.TotalIncome != "0" {
		t.Errorf("filtered totals = %s / %s", filtered.Msg.TotalIncome, filtered.Msg.TotalExpense)
	}
}

func TestListCategories(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	createTransaction(t, env, expense("Pilar", "Mascotas", "30", "2024-03-01"))
	createTransaction(t, env, expense("Pilar", "comida", "30", "2024-03-01"))

	resp, err := env.transactions.ListCategories(context.Background(), connect.NewRequest(&api.ListCategoriesRequest{}))
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	want := []string{"Ingresos", "Comida", "Transporte", "Vivienda", "Entretenimiento", "Salud", "Otros", "Mascotas"}
	if !slices.Equal(resp.Msg.Categories, want) {
		t.Errorf("categories = %v, want %v", resp.Msg.Categories, want)
	}
}

func TestWatchTransactions(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	createTransaction(t, env, expense("Pilar", "Comida", "25", "2024-03-01"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := env.transactions.WatchTransactions(ctx, connect.NewRequest(&api.WatchTransactionsRequest{Person: "Pilar"}))
	if err != nil {
		t.Fatalf("WatchTransactions failed: %v", err)
	}
	defer stream.Close()

	if !stream.Receive() {
		t.Fatalf("no snapshot: %v", stream.Err())
	}
	snapshot := stream.Msg()
	if snapshot.Kind != "snapshot" || len(snapshot.Transactions) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	// Not matching the filter; must not be delivered.
	createTransaction(t, env, expense("Tomas", "Transporte", "10", "2024-03-02"))
	created := createTransaction(t, env, expense("Pilar", "Salud", "40", "2024-03-02"))

	if !stream.Receive() {
		t.Fatalf("no change received: %v", stream.Err())
	}
	ev := stream.Msg()
	if ev.Kind != "created" || ev.Transaction == nil || ev.Transaction.Id != created.Id {
		t.Errorf("unexpected event: %+v", ev)
	}

	if _, err := env.transactions.DeleteTransaction(context.Background(), connect.NewRequest(&api.DeleteTransactionRequest{Id: created.Id})); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if !stream.Receive() {
		t.Fatalf("no delete received: %v", stream.Err())
	}
	if ev := stream.Msg(); ev.Kind != "deleted" || ev.Transaction.Id != created.Id {
		t.Errorf("unexpected event: %+v", ev)
	}
}
