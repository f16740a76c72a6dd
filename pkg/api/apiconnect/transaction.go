package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/familyfinance/pkg/api"
)

const TransactionServiceName = "familyfinance.v1.TransactionService"

const (
	TransactionServiceCreateTransactionProcedure = "/familyfinance.v1.TransactionService/CreateTransaction"
	TransactionServiceUpdateTransactionProcedure = "/familyfinance.v1.TransactionService/UpdateTransaction"
	TransactionServiceGetTransactionProcedure    = "/familyfinance.v1.TransactionService/GetTransaction"
	TransactionServiceDeleteTransactionProcedure = "/familyfinance.v1.TransactionService/DeleteTransaction"
	TransactionServiceListTransactionsProcedure  = "/familyfinance.v1.TransactionService/ListTransactions"
	TransactionServiceGetSummaryProcedure        = "/familyfinance.v1.TransactionService/GetSummary"
	TransactionServiceWatchTransactionsProcedure = "/familyfinance.v1.TransactionService/WatchTransactions"
	TransactionServiceListCategoriesProcedure    = "/familyfinance.v1.TransactionService/ListCategories"
)

// TransactionServiceClient is a client for the familyfinance.v1.TransactionService service.
type TransactionServiceClient interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	WatchTransactions(context.Context, *connect.Request[api.WatchTransactionsRequest]) (*connect.ServerStreamForClient[api.WatchTransactionsResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewTransactionServiceClient constructs a client for the
// familyfinance.v1.TransactionService service.
func NewTransactionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransactionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &transactionServiceClient{
		createTransaction: connect.NewClient[api.CreateTransactionRequest, api.CreateTransactionResponse](httpClient, baseURL+TransactionServiceCreateTransactionProcedure, opts...),
		updateTransaction: connect.NewClient[api.UpdateTransactionRequest, api.UpdateTransactionResponse](httpClient, baseURL+TransactionServiceUpdateTransactionProcedure, opts...),
		getTransaction:    connect.NewClient[api.GetTransactionRequest, api.GetTransactionResponse](httpClient, baseURL+TransactionServiceGetTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](httpClient, baseURL+TransactionServiceDeleteTransactionProcedure, opts...),
		listTransactions:  connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL+TransactionServiceListTransactionsProcedure, opts...),
		getSummary:        connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+TransactionServiceGetSummaryProcedure, opts...),
		watchTransactions: connect.NewClient[api.WatchTransactionsRequest, api.WatchTransactionsResponse](httpClient, baseURL+TransactionServiceWatchTransactionsProcedure, opts...),
		listCategories:    connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+TransactionServiceListCategoriesProcedure, opts...),
	}
}

type transactionServiceClient struct {
	createTransaction *connect.Client[api.CreateTransactionRequest, api.CreateTransactionResponse]
	updateTransaction *connect.Client[api.UpdateTransactionRequest, api.UpdateTransactionResponse]
	getTransaction    *connect.Client[api.GetTransactionRequest, api.GetTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	getSummary        *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	watchTransactions *connect.Client[api.WatchTransactionsRequest, api.WatchTransactionsResponse]
	listCategories    *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
}

func (c *transactionServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *transactionServiceClient) WatchTransactions(ctx context.Context, req *connect.Request[api.WatchTransactionsRequest]) (*connect.ServerStreamForClient[api.WatchTransactionsResponse], error) {
	return c.watchTransactions.CallServerStream(ctx, req)
}

func (c *transactionServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

// TransactionServiceHandler is implemented by the transaction service.
type TransactionServiceHandler interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	WatchTransactions(context.Context, *connect.Request[api.WatchTransactionsRequest], *connect.ServerStream[api.WatchTransactionsResponse]) error
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewTransactionServiceHandler builds an HTTP handler from the service implementation.
func NewTransactionServiceHandler(svc TransactionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		TransactionServiceCreateTransactionProcedure: connect.NewUnaryHandler(TransactionServiceCreateTransactionProcedure, svc.CreateTransaction, opts...),
		TransactionServiceUpdateTransactionProcedure: connect.NewUnaryHandler(TransactionServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...),
		TransactionServiceGetTransactionProcedure:    connect.NewUnaryHandler(TransactionServiceGetTransactionProcedure, svc.GetTransaction, opts...),
		TransactionServiceDeleteTransactionProcedure: connect.NewUnaryHandler(TransactionServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...),
		TransactionServiceListTransactionsProcedure:  connect.NewUnaryHandler(TransactionServiceListTransactionsProcedure, svc.ListTransactions, opts...),
		TransactionServiceGetSummaryProcedure:        connect.NewUnaryHandler(TransactionServiceGetSummaryProcedure, svc.GetSummary, opts...),
		TransactionServiceWatchTransactionsProcedure: connect.NewServerStreamHandler(TransactionServiceWatchTransactionsProcedure, svc.WatchTransactions, opts...),
		TransactionServiceListCategoriesProcedure:    connect.NewUnaryHandler(TransactionServiceListCategoriesProcedure, svc.ListCategories, opts...),
	}
	return "/" + TransactionServiceName + "/", route(handlers)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
