package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/familyfinance/pkg/api"
)

const AdvisorServiceName = "familyfinance.v1.AdvisorService"

const AdvisorServiceAskProcedure = "/familyfinance.v1.AdvisorService/Ask"

// AdvisorServiceClient is a client for the familyfinance.v1.AdvisorService service.
type AdvisorServiceClient interface {
	Ask(context.Context, *connect.Request[api.AskRequest]) (*connect.Response[api.AskResponse], error)
}

// NewAdvisorServiceClient constructs a client for the familyfinance.v1.AdvisorService service.
func NewAdvisorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdvisorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &advisorServiceClient{
		ask: connect.NewClient[api.AskRequest, api.AskResponse](httpClient, baseURL+AdvisorServiceAskProcedure, clientOptions(opts)...),
	}
}

type advisorServiceClient struct {
	ask *connect.Client[api.AskRequest, api.AskResponse]
}

func (c *advisorServiceClient) Ask(ctx context.Context, req *connect.Request[api.AskRequest]) (*connect.Response[api.AskResponse], error) {
	return c.ask.CallUnary(ctx, req)
}

// AdvisorServiceHandler is implemented by the advisor service.
type AdvisorServiceHandler interface {
	Ask(context.Context, *connect.Request[api.AskRequest]) (*connect.Response[api.AskResponse], error)
}

// NewAdvisorServiceHandler builds an HTTP handler from the service implementation.
func NewAdvisorServiceHandler(svc AdvisorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	ask := connect.NewUnaryHandler(AdvisorServiceAskProcedure, svc.Ask, handlerOptions(opts)...)
	return "/" + AdvisorServiceName + "/", route(map[string]http.Handler{
		AdvisorServiceAskProcedure: ask,
	})
}
