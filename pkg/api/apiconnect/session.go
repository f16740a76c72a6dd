package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/familyfinance/pkg/api"
)

const SessionServiceName = "familyfinance.v1.SessionService"

const (
	SessionServiceListMembersProcedure  = "/familyfinance.v1.SessionService/ListMembers"
	SessionServiceSelectMemberProcedure = "/familyfinance.v1.SessionService/SelectMember"
)

// SessionServiceClient is a client for the familyfinance.v1.SessionService service.
type SessionServiceClient interface {
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SelectMember(context.Context, *connect.Request[api.SelectMemberRequest]) (*connect.Response[api.SelectMemberResponse], error)
}

// NewSessionServiceClient constructs a client for the familyfinance.v1.SessionService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &sessionServiceClient{
		listMembers:  connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+SessionServiceListMembersProcedure, opts...),
		selectMember: connect.NewClient[api.SelectMemberRequest, api.SelectMemberResponse](httpClient, baseURL+SessionServiceSelectMemberProcedure, opts...),
	}
}

type sessionServiceClient struct {
	listMembers  *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	selectMember *connect.Client[api.SelectMemberRequest, api.SelectMemberResponse]
}

func (c *sessionServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *sessionServiceClient) SelectMember(ctx context.Context, req *connect.Request[api.SelectMemberRequest]) (*connect.Response[api.SelectMemberResponse], error) {
	return c.selectMember.CallUnary(ctx, req)
}

// SessionServiceHandler is implemented by the session service.
type SessionServiceHandler interface {
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SelectMember(context.Context, *connect.Request[api.SelectMemberRequest]) (*connect.Response[api.SelectMemberResponse], error)
}

// NewSessionServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listMembers := connect.NewUnaryHandler(SessionServiceListMembersProcedure, svc.ListMembers, opts...)
	selectMember := connect.NewUnaryHandler(SessionServiceSelectMemberProcedure, svc.SelectMember, opts...)
	return "/" + SessionServiceName + "/", route(map[string]http.Handler{
		SessionServiceListMembersProcedure:  listMembers,
		SessionServiceSelectMemberProcedure: selectMember,
	})
}
