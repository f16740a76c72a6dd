package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/familyfinance/pkg/api"
)

const JuntaServiceName = "familyfinance.v1.JuntaService"

const (
	JuntaServiceCreateJuntaProcedure   = "/familyfinance.v1.JuntaService/CreateJunta"
	JuntaServiceGetJuntaProcedure      = "/familyfinance.v1.JuntaService/GetJunta"
	JuntaServiceListJuntasProcedure    = "/familyfinance.v1.JuntaService/ListJuntas"
	JuntaServiceDeleteJuntaProcedure   = "/familyfinance.v1.JuntaService/DeleteJunta"
	JuntaServiceAssignDatesProcedure   = "/familyfinance.v1.JuntaService/AssignDates"
	JuntaServiceRecordPaymentProcedure = "/familyfinance.v1.JuntaService/RecordPayment"
	JuntaServiceGetPaymentProcedure    = "/familyfinance.v1.JuntaService/GetPayment"
	JuntaServiceGetScheduleProcedure   = "/familyfinance.v1.JuntaService/GetSchedule"
	JuntaServiceGetSettlementProcedure = "/familyfinance.v1.JuntaService/GetSettlement"
	JuntaServiceExportReportProcedure  = "/familyfinance.v1.JuntaService/ExportReport"
	JuntaServiceOpenReportProcedure    = "/familyfinance.v1.JuntaService/OpenReport"
)

// JuntaServiceClient is a client for the familyfinance.v1.JuntaService service.
type JuntaServiceClient interface {
	CreateJunta(context.Context, *connect.Request[api.CreateJuntaRequest]) (*connect.Response[api.CreateJuntaResponse], error)
	GetJunta(context.Context, *connect.Request[api.GetJuntaRequest]) (*connect.Response[api.GetJuntaResponse], error)
	ListJuntas(context.Context, *connect.Request[api.ListJuntasRequest]) (*connect.Response[api.ListJuntasResponse], error)
	DeleteJunta(context.Context, *connect.Request[api.DeleteJuntaRequest]) (*connect.Response[api.DeleteJuntaResponse], error)
	AssignDates(context.Context, *connect.Request[api.AssignDatesRequest]) (*connect.Response[api.AssignDatesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error)
	GetSchedule(context.Context, *connect.Request[api.GetScheduleRequest]) (*connect.Response[api.GetScheduleResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ExportReport(context.Context, *connect.Request[api.ExportReportRequest]) (*connect.Response[api.ExportReportResponse], error)
	OpenReport(context.Context, *connect.Request[api.OpenReportRequest]) (*connect.Response[api.OpenReportResponse], error)
}

// NewJuntaServiceClient constructs a client for the familyfinance.v1.JuntaService service.
func NewJuntaServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) JuntaServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &juntaServiceClient{
		createJunta:   connect.NewClient[api.CreateJuntaRequest, api.CreateJuntaResponse](httpClient, baseURL+JuntaServiceCreateJuntaProcedure, opts...),
		getJunta:      connect.NewClient[api.GetJuntaRequest, api.GetJuntaResponse](httpClient, baseURL+JuntaServiceGetJuntaProcedure, opts...),
		listJuntas:    connect.NewClient[api.ListJuntasRequest, api.ListJuntasResponse](httpClient, baseURL+JuntaServiceListJuntasProcedure, opts...),
		deleteJunta:   connect.NewClient[api.DeleteJuntaRequest, api.DeleteJuntaResponse](httpClient, baseURL+JuntaServiceDeleteJuntaProcedure, opts...),
		assignDates:   connect.NewClient[api.AssignDatesRequest, api.AssignDatesResponse](httpClient, baseURL+JuntaServiceAssignDatesProcedure, opts...),
		recordPayment: connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+JuntaServiceRecordPaymentProcedure, opts...),
		getPayment:    connect.NewClient[api.GetPaymentRequest, api.GetPaymentResponse](httpClient, baseURL+JuntaServiceGetPaymentProcedure, opts...),
		getSchedule:   connect.NewClient[api.GetScheduleRequest, api.GetScheduleResponse](httpClient, baseURL+JuntaServiceGetScheduleProcedure, opts...),
		getSettlement: connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+JuntaServiceGetSettlementProcedure, opts...),
		exportReport:  connect.NewClient[api.ExportReportRequest, api.ExportReportResponse](httpClient, baseURL+JuntaServiceExportReportProcedure, opts...),
		openReport:    connect.NewClient[api.OpenReportRequest, api.OpenReportResponse](httpClient, baseURL+JuntaServiceOpenReportProcedure, opts...),
	}
}

type juntaServiceClient struct {
	createJunta   *connect.Client[api.CreateJuntaRequest, api.CreateJuntaResponse]
	getJunta      *connect.Client[api.GetJuntaRequest, api.GetJuntaResponse]
	listJuntas    *connect.Client[api.ListJuntasRequest, api.ListJuntasResponse]
	deleteJunta   *connect.Client[api.DeleteJuntaRequest, api.DeleteJuntaResponse]
	assignDates   *connect.Client[api.AssignDatesRequest, api.AssignDatesResponse]
	recordPayment *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	getPayment    *connect.Client[api.GetPaymentRequest, api.GetPaymentResponse]
	getSchedule   *connect.Client[api.GetScheduleRequest, api.GetScheduleResponse]
	getSettlement *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	exportReport  *connect.Client[api.ExportReportRequest, api.ExportReportResponse]
	openReport    *connect.Client[api.OpenReportRequest, api.OpenReportResponse]
}

func (c *juntaServiceClient) CreateJunta(ctx context.Context, req *connect.Request[api.CreateJuntaRequest]) (*connect.Response[api.CreateJuntaResponse], error) {
	return c.createJunta.CallUnary(ctx, req)
}

func (c *juntaServiceClient) GetJunta(ctx context.Context, req *connect.Request[api.GetJuntaRequest]) (*connect.Response[api.GetJuntaResponse], error) {
	return c.getJunta.CallUnary(ctx, req)
}

func (c *juntaServiceClient) ListJuntas(ctx context.Context, req *connect.Request[api.ListJuntasRequest]) (*connect.Response[api.ListJuntasResponse], error) {
	return c.listJuntas.CallUnary(ctx, req)
}

func (c *juntaServiceClient) DeleteJunta(ctx context.Context, req *connect.Request[api.DeleteJuntaRequest]) (*connect.Response[api.DeleteJuntaResponse], error) {
	return c.deleteJunta.CallUnary(ctx, req)
}

func (c *juntaServiceClient) AssignDates(ctx context.Context, req *connect.Request[api.AssignDatesRequest]) (*connect.Response[api.AssignDatesResponse], error) {
	return c.assignDates.CallUnary(ctx, req)
}

func (c *juntaServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *juntaServiceClient) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error) {
	return c.getPayment.CallUnary(ctx, req)
}

func (c *juntaServiceClient) GetSchedule(ctx context.Context, req *connect.Request[api.GetScheduleRequest]) (*connect.Response[api.GetScheduleResponse], error) {
	return c.getSchedule.CallUnary(ctx, req)
}

func (c *juntaServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *juntaServiceClient) ExportReport(ctx context.Context, req *connect.Request[api.ExportReportRequest]) (*connect.Response[api.ExportReportResponse], error) {
	return c.exportReport.CallUnary(ctx, req)
}

func (c *juntaServiceClient) OpenReport(ctx context.Context, req *connect.Request[api.OpenReportRequest]) (*connect.Response[api.OpenReportResponse], error) {
	return c.openReport.CallUnary(ctx, req)
}

// JuntaServiceHandler is implemented by the junta service.
type JuntaServiceHandler interface {
	CreateJunta(context.Context, *connect.Request[api.CreateJuntaRequest]) (*connect.Response[api.CreateJuntaResponse], error)
	GetJunta(context.Context, *connect.Request[api.GetJuntaRequest]) (*connect.Response[api.GetJuntaResponse], error)
	ListJuntas(context.Context, *connect.Request[api.ListJuntasRequest]) (*connect.Response[api.ListJuntasResponse], error)
	DeleteJunta(context.Context, *connect.Request[api.DeleteJuntaRequest]) (*connect.Response[api.DeleteJuntaResponse], error)
	AssignDates(context.Context, *connect.Request[api.AssignDatesRequest]) (*connect.Response[api.AssignDatesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error)
	GetSchedule(context.Context, *connect.Request[api.GetScheduleRequest]) (*connect.Response[api.GetScheduleResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ExportReport(context.Context, *connect.Request[api.ExportReportRequest]) (*connect.Response[api.ExportReportResponse], error)
	OpenReport(context.Context, *connect.Request[api.OpenReportRequest]) (*connect.Response[api.OpenReportResponse], error)
}

// NewJuntaServiceHandler builds an HTTP handler from the service implementation.
func NewJuntaServiceHandler(svc JuntaServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		JuntaServiceCreateJuntaProcedure:   connect.NewUnaryHandler(JuntaServiceCreateJuntaProcedure, svc.CreateJunta, opts...),
		JuntaServiceGetJuntaProcedure:      connect.NewUnaryHandler(JuntaServiceGetJuntaProcedure, svc.GetJunta, opts...),
		JuntaServiceListJuntasProcedure:    connect.NewUnaryHandler(JuntaServiceListJuntasProcedure, svc.ListJuntas, opts...),
		JuntaServiceDeleteJuntaProcedure:   connect.NewUnaryHandler(JuntaServiceDeleteJuntaProcedure, svc.DeleteJunta, opts...),
		JuntaServiceAssignDatesProcedure:   connect.NewUnaryHandler(JuntaServiceAssignDatesProcedure, svc.AssignDates, opts...),
		JuntaServiceRecordPaymentProcedure: connect.NewUnaryHandler(JuntaServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		JuntaServiceGetPaymentProcedure:    connect.NewUnaryHandler(JuntaServiceGetPaymentProcedure, svc.GetPayment, opts...),
		JuntaServiceGetScheduleProcedure:   connect.NewUnaryHandler(JuntaServiceGetScheduleProcedure, svc.GetSchedule, opts...),
		JuntaServiceGetSettlementProcedure: connect.NewUnaryHandler(JuntaServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		JuntaServiceExportReportProcedure:  connect.NewUnaryHandler(JuntaServiceExportReportProcedure, svc.ExportReport, opts...),
		JuntaServiceOpenReportProcedure:    connect.NewUnaryHandler(JuntaServiceOpenReportProcedure, svc.OpenReport, opts...),
	}
	return "/" + JuntaServiceName + "/", route(handlers)
}
