package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/familyfinance/internal/calculator"
	"github.com/mmynk/familyfinance/internal/events"
	"github.com/mmynk/familyfinance/internal/junta"
	"github.com/mmynk/familyfinance/internal/middleware"
	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
	api "github.com/mmynk/familyfinance/pkg/api"
)

// JuntaConfig holds the optional collaborators of a JuntaService.
type JuntaConfig struct {
	// Collectors are the members allowed to receive mobile transfers.
	// Empty accepts any recipient.
	Collectors []string

	// Locale is used to format amounts for display.
	Locale string

	Publisher events.Publisher
	Metrics   *middleware.Metrics
}

// JuntaService implements the JuntaService RPC interface.
type JuntaService struct {
	store      storage.Store
	collectors []string
	locale     string
	publisher  events.Publisher
	metrics    *middleware.Metrics
	now        func() time.Time
}

// NewJuntaService creates a new junta service.
func NewJuntaService(store storage.Store, cfg JuntaConfig) *JuntaService {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NewLogPublisher(nil)
	}
	return &JuntaService{
		store:      store,
		collectors: cfg.Collectors,
		locale:     cfg.Locale,
		publisher:  publisher,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
}

func (s *JuntaService) displayFor(j *models.Junta) display {
	return display{currency: j.Currency, locale: s.locale}
}

// publish sends ev without failing the caller; the change is already committed.
func (s *JuntaService) publish(ctx context.Context, ev events.Event) {
	ev.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("Failed to publish event", "type", ev.Type, "junta_id", ev.JuntaID, "error", err)
	}
}

// CreateJunta validates the configuration and stores an unassigned junta.
func (s *JuntaService) CreateJunta(ctx context.Context, req *connect.Request[api.CreateJuntaRequest]) (*connect.Response[api.CreateJuntaResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("CreateJunta request", "from", req.Msg.From, "to", req.Msg.To, "participant_count", len(req.Msg.Participants))

	from, err := parseDate("from", req.Msg.From)
	if err != nil {
		return nil, invalidArgument(err)
	}
	to, err := parseDate("to", req.Msg.To)
	if err != nil {
		return nil, invalidArgument(err)
	}
	contribution, err := parseAmount("dailyContribution", req.Msg.DailyContribution)
	if err != nil {
		return nil, invalidArgument(err)
	}

	j, err := junta.New(junta.Config{
		Name:              req.Msg.Name,
		DateRange:         models.DateRange{From: from, To: to},
		DailyContribution: contribution,
		Currency:          req.Msg.Currency,
		Participants:      req.Msg.Participants,
	}, session)
	if err != nil {
		slog.Warn("Invalid junta configuration", "error", err, "member", session.Member)
		return nil, toConnectError(err)
	}

	if err := s.store.CreateJunta(ctx, j); err != nil {
		slog.Error("Failed to create junta", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Junta created", "junta_id", j.ID, "name", j.Name, "days", j.DateRange.DayCount(), "member", session.Member)
	return connect.NewResponse(&api.CreateJuntaResponse{Junta: toAPIJunta(j)}), nil
}

// GetJunta retrieves a junta with its roster.
func (s *JuntaService) GetJunta(ctx context.Context, req *connect.Request[api.GetJuntaRequest]) (*connect.Response[api.GetJuntaResponse], error) {
	j, err := s.store.GetJunta(ctx, req.Msg.Id)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to get junta", err, "junta_id", req.Msg.Id)
		return nil, err
	}
	return connect.NewResponse(&api.GetJuntaResponse{Junta: toAPIJunta(j)}), nil
}

// ListJuntas returns every junta, newest first.
func (s *JuntaService) ListJuntas(ctx context.Context, req *connect.Request[api.ListJuntasRequest]) (*connect.Response[api.ListJuntasResponse], error) {
	juntas, err := s.store.ListJuntas(ctx)
	if err != nil {
		slog.Error("Failed to list juntas", "error", err)
		return nil, toConnectError(err)
	}
	out := make([]*api.Junta, len(juntas))
	for i, j := range juntas {
		out[i] = toAPIJunta(j)
	}
	return connect.NewResponse(&api.ListJuntasResponse{Juntas: out}), nil
}

// DeleteJunta removes a junta and its payments.
func (s *JuntaService) DeleteJunta(ctx context.Context, req *connect.Request[api.DeleteJuntaRequest]) (*connect.Response[api.DeleteJuntaResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteJunta(ctx, req.Msg.Id); err != nil {
		err = toConnectError(err)
		logFailure("Failed to delete junta", err, "junta_id", req.Msg.Id)
		return nil, err
	}
	slog.Info("Junta deleted", "junta_id", req.Msg.Id, "member", session.Member)
	return connect.NewResponse(&api.DeleteJuntaResponse{}), nil
}

// AssignDates gives every participant their contribution day. A junta is
// assigned once; later calls fail with FailedPrecondition.
func (s *JuntaService) AssignDates(ctx context.Context, req *connect.Request[api.AssignDatesRequest]) (*connect.Response[api.AssignDatesResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	j, err := s.store.GetJunta(ctx, req.Msg.JuntaId)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to get junta", err, "junta_id", req.Msg.JuntaId)
		return nil, err
	}

	strategy := models.Strategy(strings.ToLower(strings.TrimSpace(req.Msg.Strategy)))
	assigned, err := junta.AssignDates(j, strategy, nil)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to assign dates", err, "junta_id", j.ID, "strategy", strategy)
		return nil, err
	}
	assigned.AssignedAt = s.now().Unix()

	if err := s.store.SaveAssignment(ctx, assigned); err != nil {
		// A concurrent assignment won the race.
		if errors.Is(err, storage.ErrConflict) {
			err = junta.ErrAlreadyAssigned
		}
		err = toConnectError(err)
		logFailure("Failed to save assignment", err, "junta_id", j.ID)
		return nil, err
	}

	slog.Info("Junta dates assigned", "junta_id", j.ID, "strategy", strategy, "member", session.Member)
	s.publish(ctx, events.Event{
		Type:      events.DatesAssigned,
		JuntaID:   j.ID,
		JuntaName: j.Name,
		Member:    session.Member,
	})
	return connect.NewResponse(&api.AssignDatesResponse{Junta: toAPIJunta(assigned)}), nil
}

// RecordPayment stores the payment for one day. Without an expected revision
// the last write wins; with one, a write against a changed day is Aborted.
func (s *JuntaService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	session, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("RecordPayment request", "junta_id", req.Msg.JuntaId, "day", req.Msg.Day, "method", req.Msg.Method)

	day, err := parseDate("day", req.Msg.Day)
	if err != nil {
		return nil, invalidArgument(err)
	}
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, invalidArgument(err)
	}
	in := junta.PaymentInput{
		Amount:     amount,
		Method:     models.PaymentMethod(req.Msg.Method),
		Recipient:  req.Msg.Recipient,
		RecordedBy: session.Member,
	}

	j, err := s.store.GetJunta(ctx, req.Msg.JuntaId)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to get junta", err, "junta_id", req.Msg.JuntaId)
		return nil, err
	}
	if err := junta.CheckPayment(j, day, in, s.collectors); err != nil {
		err = toConnectError(err)
		logFailure("Payment rejected", err, "junta_id", j.ID, "day", day)
		return nil, err
	}

	existing, err := s.store.ListPayments(ctx, j.ID)
	if err != nil {
		slog.Error("Failed to load payments", "junta_id", j.ID, "error", err)
		return nil, toConnectError(err)
	}
	ledger := junta.LedgerFrom(existing)

	var payment models.Payment
	if req.Msg.ExpectedRevision != nil {
		payment, err = ledger.RecordPaymentIf(day, in, *req.Msg.ExpectedRevision)
	} else {
		payment, err = ledger.RecordPayment(day, in)
	}
	if err == nil {
		err = s.store.SavePayment(ctx, j.ID, &payment, req.Msg.ExpectedRevision)
	}
	if err != nil {
		if errors.Is(err, junta.ErrRevisionConflict) || errors.Is(err, storage.ErrConflict) {
			s.metrics.PaymentConflict()
		}
		err = toConnectError(err)
		logFailure("Failed to record payment", err, "junta_id", j.ID, "day", day)
		return nil, err
	}
	s.metrics.PaymentRecorded(string(payment.Method))

	responsible, _ := junta.Responsible(j.Participants, day)
	slog.Info("Payment recorded",
		"junta_id", j.ID,
		"day", day,
		"participant", responsible.Name,
		"revision", payment.Revision,
		"member", session.Member,
	)
	s.publish(ctx, events.Event{
		Type:        events.PaymentRecorded,
		JuntaID:     j.ID,
		JuntaName:   j.Name,
		Day:         day.String(),
		Participant: responsible.Name,
		Amount:      payment.Amount.String(),
		Method:      string(payment.Method),
		Member:      session.Member,
	})

	return connect.NewResponse(&api.RecordPaymentResponse{
		Payment: toAPIPayment(payment, s.displayFor(j)),
	}), nil
}

// GetPayment returns the payment for one day. A day never recorded is not an
// error; Found is false.
func (s *JuntaService) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error) {
	day, err := parseDate("day", req.Msg.Day)
	if err != nil {
		return nil, invalidArgument(err)
	}
	j, err := s.store.GetJunta(ctx, req.Msg.JuntaId)
	if err != nil {
		return nil, toConnectError(err)
	}

	p, err := s.store.GetPayment(ctx, j.ID, day)
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewResponse(&api.GetPaymentResponse{Found: false}), nil
	}
	if err != nil {
		slog.Error("Failed to get payment", "junta_id", j.ID, "day", day, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetPaymentResponse{
		Found:   true,
		Payment: toAPIPayment(*p, s.displayFor(j)),
	}), nil
}

// load returns a junta and its payments keyed by day.
func (s *JuntaService) load(ctx context.Context, id string) (*models.Junta, map[string]models.Payment, error) {
	j, err := s.store.GetJunta(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.store.ListPayments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return j, junta.LedgerFrom(payments).Snapshot(), nil
}

// GetSchedule lists every day of the junta with who pays and whether they have.
func (s *JuntaService) GetSchedule(ctx context.Context, req *connect.Request[api.GetScheduleRequest]) (*connect.Response[api.GetScheduleResponse], error) {
	j, payments, err := s.load(ctx, req.Msg.JuntaId)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to load junta", err, "junta_id", req.Msg.JuntaId)
		return nil, err
	}
	days := junta.Schedule(j, payments)
	return connect.NewResponse(&api.GetScheduleResponse{
		Days: toAPIDays(days, models.DateOf(s.now()), s.displayFor(j)),
	}), nil
}

// GetSettlement aggregates the junta's payments.
func (s *JuntaService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	j, payments, err := s.load(ctx, req.Msg.JuntaId)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to load junta", err, "junta_id", req.Msg.JuntaId)
		return nil, err
	}
	settlement := calculator.CalculateSettlement(j, payments)
	return connect.NewResponse(&api.GetSettlementResponse{
		Settlement: toAPISettlement(settlement, s.displayFor(j)),
	}), nil
}

// ExportReport returns a self-contained token for the reporting view.
func (s *JuntaService) ExportReport(ctx context.Context, req *connect.Request[api.ExportReportRequest]) (*connect.Response[api.ExportReportResponse], error) {
	j, payments, err := s.load(ctx, req.Msg.JuntaId)
	if err != nil {
		err = toConnectError(err)
		logFailure("Failed to load junta", err, "junta_id", req.Msg.JuntaId)
		return nil, err
	}
	token, err := junta.EncodeSnapshot(junta.Snapshot{Junta: *j, Payments: payments})
	if err != nil {
		slog.Error("Failed to encode report", "junta_id", j.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ExportReportResponse{Token: token}), nil
}

// OpenReport decodes a token from ExportReport and settles it. Nothing is
// read from the store.
func (s *JuntaService) OpenReport(ctx context.Context, req *connect.Request[api.OpenReportRequest]) (*connect.Response[api.OpenReportResponse], error) {
	snapshot, err := junta.DecodeSnapshot(req.Msg.Token)
	if err != nil {
		slog.Warn("Malformed report token", "error", err)
		return nil, toConnectError(err)
	}

	j := &snapshot.Junta
	d := s.displayFor(j)
	return connect.NewResponse(&api.OpenReportResponse{
		Junta:      toAPIJunta(j),
		Days:       toAPIDays(junta.Schedule(j, snapshot.Payments), models.DateOf(s.now()), d),
		Settlement: toAPISettlement(calculator.CalculateSettlement(j, snapshot.Payments), d),
	}), nil
}
