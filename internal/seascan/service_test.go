package seascan

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/aleRizzolo/SeaScan/internal/actions"
	"github.com/aleRizzolo/SeaScan/internal/measurements"
)

type fakeStore struct {
	records []measurements.Record
	err     error
	calls   int
}

func (f *fakeStore) FetchAll(_ context.Context) ([]measurements.Record, error) {
	f.calls++
	return f.records, f.err
}

type invocation struct {
	action  string
	payload map[string]string
}

type fakeInvoker struct {
	err     error
	failOn  string
	history []invocation
}

func (f *fakeInvoker) Invoke(_ context.Context, action string, payload map[string]string) error {
	f.history = append(f.history, invocation{action: action, payload: payload})
	if f.err != nil && (f.failOn == "" || f.failOn == action) {
		return f.err
	}
	return nil
}

type sentMail struct {
	recipient string
	subject   string
	body      string
}

type fakeMailer struct {
	err  error
	sent []sentMail
}

func (f *fakeMailer) Send(_ context.Context, recipient, subject, body string) (string, error) {
	f.sent = append(f.sent, sentMail{recipient: recipient, subject: subject, body: body})
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

func sampleRecords() []measurements.Record {
	return []measurements.Record{
		{Beach: "long_beach", PH: 7, Hydrocarbons: 4, ObservedAt: "3/14/2026, 9:30:00 AM"},
		{Beach: "venice_beach", PH: 6.5, Hydrocarbons: 2, ObservedAt: "3/14/2026, 9:31:00 AM"},
		{Beach: "long_beach", PH: 7.2, Hydrocarbons: 3, ObservedAt: "3/14/2026, 9:32:00 AM"},
	}
}

func mustNewService(t *testing.T, store *fakeStore, inv *fakeInvoker, mailer *fakeMailer) *Service {
	t.Helper()
	svc, err := NewService(store, inv, mailer, "SeaScan")
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Kind)
}

func TestPHSummary(t *testing.T) {
	store := &fakeStore{records: sampleRecords()}
	svc := mustNewService(t, store, &fakeInvoker{}, &fakeMailer{})

	out, err := svc.PHSummary(context.Background())
	require.NoError(t, err)
	require.Contains(t, out, "long_beach: ph: 7,")
	require.Contains(t, out, "venice_beach: ph: 6.5,")
	require.NotContains(t, out, "hydrocarbons")
}

func TestPHSummary_StoreUnavailable(t *testing.T) {
	store := &fakeStore{err: errors.New("scan failed")}
	svc := mustNewService(t, store, &fakeInvoker{}, &fakeMailer{})

	_, err := svc.PHSummary(context.Background())
	requireCode(t, err, ErrorStoreUnavailable)
}

func TestHydrocarbonSummary(t *testing.T) {
	store := &fakeStore{records: sampleRecords()}
	svc := mustNewService(t, store, &fakeInvoker{}, &fakeMailer{})

	out, err := svc.HydrocarbonSummary(context.Background())
	require.NoError(t, err)
	require.Contains(t, out, "hydrocarbons: 4 µg/L")
	require.NotContains(t, out, "ph:")
}

func TestGenerateData_Pipeline(t *testing.T) {
	inv := &fakeInvoker{}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	var notices []string
	err := svc.GenerateData(context.Background(), 42, func(text string) error {
		notices = append(notices, text)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Processing....", "Done!"}, notices)
	require.Len(t, inv.history, 2)
	require.Equal(t, actions.GenerateData, inv.history[0].action)
	require.Equal(t, actions.ComputeAverages, inv.history[1].action)
	require.Equal(t, "42", inv.history[0].payload["cid"])
}

func TestGenerateData_GeneratorFails(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("boom"), failOn: actions.GenerateData}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	var notices []string
	err := svc.GenerateData(context.Background(), 42, func(text string) error {
		notices = append(notices, text)
		return nil
	})
	requireCode(t, err, ErrorActionFailed)
	require.Empty(t, notices)
	require.Len(t, inv.history, 1)
}

func TestGenerateData_AveragesFail(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("boom"), failOn: actions.ComputeAverages}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	var notices []string
	err := svc.GenerateData(context.Background(), 42, func(text string) error {
		notices = append(notices, text)
		return nil
	})
	requireCode(t, err, ErrorActionFailed)
	require.Equal(t, []string{"Processing...."}, notices)
}

func TestGenerateData_NotifyFails(t *testing.T) {
	inv := &fakeInvoker{}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	err := svc.GenerateData(context.Background(), 42, func(string) error {
		return errors.New("send failed")
	})
	requireCode(t, err, ErrorTransportFailed)
	require.Len(t, inv.history, 1)
}

func TestBeachChoices(t *testing.T) {
	store := &fakeStore{records: sampleRecords()}
	svc := mustNewService(t, store, &fakeInvoker{}, &fakeMailer{})

	beaches, err := svc.BeachChoices(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"long_beach", "venice_beach"}, beaches)
}

func TestBeachChoices_EmptyTable(t *testing.T) {
	svc := mustNewService(t, &fakeStore{}, &fakeInvoker{}, &fakeMailer{})

	beaches, err := svc.BeachChoices(context.Background())
	require.NoError(t, err)
	require.Empty(t, beaches)
}

func TestToggleBeach_ForwardsNameUnvalidated(t *testing.T) {
	// A reply that matches no presented beach still reaches the action;
	// the Lambda side owns validity.
	inv := &fakeInvoker{}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	err := svc.ToggleBeach(context.Background(), true, "atlantis_beach")
	require.NoError(t, err)
	require.Len(t, inv.history, 1)
	require.Equal(t, actions.BeachSensorOn, inv.history[0].action)
	require.Equal(t, "atlantis_beach", inv.history[0].payload["beach"])
	require.Equal(t, "SeaScan", inv.history[0].payload["table"])
}

func TestToggleBeach_Off(t *testing.T) {
	inv := &fakeInvoker{}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	require.NoError(t, svc.ToggleBeach(context.Background(), false, "long_beach"))
	require.Equal(t, actions.BeachSensorOff, inv.history[0].action)
}

func TestToggleBeach_ActionFails(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("boom")}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	err := svc.ToggleBeach(context.Background(), true, "long_beach")
	requireCode(t, err, ErrorActionFailed)
}

func TestToggleAll(t *testing.T) {
	inv := &fakeInvoker{}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	require.NoError(t, svc.ToggleAll(context.Background(), true, 42))
	require.NoError(t, svc.ToggleAll(context.Background(), false, 42))
	require.Equal(t, actions.AllSensorsOn, inv.history[0].action)
	require.Equal(t, actions.AllSensorsOff, inv.history[1].action)
	require.Equal(t, "42", inv.history[0].payload["cid"])
}

func TestEmailReport(t *testing.T) {
	store := &fakeStore{records: sampleRecords()}
	mailer := &fakeMailer{}
	svc := mustNewService(t, store, &fakeInvoker{}, mailer)

	err := svc.EmailReport(context.Background(), "operator@example.com", "seascan_bot")
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "operator@example.com", mailer.sent[0].recipient)
	require.Equal(t, "Email from seascan_bot", mailer.sent[0].subject)
	require.Contains(t, mailer.sent[0].body, "long_beach")
	require.Contains(t, mailer.sent[0].body, "µg/L")
}

func TestEmailReport_StoreUnavailable(t *testing.T) {
	store := &fakeStore{err: errors.New("scan failed")}
	mailer := &fakeMailer{}
	svc := mustNewService(t, store, &fakeInvoker{}, mailer)

	err := svc.EmailReport(context.Background(), "operator@example.com", "seascan_bot")
	requireCode(t, err, ErrorStoreUnavailable)
	require.Empty(t, mailer.sent)
}

func TestEmailReport_MailFails(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("MessageRejected")}
	svc := mustNewService(t, &fakeStore{}, &fakeInvoker{}, mailer)

	err := svc.EmailReport(context.Background(), "operator@example.com", "seascan_bot")
	requireCode(t, err, ErrorMailFailed)
}

func TestEmailReport_AuthFailure(t *testing.T) {
	mailer := &fakeMailer{err: &smithy.GenericAPIError{Code: "UnrecognizedClientException"}}
	svc := mustNewService(t, &fakeStore{}, &fakeInvoker{}, mailer)

	err := svc.EmailReport(context.Background(), "operator@example.com", "seascan_bot")
	requireCode(t, err, ErrorMailAuth)
}

func TestMonitoringSweep(t *testing.T) {
	inv := &fakeInvoker{}
	svc := mustNewService(t, &fakeStore{}, inv, &fakeMailer{})

	require.NoError(t, svc.MonitoringSweep(context.Background()))
	require.Equal(t, actions.ActiveMonitoring, inv.history[0].action)
	require.Equal(t, "SeaScan", inv.history[0].payload["table"])
}

func TestNewService_NilGateways(t *testing.T) {
	_, err := NewService(nil, &fakeInvoker{}, &fakeMailer{}, "SeaScan")
	require.Error(t, err)
	_, err = NewService(&fakeStore{}, nil, &fakeMailer{}, "SeaScan")
	require.Error(t, err)
	_, err = NewService(&fakeStore{}, &fakeInvoker{}, nil, "SeaScan")
	require.Error(t, err)
}

func TestErrorUserMessages(t *testing.T) {
	for _, code := range []ErrorCode{
		ErrorStoreUnavailable,
		ErrorActionFailed,
		ErrorMailFailed,
		ErrorMailAuth,
		ErrorTransportFailed,
	} {
		e := newError(code, "test", nil)
		require.NotEmpty(t, e.UserMessage(), "code %s", code)
		require.Equal(t, string(code), e.Code())
	}
}
