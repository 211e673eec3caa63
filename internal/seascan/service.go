// Package seascan implements the operator bot for the beach water-quality
// sensor network: command handlers, multi-step conversations, and the
// domain operations behind them.
package seascan

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aleRizzolo/SeaScan/internal/actions"
	"github.com/aleRizzolo/SeaScan/internal/mail"
	"github.com/aleRizzolo/SeaScan/internal/measurements"
	"github.com/aleRizzolo/SeaScan/internal/report"
)

// MeasurementStore reads the current measurement records.
type MeasurementStore interface {
	FetchAll(ctx context.Context) ([]measurements.Record, error)
}

// ActionInvoker triggers a named sensor-network action.
type ActionInvoker interface {
	Invoke(ctx context.Context, action string, payload map[string]string) error
}

// MailSender delivers a plain-text email and returns the provider message id.
type MailSender interface {
	Send(ctx context.Context, recipient, subject, body string) (string, error)
}

// Service carries out the bot's domain operations against the sensor
// network gateways. Handlers stay thin wrappers over it.
type Service struct {
	store   MeasurementStore
	actions ActionInvoker
	mailer  MailSender
	table   string
}

// NewService wires a Service. table is the measurement table name forwarded
// to per-beach toggle actions.
func NewService(store MeasurementStore, invoker ActionInvoker, mailer MailSender, table string) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("seascan: measurement store must not be nil")
	}
	if invoker == nil {
		return nil, fmt.Errorf("seascan: action invoker must not be nil")
	}
	if mailer == nil {
		return nil, fmt.Errorf("seascan: mail sender must not be nil")
	}
	return &Service{store: store, actions: invoker, mailer: mailer, table: table}, nil
}

// PHSummary returns the ph-only summary of all current records.
func (s *Service) PHSummary(ctx context.Context) (string, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	return report.PHOnly(records), nil
}

// HydrocarbonSummary returns the hydrocarbons-only summary of all current records.
func (s *Service) HydrocarbonSummary(ctx context.Context) (string, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	return report.HydrocarbonsOnly(records), nil
}

// FullReport returns the full summary of all current records.
func (s *Service) FullReport(ctx context.Context) (string, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	return report.Full(records), nil
}

// GenerateData runs the data pipeline: trigger the generator, report
// progress, recompute the averages, report completion. notify is called for
// each progress message in order.
func (s *Service) GenerateData(ctx context.Context, chatID int64, notify func(text string) error) error {
	payload := map[string]string{"cid": formatChatID(chatID)}

	if err := s.actions.Invoke(ctx, actions.GenerateData, payload); err != nil {
		return newError(ErrorActionFailed, "generate data", err)
	}
	if err := notify("Processing...."); err != nil {
		return newError(ErrorTransportFailed, "progress notice", err)
	}
	if err := s.actions.Invoke(ctx, actions.ComputeAverages, payload); err != nil {
		return newError(ErrorActionFailed, "compute averages", err)
	}
	if err := notify("Done!"); err != nil {
		return newError(ErrorTransportFailed, "completion notice", err)
	}
	return nil
}

// BeachChoices returns the distinct beach names present in the measurement
// table, in first-seen scan order.
func (s *Service) BeachChoices(ctx context.Context) ([]string, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return measurements.DistinctBeaches(records), nil
}

// ToggleBeach switches the sensor at one beach on or off. The beach name is
// forwarded as given; the action is the authority on whether it exists.
func (s *Service) ToggleBeach(ctx context.Context, on bool, beach string) error {
	action := actions.BeachSensorOff
	if on {
		action = actions.BeachSensorOn
	}
	payload := map[string]string{"table": s.table, "beach": beach}
	if err := s.actions.Invoke(ctx, action, payload); err != nil {
		return newError(ErrorActionFailed, "toggle beach sensor", err)
	}
	return nil
}

// ToggleAll switches every sensor in the network on or off.
func (s *Service) ToggleAll(ctx context.Context, on bool, chatID int64) error {
	action := actions.AllSensorsOff
	if on {
		action = actions.AllSensorsOn
	}
	payload := map[string]string{"cid": formatChatID(chatID)}
	if err := s.actions.Invoke(ctx, action, payload); err != nil {
		return newError(ErrorActionFailed, "toggle all sensors", err)
	}
	return nil
}

// EmailReport sends the full measurement summary to recipient. The subject
// names the bot the report came from.
func (s *Service) EmailReport(ctx context.Context, recipient, botName string) error {
	body, err := s.FullReport(ctx)
	if err != nil {
		return err
	}
	subject := "Email from " + botName
	if _, err := s.mailer.Send(ctx, recipient, subject, body); err != nil {
		if mail.IsAuthError(err) {
			return newError(ErrorMailAuth, "send report", err)
		}
		return newError(ErrorMailFailed, "send report", err)
	}
	return nil
}

// MonitoringSweep triggers the active-monitoring check over the network.
func (s *Service) MonitoringSweep(ctx context.Context) error {
	if err := s.actions.Invoke(ctx, actions.ActiveMonitoring, map[string]string{"table": s.table}); err != nil {
		return newError(ErrorActionFailed, "monitoring sweep", err)
	}
	return nil
}

func (s *Service) fetch(ctx context.Context) ([]measurements.Record, error) {
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, newError(ErrorStoreUnavailable, "fetch measurements", err)
	}
	return records, nil
}

func formatChatID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
