package router

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/aleRizzolo/SeaScan/core/logger"
	tghelpers "github.com/aleRizzolo/SeaScan/core/telegram/helpers"
	"github.com/aleRizzolo/SeaScan/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v3"
)

// UserFacing lets domain errors carry the message shown to the chat when a
// handler fails. Errors without it fall back to a generic notice.
type UserFacing interface {
	UserMessage() string
}

const genericFailureText = "Something went wrong, please try again."

// handleWithSummary runs fn as the terminal step of an update: it logs one
// summary line and, on failure, sends exactly one notice to the originating
// chat. The error never propagates further, so no other layer can produce a
// second user-visible message for the same update.
func handleWithSummary(c tele.Context, handlerName string, start time.Time, fn func() error, extras ...slog.Attr) error {
	tghelpers.WithHandler(c, handlerName)
	err := fn()
	logHandlerSummary(c, handlerName, start, "", err, extras...)
	if err != nil {
		notifyFailure(c, err)
	}
	return nil
}

func notifyFailure(c tele.Context, err error) {
	text := genericFailureText
	var uf UserFacing
	if errors.As(err, &uf) && strings.TrimSpace(uf.UserMessage()) != "" {
		text = uf.UserMessage()
	}
	if sendErr := tghelpers.SendText(c, text); sendErr != nil {
		ctx := tghelpers.BuildContext(c)
		logger.Error(ctx, "tg", "notify.fail",
			slog.String("err", logger.SanitizeLimit(sendErr.Error(), 256)),
		)
	}
}

func logHandlerSummary(c tele.Context, handlerName string, start time.Time, statusOverride string, err error, extras ...slog.Attr) {
	ctx := tghelpers.WithHandler(c, handlerName)
	msgs, kb := middleware.GetCounters(c)

	status := statusOverride
	if status == "" {
		if err != nil {
			status = "fail"
		} else {
			status = "ok"
		}
	}

	duration := logger.RoundMS(time.Since(start)).Milliseconds()
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", handlerName),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Int64("duration_ms", duration),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", deriveErrorCode(err)),
			slog.String("cause", handlerName),
		)
	}
	if len(extras) > 0 {
		attrs = append(attrs, extras...)
	}
	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	type coder interface{ Code() string }
	var c coder
	if errors.As(err, &c) {
		code := strings.TrimSpace(c.Code())
		if code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil {
		return strings.ToUpper(strings.ReplaceAll(t.Name(), " ", "_"))
	}
	return "UNKNOWN_ERROR"
}
