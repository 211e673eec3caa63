package router

import (
	"log/slog"
	"time"

	"github.com/aleRizzolo/SeaScan/core/logger"
	tg "github.com/aleRizzolo/SeaScan/core/telegram"
	tghelpers "github.com/aleRizzolo/SeaScan/core/telegram/helpers"
	"github.com/aleRizzolo/SeaScan/core/telegram/middleware"

	tele "gopkg.in/telebot.v3"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
// A fresh command cancels whatever continuation the chat was waiting on;
// typing a new command line is the only way to abandon a pending flow.
func CommandRoutes(flows Continuations, reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		h := cancelPendingFlow(flows, name, def.Handler)
		h = summarized(name, h)
		h = middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(adminOpts)(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}

func summarized(name string, h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, name, start, func() error {
			return h(c)
		})
	}
}

func cancelPendingFlow(flows Continuations, name string, h tele.HandlerFunc) tele.HandlerFunc {
	if flows == nil {
		return h
	}
	return func(c tele.Context) error {
		chatID := conversationID(c)
		if st, _, ok := flows.Take(chatID); ok {
			ctx := tghelpers.BuildContext(c)
			logger.Debug(ctx, "tg", "flow.cancel",
				slog.String("state", string(st)),
				slog.String("handler", name),
			)
		}
		return h(c)
	}
}
