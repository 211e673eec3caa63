package router

import (
	"strings"
	"time"

	tg "github.com/aleRizzolo/SeaScan/core/telegram"
	"github.com/aleRizzolo/SeaScan/core/telegram/middleware"
	"github.com/aleRizzolo/SeaScan/core/telegram/state"

	tele "gopkg.in/telebot.v3"
)

// Continuations is the minimal interface the routers need from the
// conversation state manager.
type Continuations interface {
	// Take atomically reads and clears the pending continuation for a chat.
	Take(chatID int64) (state.State, map[string]string, bool)
}

// TextRoute builds the free-text dispatch route. For every text update it
// decides, in order:
//  1. a pending continuation consumes the message (cleared before the
//     handler runs, so a failing handler cannot re-fire it);
//  2. otherwise the first token is matched case-sensitively against the
//     command table;
//  3. otherwise the message is ignored without a reply.
func TextRoute(flows Continuations, reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()
		chatID := conversationID(c)

		if flows != nil {
			if st, data, ok := flows.Take(chatID); ok {
				name := "continue." + normalizeHandlerName(string(st))
				if h, found := state.HandlerFor(st); found {
					return handleWithSummary(c, name, start, func() error {
						return h(c, data)
					})
				}
				logHandlerSummary(c, name, start, "skip", nil)
				return nil
			}
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(commandToken(text)); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, func() error {
					return cmd.Handler(c)
				})
			}
		}

		// Unknown free text outside any flow is not an error.
		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

// commandToken extracts the leading command token from a message, stripping
// any @botname suffix Telegram appends in group chats.
func commandToken(text string) string {
	token := strings.TrimSpace(text)
	if i := strings.IndexAny(token, " \t\n"); i >= 0 {
		token = token[:i]
	}
	if at := strings.Index(token, "@"); at > 0 {
		token = token[:at]
	}
	return token
}

// conversationID returns the identifier continuations are keyed by.
func conversationID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}
