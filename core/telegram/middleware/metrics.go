package middleware

import (
	tele "gopkg.in/telebot.v3"
)

const (
	counterMessages = "messages"
	counterKB       = "kb"
)

// metricsContext wraps tele.Context to count outbound messages and note
// keyboard usage for the request summary log.
type metricsContext struct{ tele.Context }

func (m metricsContext) record(hasKB bool) {
	n, _ := m.Get(counterMessages).(int)
	m.Set(counterMessages, n+1)
	if hasKB {
		m.Set(counterKB, true)
	}
}

func carriesKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

// Send proxies tele.Context.Send while updating the counters.
func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.record(carriesKeyboard(opts))
	}
	return err
}

// Reply proxies tele.Context.Reply while updating the counters.
func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.record(carriesKeyboard(opts))
	}
	return err
}

// MessageMetricsMiddleware instruments the context so the summary log can
// report how many messages a handler sent and whether any carried a keyboard.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(counterMessages, 0)
		c.Set(counterKB, false)
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads the message count and keyboard flag back out of context.
func GetCounters(c tele.Context) (int, bool) {
	msgs, _ := c.Get(counterMessages).(int)
	kb, _ := c.Get(counterKB).(bool)
	return msgs, kb
}
