package state

import tele "gopkg.in/telebot.v3"

// ContinuationFunc consumes the free-text message a pending state was
// waiting for. The data map is the payload stored when the continuation
// was registered; by the time the handler runs the state is already cleared.
type ContinuationFunc func(c tele.Context, data map[string]string) error

var continuations = map[State]ContinuationFunc{}

// RegisterHandler associates a state with its continuation handler.
func RegisterHandler(st State, h ContinuationFunc) {
	if h == nil {
		return
	}
	continuations[st] = h
}

// HandlerFor returns the continuation handler registered for a state.
func HandlerFor(st State) (ContinuationFunc, bool) {
	h, ok := continuations[st]
	return h, ok
}
