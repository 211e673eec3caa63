// Package state tracks, per chat, the single pending continuation a
// conversation may be waiting on, together with a small context payload.
// It is intentionally domain-agnostic so it can be reused across bots.
package state
