// Package commands defines the metadata attached to every registered bot
// command.
package commands

import (
	tele "gopkg.in/telebot.v3"
)

// Command binds a handler to its menu description and access metadata.
// AdminOnly commands are gated to the configured operator chat; Hidden
// commands stay reachable but never appear in the published menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// Listed reports whether the command belongs in the published command menu.
func (c Command) Listed() bool {
	return !c.Hidden && !c.AdminOnly
}
