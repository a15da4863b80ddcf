package router

import (
	"time"

	tg "github.com/babelpass/babelpass/core/telegram"
	"github.com/babelpass/babelpass/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// PendingGate decides whether a plain text message belongs to an input prompt
// previously armed for the sender (folder name, custom length) and consumes it.
type PendingGate interface {
	AwaitingInput(c tele.Context) bool
	HandleInput(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the handler for plain text routing: pending prompts first,
// then slash commands typed as text, then the registry fallback.
func TextRoute(gate PendingGate, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if gate != nil && gate.AwaitingInput(c) {
			return handleWithSummary(c, "pending_input", start, "", "", func() error {
				return gate.HandleInput(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
