package engine

import (
	"context"
	"log/slog"

	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/groupwarden/groupwarden/moderator/userstore"
)

// The primary interface exposed to rules for account-level (profile update)
// events, and embedded by MessageContext.
type AccountContext struct {
	// Actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// Any errors encountered while processing methods on this struct get rolled up in this nullable field
	Err error
	// slog logger handle, with event-specific structured fields pre-populated. Pointer, but expected to never be nil.
	Logger *slog.Logger

	// The inbound event being evaluated.
	Event *event.Event
	// Current stored state for the acting user, as of the start of
	// evaluation. Rules must treat this as read-only and propose changes via
	// effects methods.
	Account *userstore.UserRecord

	engine  *Engine // NOTE: pointer, but expected never to be nil
	effects *Effects
}

// Context for a content message event.
type MessageContext struct {
	AccountContext

	Message *event.Message
}

func NewAccountContext(ctx context.Context, eng *Engine, ev *event.Event, rec *userstore.UserRecord) AccountContext {
	return AccountContext{
		Ctx:     ctx,
		Err:     nil,
		Logger:  eng.Logger.With("actor", ev.Actor, "chat", ev.Chat),
		Event:   ev,
		Account: rec,
		engine:  eng,
		effects: &Effects{},
	}
}

func NewMessageContext(ctx context.Context, eng *Engine, ev *event.Event, rec *userstore.UserRecord) MessageContext {
	ac := NewAccountContext(ctx, eng, ev, rec)
	ac.Logger = ac.Logger.With("messageID", ev.Message.ID)
	return MessageContext{
		AccountContext: ac,
		Message:        ev.Message,
	}
}

// query engine state (indirect) ======

// MatchDisallowedTerm returns the first disallowed vocabulary term occurring
// in text, or "".
func (c *AccountContext) MatchDisallowedTerm(text string) string {
	if c.engine.Words == nil {
		return ""
	}
	return c.engine.Words.MatchSubstring(text)
}

// update effects (indirect) ======

func (c *AccountContext) Trigger(rule string) {
	c.effects.Trigger(rule)
}

func (c *AccountContext) Notify(text string) {
	c.effects.Notify(text)
}

func (c *AccountContext) TakedownAccount() {
	c.effects.TakedownAccount()
}

func (c *AccountContext) SetSpamState(st userstore.SpamState) {
	c.effects.SetSpamState(st)
}

func (c *AccountContext) SetLinkWarningCount(n int) {
	c.effects.SetLinkWarningCount(n)
}

func (c *MessageContext) DeleteMessage(id string) {
	c.effects.DeleteMessage(id)
}

// DeleteTriggeringMessage enqueues deletion of the message under evaluation.
func (c *MessageContext) DeleteTriggeringMessage() {
	c.effects.DeleteMessage(c.Message.ID)
}
