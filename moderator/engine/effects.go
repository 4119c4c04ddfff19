package engine

import (
	"github.com/groupwarden/groupwarden/moderator/userstore"
)

// Access levels for the restrict action.
type Restriction string

const (
	// read-only: user may stay in the chat but not post
	RestrictReadOnly = Restriction("read-only")
	// full permissions restored
	RestrictFull = Restriction("full")
)

type RestrictOp struct {
	Identity string
	Access   Restriction
}

// A notice to be posted to the chat, optionally as a reply.
type Notice struct {
	Text string
	// message to reply to; empty for a plain broadcast
	ReplyToMessageID string
}

// ActionPlan is the set of side-effecting operations the engine requests the
// transport layer to perform for one event. The engine's decision and state
// mutations are already committed by the time a plan is returned; executing
// the plan is best-effort and per-call failures must never feed back into the
// next decision.
type ActionPlan struct {
	DeleteMessageIDs []string
	// identity to ban, or empty
	BanIdentity string
	Restrict    *RestrictOp
	Notices     []Notice
}

// Empty reports whether the plan contains no operations at all.
func (p *ActionPlan) Empty() bool {
	return len(p.DeleteMessageIDs) == 0 && p.BanIdentity == "" && p.Restrict == nil && len(p.Notices) == 0
}

// Mutable container for all the possible side-effects from rule execution.
//
// Rules are side-effect-free: they only record proposed action-plan entries
// and at most one state delta here. The engine commits the delta and builds
// the final ActionPlan after rule execution finishes.
type Effects struct {
	// Message IDs to delete as part of this event's plan.
	DeleteMessageIDs []string
	// If true, the acting user is banned as part of this plan.
	BanAccount bool
	// If true, the user's full message ledger is deleted and the user record
	// destroyed, atomically with the rest of the commit.
	PurgeAccount bool
	// Notices to broadcast as part of this plan.
	Notices []Notice

	// Replacement spam state, committed even when no rule fires (repetition
	// tracking persists across allowed events).
	SpamState *userstore.SpamState
	// Replacement link-warning count.
	LinkWarningCount *int

	// Name of the rule that fired, if any. A fired rule stops further rule
	// evaluation for the event.
	TriggeredRule string
}

// Trigger marks the event as handled by the named rule; no later rule will
// run for this event.
func (e *Effects) Trigger(rule string) {
	if e.TriggeredRule == "" {
		e.TriggeredRule = rule
	}
}

// Triggered reports whether any rule fired for this event.
func (e *Effects) Triggered() bool {
	return e.TriggeredRule != ""
}

// Enqueues a single message deletion in the plan.
func (e *Effects) DeleteMessage(id string) {
	if id != "" {
		e.DeleteMessageIDs = append(e.DeleteMessageIDs, id)
	}
}

// Enqueues a broadcast notice in the plan.
func (e *Effects) Notify(text string) {
	e.Notices = append(e.Notices, Notice{Text: text})
}

// Enqueues the acting user to be banned, their ledger purged, and their
// record destroyed at commit time.
func (e *Effects) TakedownAccount() {
	e.BanAccount = true
	e.PurgeAccount = true
}

// Proposes a replacement for the user's repetition-tracking state.
func (e *Effects) SetSpamState(st userstore.SpamState) {
	e.SpamState = &st
}

// Proposes a replacement link-warning count.
func (e *Effects) SetLinkWarningCount(n int) {
	e.LinkWarningCount = &n
}
