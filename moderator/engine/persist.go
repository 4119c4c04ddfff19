package engine

import (
	"fmt"

	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/groupwarden/groupwarden/moderator/helpers"
)

// commit applies the single state delta collected during rule execution and
// assembles the final action plan. Exactly one of two paths runs: the purge
// path (ban) destroys the user record and schedules the full ledger for
// deletion; the update path writes counter/snapshot changes back and, when no
// rule fired, records the accepted event for future checks.
//
// msg is nil for profile-update events.
func (eng *Engine) commit(c *AccountContext, msg *event.Message) (*ActionPlan, error) {
	ctx := c.Ctx
	ev := c.Event
	eff := c.effects
	rec := c.Account

	plan := &ActionPlan{Notices: eff.Notices}

	if eff.Triggered() {
		ruleTriggerCount.WithLabelValues(eff.TriggeredRule).Inc()
	}

	if eff.PurgeAccount {
		// purge is best-effort at the delivery layer: all ledgered deletions
		// are attempted even if individual ones fail
		plan.DeleteMessageIDs = helpers.DedupeStrings(append(eff.DeleteMessageIDs, rec.MessageLedger...))
		if eff.BanAccount {
			plan.BanIdentity = ev.Actor
			actionTakedownCount.WithLabelValues(eff.TriggeredRule).Inc()
		}
		if err := eng.Users.Purge(ctx, ev.Actor); err != nil {
			return plan, fmt.Errorf("purging user state: %w", err)
		}
		return plan, nil
	}

	plan.DeleteMessageIDs = helpers.DedupeStrings(eff.DeleteMessageIDs)

	if eff.SpamState != nil {
		rec.Spam = *eff.SpamState
	}
	if eff.LinkWarningCount != nil {
		rec.LinkWarningCount = *eff.LinkWarningCount
	}

	if !eff.Triggered() {
		// accepted event: record it for future checks
		if msg != nil {
			rec.AppendMessage(msg.ID)
		}
		if ev.Profile != nil {
			snapshot := *ev.Profile
			rec.IdentitySnapshot = &snapshot
		}
		if msg != nil && eng.Activity != nil {
			// activity writes are best-effort; ranking is advisory
			if err := eng.Activity.Record(ctx, ev.Actor, ev.Time); err != nil {
				eng.Logger.Warn("recording activity failed", "err", err, "actor", ev.Actor)
			}
		}
	}

	if err := eng.Users.Update(ctx, rec); err != nil {
		return plan, fmt.Errorf("persisting user state: %w", err)
	}
	return plan, nil
}
