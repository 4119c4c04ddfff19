package rules

import (
	"github.com/groupwarden/groupwarden/moderator"
	"github.com/groupwarden/groupwarden/moderator/fingerprint"
	"github.com/groupwarden/groupwarden/moderator/userstore"
)

var _ moderator.MessageRuleFunc = RepetitionMessageRule

// RepetitionMessageRule detects repeated identical content. Every comparable
// message advances the repetition state, which is committed even when the
// event is allowed: the run length survives across events, and a differing
// message restarts the run at 1 (the differing message itself counts as the
// first occurrence). At the fifth occurrence of a stable fingerprint the rule
// fires: the run resets to 0, a spam strike is added, and the third strike
// escalates from warning to ban plus full ledger purge.
func RepetitionMessageRule(c *moderator.MessageContext) error {
	fp := fingerprint.FromMessage(c.Message)
	if fp == nil {
		// no comparable content; exempt from repetition checking
		return nil
	}

	st := c.Account.Spam
	if fp.Equal(st.LastFingerprint) {
		st.RepeatCount++
	} else {
		st.LastFingerprint = fp
		st.RepeatCount = 1
	}

	if st.RepeatCount < userstore.SpamRepeatThreshold {
		c.SetSpamState(st)
		return nil
	}

	st.RepeatCount = 0
	st.WarningCount++
	c.Trigger("spam-repetition")
	c.DeleteTriggeringMessage()

	if st.WarningCount >= userstore.SpamWarningLimit {
		c.Logger.Info("spam warnings exhausted, taking down account", "fingerprint", fp.String())
		c.TakedownAccount()
		c.Notify(spamBanNotice(c.Event.BestName()))
		return nil
	}

	c.SetSpamState(st)
	c.Notify(spamWarningNotice(c.Event.BestName(), st.WarningCount))
	return nil
}
