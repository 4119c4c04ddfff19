package rules

import (
	"github.com/groupwarden/groupwarden/moderator"
)

var _ moderator.MessageRuleFunc = VocabularyMessageRule

// VocabularyMessageRule checks plain-text messages against the fixed
// disallowed-term set. Matching is substring, case-sensitive, with no
// word-boundary requirement. A single occurrence is terminal: delete, full
// ledger purge, and ban, with no warning tier.
func VocabularyMessageRule(c *moderator.MessageContext) error {
	if !c.Message.PlainText() {
		return nil
	}
	term := c.MatchDisallowedTerm(c.Message.Text)
	if term == "" {
		return nil
	}

	c.Logger.Info("disallowed vocabulary, taking down account", "term", term)
	c.Trigger("vocabulary")
	c.DeleteTriggeringMessage()
	c.TakedownAccount()
	c.Notify(vocabularyBanNotice(c.Event.BestName()))
	return nil
}
