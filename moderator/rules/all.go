package rules

import (
	"github.com/groupwarden/groupwarden/moderator"
)

// DefaultRules returns the production rule set in priority order: repetition,
// link, vocabulary, then identity change. The first rule to fire stops
// evaluation for that event.
func DefaultRules() moderator.RuleSet {
	rules := moderator.RuleSet{
		MessageRules: []moderator.MessageRuleFunc{
			RepetitionMessageRule,
			LinkMessageRule,
			VocabularyMessageRule,
			IdentityChangeMessageRule,
		},
		IdentityRules: []moderator.IdentityRuleFunc{
			IdentityChangeRule,
		},
	}
	return rules
}
