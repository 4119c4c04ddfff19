package engine

import (
	"log/slog"
	"time"

	"github.com/groupwarden/groupwarden/moderator/activity"
	"github.com/groupwarden/groupwarden/moderator/userstore"
	"github.com/groupwarden/groupwarden/moderator/wordset"
)

// trivial rule used by engine tests: takedown on an exact marker text
func takedownMarkerRule(c *MessageContext) error {
	if c.Message.Text == "takedown-me" {
		c.Trigger("test-marker")
		c.DeleteTriggeringMessage()
		c.TakedownAccount()
		c.Notify("marker takedown")
	}
	return nil
}

// EngineTestFixture returns an engine with in-memory stores and a single
// trivial rule. Intentionally exported, for use in other packages.
func EngineTestFixture() *Engine {
	rules := RuleSet{
		MessageRules: []MessageRuleFunc{
			takedownMarkerRule,
		},
	}
	users := userstore.NewMemUserStore(1000, time.Hour)
	act := activity.NewMemActivityStore()
	words := wordset.New([]string{"slur"})
	return NewEngine(slog.Default(), rules, users, act, words)
}

// Helper to access the private effects field from a context. Intended for use
// in test code, *not* from rules.
func ExtractEffects(c *AccountContext) *Effects {
	return c.effects
}
