package engine

type MessageRuleFunc = func(c *MessageContext) error
type IdentityRuleFunc = func(c *AccountContext) error

// Holds the rules to run for each event type, in fixed priority order, and
// dispatches events to them. The first rule to fire (record a triggered
// effect) stops further evaluation for that event.
type RuleSet struct {
	MessageRules  []MessageRuleFunc
	IdentityRules []IdentityRuleFunc
}

// Executes message rules in order, short-circuiting after the first rule that
// fires. Only dispatches execution; committing effects is the engine's job.
func (r *RuleSet) CallMessageRules(c *MessageContext) error {
	for _, f := range r.MessageRules {
		if err := f(c); err != nil {
			return err
		}
		if c.effects.Triggered() {
			return nil
		}
	}
	return nil
}

// Executes rules for out-of-band profile update events.
func (r *RuleSet) CallIdentityRules(c *AccountContext) error {
	for _, f := range r.IdentityRules {
		if err := f(c); err != nil {
			return err
		}
		if c.effects.Triggered() {
			return nil
		}
	}
	return nil
}
