package moderator

import (
	"github.com/groupwarden/groupwarden/moderator/engine"
)

type Engine = engine.Engine
type RuleSet = engine.RuleSet

type AccountContext = engine.AccountContext
type MessageContext = engine.MessageContext

type ActionPlan = engine.ActionPlan
type Notice = engine.Notice
type RestrictOp = engine.RestrictOp
type Restriction = engine.Restriction

type MessageRuleFunc = engine.MessageRuleFunc
type IdentityRuleFunc = engine.IdentityRuleFunc

var (
	NewEngine        = engine.NewEngine
	RestrictReadOnly = engine.RestrictReadOnly
	RestrictFull     = engine.RestrictFull
)
