package rules

import (
	"github.com/groupwarden/groupwarden/moderator"
)

var _ moderator.IdentityRuleFunc = IdentityChangeRule
var _ moderator.MessageRuleFunc = IdentityChangeMessageRule

// identityChanged compares the currently observed profile against the stored
// snapshot. A record with no snapshot yet never triggers (the snapshot is
// recorded at commit instead). Any difference in display name or handle
// counts, including empty-to-value transitions; empty-to-empty does not.
func identityChanged(c *moderator.AccountContext) bool {
	prev := c.Account.IdentitySnapshot
	curr := c.Event.Profile
	if prev == nil || curr == nil {
		return false
	}
	return prev.DisplayName != curr.DisplayName || prev.Handle != curr.Handle
}

// IdentityChangeRule handles out-of-band membership/profile-update signals:
// a changed display name or handle is a terminal violation. With no message
// payload the ban and purge still execute, just with nothing extra to delete.
func IdentityChangeRule(c *moderator.AccountContext) error {
	if !identityChanged(c) {
		return nil
	}
	c.Logger.Info("identity change detected, taking down account",
		"prevHandle", c.Account.IdentitySnapshot.Handle,
		"handle", c.Event.Profile.Handle,
	)
	c.Trigger("identity-change")
	c.TakedownAccount()
	c.Notify(identityChangeBanNotice(c.Event.BestName()))
	return nil
}

// IdentityChangeMessageRule runs the same check on ordinary content events,
// comparing before the snapshot would be recorded. The triggering message is
// deleted along with the ledger.
func IdentityChangeMessageRule(c *moderator.MessageContext) error {
	if !identityChanged(&c.AccountContext) {
		return nil
	}
	c.Logger.Info("identity change detected, taking down account",
		"prevHandle", c.Account.IdentitySnapshot.Handle,
		"handle", c.Event.Profile.Handle,
	)
	c.Trigger("identity-change")
	c.DeleteTriggeringMessage()
	c.TakedownAccount()
	c.Notify(identityChangeBanNotice(c.Event.BestName()))
	return nil
}
