package rules

import (
	"github.com/groupwarden/groupwarden/moderator"
	"github.com/groupwarden/groupwarden/moderator/userstore"
)

var _ moderator.MessageRuleFunc = LinkMessageRule

// LinkMessageRule fires when any rich-text annotation marks a hyperlink or
// clickable URL span, including caption annotations on media. The first link
// costs a deletion plus warning; the second costs a ban and full purge. Link
// detection is independent of text content, so a disallowed word co-occurring
// with a link is reported as a link violation (rule ordering).
func LinkMessageRule(c *moderator.MessageContext) error {
	if !c.Message.HasLink() {
		return nil
	}

	c.Trigger("link")
	c.DeleteTriggeringMessage()

	warnings := c.Account.LinkWarningCount + 1
	if warnings >= userstore.LinkWarningLimit {
		c.Logger.Info("repeated link violation, taking down account")
		c.TakedownAccount()
		c.Notify(linkBanNotice(c.Event.BestName()))
		return nil
	}

	c.SetLinkWarningCount(warnings)
	c.Notify(linkWarningNotice(c.Event.BestName()))
	return nil
}
