// Keyword-based chat management commands, dispatched outside of rule
// evaluation. Commands are plain chat messages: lock/unlock keywords match the
// whole (trimmed) text exactly, while activity and user-management keywords
// match as substrings.
package commands

import (
	"strings"
)

type Command string

const (
	CmdLock           = Command("lock")
	CmdUnlock         = Command("unlock")
	CmdActivityReport = Command("activity-report")
	CmdMute           = Command("mute")
	CmdUnmute         = Command("unmute")
	CmdKick           = Command("kick")
)

// The default deployment serves an Arabic-language community; keyword sets
// include common spelling variants.
var (
	lockKeywords = []string{
		"اغلاق الدردشة", "اغلاق الدردشه", "غلق الدردشه", "اغلاق دردشه", "اغلاق دردشة",
		"غلق دردشه", "طفي الدردشه", "طفي دردشه", "طفي دردشة", "طفي الدردشة",
	}
	unlockKeywords = []string{
		"فتح الدردشة", "فتح الدردشه", "فتح دردشه", "فتح دردشة",
		"تشغيل الدردشه", "تشغيل الدردشة", "تشغيل دردشة", "تشغيل دردشه",
	}
	activityKeywords = []string{"المتفاعلين", "تفاعل"}

	// "unmute" must be checked before "mute": one unmute variant contains the
	// mute keyword as a substring
	unmuteKeywords = []string{"رفع", "ارفع", "حذف كتم"}
	muteKeywords   = []string{"كتم", "اكتمه", "سكته"}
	kickKeywords   = []string{"طرد", "اطرده", "اطلع بره"}
)

func exactMatch(text string, keywords []string) bool {
	for _, kw := range keywords {
		if text == kw {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Parse classifies a message text as a management command. The second return
// is false for ordinary chat content.
func Parse(text string) (Command, bool) {
	trimmed := strings.TrimSpace(text)
	if exactMatch(trimmed, lockKeywords) {
		return CmdLock, true
	}
	if exactMatch(trimmed, unlockKeywords) {
		return CmdUnlock, true
	}

	lower := strings.ToLower(text)
	if containsAny(lower, activityKeywords) {
		return CmdActivityReport, true
	}
	if containsAny(lower, unmuteKeywords) {
		return CmdUnmute, true
	}
	if containsAny(lower, muteKeywords) {
		return CmdMute, true
	}
	if containsAny(lower, kickKeywords) {
		return CmdKick, true
	}
	return "", false
}
