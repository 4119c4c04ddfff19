package rules

import (
	"fmt"

	"github.com/groupwarden/groupwarden/moderator/userstore"
)

// Notice texts broadcast alongside punitive actions. The default deployment
// serves an Arabic-language community; texts follow the community's tone.

func spamWarningNotice(name string, warnings int) string {
	return fmt.Sprintf("⚠️ تحذير للمستخدم: %s\n📌 يمنع تكرار الرسائل أو الاستيكرات أكثر من %d مرات.\nالتحذير رقم: %d/%d",
		name, userstore.SpamRepeatThreshold, warnings, userstore.SpamWarningLimit)
}

func spamBanNotice(name string) string {
	return fmt.Sprintf("🚫 تم طرد المستخدم %s وحذف كافة رسائله.\n📌 السبب: تكرار السبام (التكرار) بشكل مفرط رغم التحذيرات المتتالية.", name)
}

func linkWarningNotice(name string) string {
	return fmt.Sprintf("📌 لا ترسل روابط هنا 🚫\nكررها = طرد وحذف رسائل 🚪\n\nالمستخدم: %s", name)
}

func linkBanNotice(name string) string {
	return fmt.Sprintf("🚫 تم طرد المستخدم %s وحذف رسائله.\nالسبب: تكرار إرسال الروابط رغم التحذير.", name)
}

func vocabularyBanNotice(name string) string {
	return fmt.Sprintf("🚫 تم طرد المستخدم %s وحذف رسائله.\n📌 السبب: استخدام كلمات مسيئة وغير لائقة.", name)
}

func identityChangeBanNotice(name string) string {
	return fmt.Sprintf("🚫 تم طرد وحظر المستخدم %s وحذف رسائله.\n📌 السبب: تغيير الاسم أو المعرف (Username) ممنوع.", name)
}
