package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/groupwarden/groupwarden/moderator"
	"github.com/groupwarden/groupwarden/moderator/activity"
	"github.com/groupwarden/groupwarden/moderator/event"
)

// Replies for non-privileged users attempting a privileged command as a reply.
var NotAuthorizedReplies = []string{
	"هذا الامر فقط من الادمن أنت مو admin 😏",
	"أنت مو ادمن حبيبي 😉",
	"ننظر بقضيتك 🤧",
	"صرت أدمن ومادري 🙂",
	"نخابرك نخابرك فيما بعد 😆",
	"لا تلح 😏",
	"حاول مره اخره😂😝",
}

// Replies confirming a kick, chosen at random.
var KickReplies = []string{
	"طردته😁🙊",
	"اطلع بره😎",
}

const (
	lockConfirmText   = "🔒 تم إغلاق الدردشة بنجاح."
	unlockConfirmText = "🔓 تم فتح الدردشة بنجاح."
	emptyReportText   = "لا يوجد تفاعل."
)

// Dispatcher turns management command messages into action plans. It sits
// beside the rule engine, not inside it: the transport feeds every message
// through the engine first and then offers it here.
type Dispatcher struct {
	Logger *slog.Logger
	Engine *moderator.Engine

	// window and size of the activity report
	ActivityWindow time.Duration
	ReportSize     int

	// randomized reply selection; swapped for a deterministic pick in tests
	pick func(n int) int
}

func NewDispatcher(logger *slog.Logger, eng *moderator.Engine) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		Logger:         logger,
		Engine:         eng,
		ActivityWindow: 7 * 24 * time.Hour,
		ReportSize:     10,
		pick:           rand.Intn,
	}
}

// Dispatch evaluates a message event as a potential management command. The
// second return is false when the message is not a command at all; in that
// case the plan is nil and the caller treats the message as ordinary content.
// A handled command always yields a plan, possibly empty (silently ignored
// commands produce an empty plan).
func (d *Dispatcher) Dispatch(ctx context.Context, ev *event.Event) (*moderator.ActionPlan, bool, error) {
	if ev == nil || ev.Kind != event.KindMessage || ev.Message == nil || ev.Message.Text == "" {
		return nil, false, nil
	}
	cmd, ok := Parse(ev.Message.Text)
	if !ok {
		return nil, false, nil
	}
	commandDispatchCount.WithLabelValues(string(cmd)).Inc()
	log := d.Logger.With("command", cmd, "actor", ev.Actor)

	switch cmd {
	case CmdLock, CmdUnlock:
		// lock commands from non-privileged users are ignored without feedback
		if !ev.Privileged {
			return &moderator.ActionPlan{}, true, nil
		}
		locked := cmd == CmdLock
		d.Engine.SetLocked(locked)
		text := unlockConfirmText
		if locked {
			text = lockConfirmText
		}
		log.Info("chat lock gate changed", "locked", locked)
		return &moderator.ActionPlan{
			Notices: []moderator.Notice{{Text: text}},
		}, true, nil

	case CmdActivityReport:
		if !ev.Privileged {
			return d.notAuthorized(ev), true, nil
		}
		counts, err := d.Engine.Activity.Rank(ctx, d.ActivityWindow, d.ReportSize)
		if err != nil {
			log.Error("activity ranking failed", "err", err)
			return &moderator.ActionPlan{}, true, err
		}
		return &moderator.ActionPlan{
			Notices: []moderator.Notice{{
				Text:             formatActivityReport(counts),
				ReplyToMessageID: ev.Message.ID,
			}},
		}, true, nil

	case CmdMute, CmdUnmute, CmdKick:
		// must target a replied-to message; ignored entirely otherwise,
		// regardless of actor privilege
		target := ev.Message.ReplyTo
		if target == nil {
			return &moderator.ActionPlan{}, true, nil
		}
		if !ev.Privileged {
			return d.notAuthorized(ev), true, nil
		}
		name := target.AuthorName
		if name == "" {
			name = target.Author
		}
		switch cmd {
		case CmdUnmute:
			log.Info("restoring permissions", "target", target.Author)
			return &moderator.ActionPlan{
				Restrict: &moderator.RestrictOp{Identity: target.Author, Access: moderator.RestrictFull},
				Notices: []moderator.Notice{{
					Text:             fmt.Sprintf("✅ تم رفع الكتم: @%s", name),
					ReplyToMessageID: ev.Message.ID,
				}},
			}, true, nil
		case CmdMute:
			log.Info("restricting to read-only", "target", target.Author)
			return &moderator.ActionPlan{
				Restrict: &moderator.RestrictOp{Identity: target.Author, Access: moderator.RestrictReadOnly},
				Notices: []moderator.Notice{{
					Text:             fmt.Sprintf("🔇 تم الكتم: @%s", name),
					ReplyToMessageID: ev.Message.ID,
				}},
			}, true, nil
		default: // CmdKick
			log.Info("kicking user", "target", target.Author)
			notice := moderator.Notice{
				Text:             fmt.Sprintf("%s: @%s", KickReplies[d.pick(len(KickReplies))], name),
				ReplyToMessageID: ev.Message.ID,
			}
			plan, err := d.Engine.TakedownAccount(ctx, target.Author, notice)
			return plan, true, err
		}
	}
	return nil, false, nil
}

func (d *Dispatcher) notAuthorized(ev *event.Event) *moderator.ActionPlan {
	return &moderator.ActionPlan{
		Notices: []moderator.Notice{{
			Text:             NotAuthorizedReplies[d.pick(len(NotAuthorizedReplies))],
			ReplyToMessageID: ev.Message.ID,
		}},
	}
}

func formatActivityReport(counts []activity.UserCount) string {
	if len(counts) == 0 {
		return emptyReportText
	}
	var b strings.Builder
	b.WriteString("📊 أكثر المتفاعلين (أسبوع):\n")
	for i, uc := range counts {
		fmt.Fprintf(&b, "\n%d. %s - %d", i+1, uc.Identity, uc.Count)
	}
	return b.String()
}
