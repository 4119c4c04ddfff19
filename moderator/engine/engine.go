package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/groupwarden/groupwarden/moderator/activity"
	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/groupwarden/groupwarden/moderator/userstore"
	"github.com/groupwarden/groupwarden/moderator/wordset"
)

// runtime for executing rules, managing per-user state, and emitting action
// plans. The engine is a pure decision function over (event, stored state):
// executing a returned plan (deletes, bans, notices) is the transport
// collaborator's responsibility, and per-call delivery failures must never be
// fed back as input to later decisions.
//
// There are no fatal errors inside the engine: every evaluation produces some
// plan (possibly empty) and completes. Returned errors are for caller-side
// logging only and never invalidate the returned plan.
type Engine struct {
	Logger   *slog.Logger
	Rules    RuleSet
	Users    userstore.UserStore
	Activity activity.ActivityStore
	// disallowed vocabulary; nil disables the vocabulary rule
	Words *wordset.WordSet

	// process-wide chat lock gate
	chatLocked bool
	lockMu     sync.Mutex

	// per-identity mutual exclusion: no two evaluations for the same actor
	// may interleave; distinct actors process concurrently
	userLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewEngine(logger *slog.Logger, rules RuleSet, users userstore.UserStore, act activity.ActivityStore, words *wordset.WordSet) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Logger:    logger,
		Rules:     rules,
		Users:     users,
		Activity:  act,
		Words:     words,
		userLocks: xsync.NewMapOf[string, *sync.Mutex](),
	}
}

func (eng *Engine) lockIdentity(identity string) func() {
	mu, _ := eng.userLocks.LoadOrStore(identity, &sync.Mutex{})
	mu.Lock()
	return mu.Unlock
}

// Locked reports whether the process-wide chat lock gate is active.
func (eng *Engine) Locked() bool {
	eng.lockMu.Lock()
	defer eng.lockMu.Unlock()
	return eng.chatLocked
}

// SetLocked flips the chat lock gate. Privilege checking is the caller's
// responsibility (see the commands dispatcher).
func (eng *Engine) SetLocked(locked bool) {
	eng.lockMu.Lock()
	defer eng.lockMu.Unlock()
	eng.chatLocked = locked
}

// ProcessMessage evaluates a single content message event and returns the
// action plan for it. State mutations are committed before return,
// independent of whether the caller manages to execute the plan.
func (eng *Engine) ProcessMessage(ctx context.Context, ev *event.Event) (plan *ActionPlan, outErr error) {
	// similar to an HTTP server, we want to recover any panics from rule execution
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("moderation rule execution exception", "err", r, "eventKind", "message")
			plan = &ActionPlan{}
		}
	}()
	start := time.Now()
	defer func() {
		eventProcessDuration.WithLabelValues("message").Observe(time.Since(start).Seconds())
	}()
	eventProcessCount.WithLabelValues("message").Inc()

	if ev == nil || ev.Kind != event.KindMessage || ev.Message == nil || ev.Message.ID == "" || ev.Actor == "" {
		// malformed event shape: allow, no state change
		eng.Logger.Warn("ignoring invalid message event")
		eventInvalidCount.WithLabelValues("message").Inc()
		return &ActionPlan{}, nil
	}

	// chat lock gate: suppress non-privileged content before any rule runs.
	// Deletion is attempted by the transport; its failure is swallowed there.
	if eng.Locked() && !ev.Privileged {
		eventSuppressedCount.Inc()
		return &ActionPlan{DeleteMessageIDs: []string{ev.Message.ID}}, nil
	}

	unlock := eng.lockIdentity(ev.Actor)
	defer unlock()

	rec, err := eng.Users.GetOrCreate(ctx, ev.Actor)
	if err != nil {
		eng.Logger.Error("user state lookup failed", "err", err, "actor", ev.Actor)
		eventErrorCount.WithLabelValues("message").Inc()
		return &ActionPlan{}, err
	}

	c := NewMessageContext(ctx, eng, ev, rec)
	// privileged actors are exempt from all rules
	if !ev.Privileged {
		if err := eng.Rules.CallMessageRules(&c); err != nil {
			eng.Logger.Error("rule execution failed", "err", err, "actor", ev.Actor)
			eventErrorCount.WithLabelValues("message").Inc()
			return &ActionPlan{}, err
		}
	}
	if c.Err != nil {
		eng.Logger.Warn("non-fatal error during rule evaluation", "err", c.Err, "actor", ev.Actor)
	}

	plan, err = eng.commit(&c.AccountContext, ev.Message)
	if err != nil {
		eventErrorCount.WithLabelValues("message").Inc()
		return plan, err
	}
	eng.canonicalLogLine(&c.AccountContext)
	return plan, nil
}

// ProcessProfileUpdate evaluates an out-of-band membership/profile-update
// signal. There is no message payload; if the identity-change rule fires, the
// ban still executes with no message to delete.
func (eng *Engine) ProcessProfileUpdate(ctx context.Context, ev *event.Event) (plan *ActionPlan, outErr error) {
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("moderation rule execution exception", "err", r, "eventKind", "profile-update")
			plan = &ActionPlan{}
		}
	}()
	start := time.Now()
	defer func() {
		eventProcessDuration.WithLabelValues("profile-update").Observe(time.Since(start).Seconds())
	}()
	eventProcessCount.WithLabelValues("profile-update").Inc()

	if ev == nil || ev.Kind != event.KindProfileUpdate || ev.Profile == nil || ev.Actor == "" {
		eng.Logger.Warn("ignoring invalid profile-update event")
		eventInvalidCount.WithLabelValues("profile-update").Inc()
		return &ActionPlan{}, nil
	}

	unlock := eng.lockIdentity(ev.Actor)
	defer unlock()

	rec, err := eng.Users.GetOrCreate(ctx, ev.Actor)
	if err != nil {
		eng.Logger.Error("user state lookup failed", "err", err, "actor", ev.Actor)
		eventErrorCount.WithLabelValues("profile-update").Inc()
		return &ActionPlan{}, err
	}

	c := NewAccountContext(ctx, eng, ev, rec)
	if !ev.Privileged {
		if err := eng.Rules.CallIdentityRules(&c); err != nil {
			eng.Logger.Error("rule execution failed", "err", err, "actor", ev.Actor)
			eventErrorCount.WithLabelValues("profile-update").Inc()
			return &ActionPlan{}, err
		}
	}
	if c.Err != nil {
		eng.Logger.Warn("non-fatal error during rule evaluation", "err", c.Err, "actor", ev.Actor)
	}

	plan, err = eng.commit(&c, nil)
	if err != nil {
		eventErrorCount.WithLabelValues("profile-update").Inc()
		return plan, err
	}
	eng.canonicalLogLine(&c)
	return plan, nil
}

// TakedownAccount bans and purges a user outside of rule evaluation (used by
// the privileged command dispatcher). The returned plan carries the ban, the
// full ledger deletion, and the provided notices.
func (eng *Engine) TakedownAccount(ctx context.Context, identity string, notices ...Notice) (*ActionPlan, error) {
	unlock := eng.lockIdentity(identity)
	defer unlock()

	rec, err := eng.Users.GetOrCreate(ctx, identity)
	if err != nil {
		eng.Logger.Error("user state lookup failed", "err", err, "actor", identity)
		return &ActionPlan{}, err
	}
	plan := &ActionPlan{
		DeleteMessageIDs: append([]string{}, rec.MessageLedger...),
		BanIdentity:      identity,
		Notices:          notices,
	}
	if err := eng.Users.Purge(ctx, identity); err != nil {
		eng.Logger.Error("purging user state failed", "err", err, "actor", identity)
		return plan, err
	}
	actionTakedownCount.WithLabelValues("command").Inc()
	return plan, nil
}

func (eng *Engine) canonicalLogLine(c *AccountContext) {
	if !c.effects.Triggered() {
		return
	}
	c.Logger.Info("rule fired",
		"rule", c.effects.TriggeredRule,
		"deletes", len(c.effects.DeleteMessageIDs),
		"ban", c.effects.BanAccount,
		"purge", c.effects.PurgeAccount,
		"notices", len(c.effects.Notices),
	)
}
