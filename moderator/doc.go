// Moderation decision engine for a single chat community.
//
// This package (`github.com/groupwarden/groupwarden/moderator`) contains a
// "rules engine" which consumes abstract per-user events (message posted,
// profile changed) and decides whether to allow, warn, or escalate to
// punitive action (delete, mute, ban). Rules run in fixed priority order over
// accumulating per-user behavioral state (repetition counters, warning
// counts, message ledgers, identity snapshots); the first rule to fire stops
// further evaluation and its proposed effects are committed as a single
// action plan. Executing a plan against the actual chat platform is the
// transport collaborator's job.
//
// See `cmd/groupwarden` for a daemon built on this package.
package moderator
