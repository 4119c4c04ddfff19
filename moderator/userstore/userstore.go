package userstore

import (
	"context"
	"time"

	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/groupwarden/groupwarden/moderator/fingerprint"
)

// Maximum number of message references retained per user. Oldest entries are
// evicted first when the ledger overflows.
const MaxLedgerSize = 50

// Escalation thresholds for the warning state machine.
const (
	// identical-fingerprint run length that triggers a spam strike
	SpamRepeatThreshold = 5
	// spam strikes before the user is banned and purged
	SpamWarningLimit = 3
	// link strikes before the user is banned and purged
	LinkWarningLimit = 2
)

// Mutable repetition-detection state for one user.
type SpamState struct {
	LastFingerprint *fingerprint.Fingerprint `json:"last_fingerprint,omitempty"`
	// length of the current identical-fingerprint run
	RepeatCount int `json:"repeat_count"`
	// spam strikes accumulated; never decrements (0..=3)
	WarningCount int `json:"warning_count"`
}

// All per-user mutable moderation state. Created lazily on the first observed
// event for an identity, destroyed when a ban/purge completes.
type UserRecord struct {
	Identity string `json:"identity"`
	// most recent message IDs, oldest first, length always <= MaxLedgerSize
	MessageLedger []string `json:"message_ledger,omitempty"`
	// last-known identity fields; nil until first observed
	IdentitySnapshot *event.Profile `json:"identity_snapshot,omitempty"`
	Spam             SpamState      `json:"spam"`
	// link strikes accumulated; never decrements (0..=2)
	LinkWarningCount int `json:"link_warning_count"`
}

// NewUserRecord returns a fresh zero-valued record for the identity.
func NewUserRecord(identity string) *UserRecord {
	return &UserRecord{Identity: identity}
}

// AppendMessage records a message reference in the ledger, trimming the oldest
// entries past MaxLedgerSize.
func (r *UserRecord) AppendMessage(id string) {
	r.MessageLedger = append(r.MessageLedger, id)
	if len(r.MessageLedger) > MaxLedgerSize {
		r.MessageLedger = r.MessageLedger[len(r.MessageLedger)-MaxLedgerSize:]
	}
}

// Keyed store of per-user moderation state.
//
// Implementations do not need to serialize access themselves: the engine
// guarantees that no two operations for the same identity run concurrently.
// Records for users that never escalate may be garbage-collected by the
// backend (TTL or LRU eviction); that only loses warning history, never
// produces incorrect escalations.
type UserStore interface {
	// GetOrCreate returns the stored record for the identity, or a fresh
	// zero-valued record if none exists. Missing keys are never an error.
	GetOrCreate(ctx context.Context, identity string) (*UserRecord, error)
	// Update persists the record (and refreshes any backend TTL).
	Update(ctx context.Context, rec *UserRecord) error
	// Purge removes all state for the identity. Purging an unknown identity
	// is a no-op.
	Purge(ctx context.Context, identity string) error
}

// Default retention for idle user records, shared by the mem and redis
// backends.
const DefaultRecordTTL = 14 * 24 * time.Hour
