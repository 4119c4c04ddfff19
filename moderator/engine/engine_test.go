package engine

import (
	"context"
	"testing"
	"time"

	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleMessageEvent(actor, msgID, text string) *event.Event {
	return &event.Event{
		Actor: actor,
		Chat:  "chat-1",
		Time:  time.Now(),
		Kind:  event.KindMessage,
		Message: &event.Message{
			ID:   msgID,
			Text: text,
		},
		Profile: &event.Profile{
			DisplayName: "Some User",
			Handle:      "someuser",
		},
	}
}

func TestEngineRecordOnAllow(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	plan, err := eng.ProcessMessage(ctx, simpleMessageEvent("user-a", "m1", "hello"))
	require.NoError(t, err)
	assert.True(plan.Empty())

	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal([]string{"m1"}, rec.MessageLedger)
	require.NotNil(t, rec.IdentitySnapshot)
	assert.Equal("someuser", rec.IdentitySnapshot.Handle)

	counts, err := eng.Activity.Rank(ctx, time.Hour, 10)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal("user-a", counts[0].Identity)
	assert.Equal(1, counts[0].Count)
}

func TestEngineTakedownPlanIncludesLedger(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	_, err := eng.ProcessMessage(ctx, simpleMessageEvent("user-a", "m1", "one"))
	require.NoError(t, err)
	_, err = eng.ProcessMessage(ctx, simpleMessageEvent("user-a", "m2", "two"))
	require.NoError(t, err)

	plan, err := eng.ProcessMessage(ctx, simpleMessageEvent("user-a", "m3", "takedown-me"))
	require.NoError(t, err)
	assert.Equal("user-a", plan.BanIdentity)
	assert.ElementsMatch([]string{"m1", "m2", "m3"}, plan.DeleteMessageIDs)
	assert.Len(plan.Notices, 1)

	// record destroyed; a later lookup starts fresh
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(rec.MessageLedger)

	// the fired event itself is not recorded as activity
	counts, err := eng.Activity.Rank(ctx, time.Hour, 10)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(2, counts[0].Count)
}

func TestEngineLockGate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	assert.False(eng.Locked())
	eng.SetLocked(true)
	assert.True(eng.Locked())

	// non-privileged content is suppressed with zero state recorded
	plan, err := eng.ProcessMessage(ctx, simpleMessageEvent("user-a", "m1", "hello"))
	require.NoError(t, err)
	assert.Equal([]string{"m1"}, plan.DeleteMessageIDs)
	assert.Empty(plan.BanIdentity)
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(rec.MessageLedger)

	// privileged content passes the gate and is recorded normally
	evp := simpleMessageEvent("admin-1", "m2", "hello")
	evp.Privileged = true
	plan, err = eng.ProcessMessage(ctx, evp)
	require.NoError(t, err)
	assert.True(plan.Empty())
	rec, err = eng.Users.GetOrCreate(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal([]string{"m2"}, rec.MessageLedger)

	eng.SetLocked(false)
	plan, err = eng.ProcessMessage(ctx, simpleMessageEvent("user-a", "m3", "hello"))
	require.NoError(t, err)
	assert.True(plan.Empty())
}

func TestEnginePrivilegedExemptFromRules(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	ev := simpleMessageEvent("admin-1", "m1", "takedown-me")
	ev.Privileged = true
	plan, err := eng.ProcessMessage(ctx, ev)
	require.NoError(t, err)
	assert.True(plan.Empty())

	// state recording still happens for privileged actors
	rec, err := eng.Users.GetOrCreate(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal([]string{"m1"}, rec.MessageLedger)
}

func TestEngineInvalidEvents(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	for _, ev := range []*event.Event{
		nil,
		{Kind: event.KindMessage},
		{Actor: "user-a", Kind: event.KindMessage},
		{Actor: "user-a", Kind: event.KindMessage, Message: &event.Message{Text: "no id"}},
		{Actor: "user-a", Kind: event.KindProfileUpdate, Profile: &event.Profile{Handle: "x"}},
	} {
		plan, err := eng.ProcessMessage(ctx, ev)
		assert.NoError(err)
		assert.True(plan.Empty())
	}

	for _, ev := range []*event.Event{
		nil,
		{Kind: event.KindProfileUpdate},
		{Actor: "user-a", Kind: event.KindProfileUpdate},
		{Actor: "user-a", Kind: event.KindMessage, Message: &event.Message{ID: "m1"}},
	} {
		plan, err := eng.ProcessProfileUpdate(ctx, ev)
		assert.NoError(err)
		assert.True(plan.Empty())
	}
}

func TestEngineTakedownAccountCommand(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	_, err := eng.ProcessMessage(ctx, simpleMessageEvent("user-b", "m1", "one"))
	require.NoError(t, err)
	_, err = eng.ProcessMessage(ctx, simpleMessageEvent("user-b", "m2", "two"))
	require.NoError(t, err)

	plan, err := eng.TakedownAccount(ctx, "user-b", Notice{Text: "bye"})
	require.NoError(t, err)
	assert.Equal("user-b", plan.BanIdentity)
	assert.ElementsMatch([]string{"m1", "m2"}, plan.DeleteMessageIDs)
	require.Len(t, plan.Notices, 1)
	assert.Equal("bye", plan.Notices[0].Text)

	rec, err := eng.Users.GetOrCreate(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(rec.MessageLedger)
}

func TestEngineProfileUpdateRefreshesSnapshot(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := EngineTestFixture()

	ev := &event.Event{
		Actor:   "user-c",
		Chat:    "chat-1",
		Time:    time.Now(),
		Kind:    event.KindProfileUpdate,
		Profile: &event.Profile{DisplayName: "First Name", Handle: "first"},
	}
	plan, err := eng.ProcessProfileUpdate(ctx, ev)
	require.NoError(t, err)
	assert.True(plan.Empty())

	rec, err := eng.Users.GetOrCreate(ctx, "user-c")
	require.NoError(t, err)
	require.NotNil(t, rec.IdentitySnapshot)
	assert.Equal("first", rec.IdentitySnapshot.Handle)
}
