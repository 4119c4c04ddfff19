package rules

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepetitionWarningAtFifth(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	for i := 1; i <= 4; i++ {
		plan, err := eng.ProcessMessage(ctx, textEvent("user-a", fmt.Sprintf("m%d", i), "same thing"))
		require.NoError(t, err)
		assert.True(plan.Empty())
	}
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(4, rec.Spam.RepeatCount)
	assert.Equal(0, rec.Spam.WarningCount)

	// fifth identical message fires: delete plus warning, no ban yet
	plan, err := eng.ProcessMessage(ctx, textEvent("user-a", "m5", "same thing"))
	require.NoError(t, err)
	assert.Equal([]string{"m5"}, plan.DeleteMessageIDs)
	assert.Empty(plan.BanIdentity)
	require.Len(t, plan.Notices, 1)

	rec, err = eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(0, rec.Spam.RepeatCount)
	assert.Equal(1, rec.Spam.WarningCount)
	// the fired message is not ledgered
	assert.NotContains(rec.MessageLedger, "m5")
}

func TestRepetitionBanAtThirdWarning(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	var lastPlanBan string
	msgID := 0
	for warning := 1; warning <= 3; warning++ {
		for i := 1; i <= 5; i++ {
			msgID++
			plan, err := eng.ProcessMessage(ctx, textEvent("user-a", fmt.Sprintf("m%d", msgID), "same thing"))
			require.NoError(t, err)
			lastPlanBan = plan.BanIdentity
			if i < 5 {
				assert.True(plan.Empty())
			} else if warning < 3 {
				assert.Empty(plan.BanIdentity)
			} else {
				// third warning escalates to ban and full ledger purge
				assert.Equal("user-a", plan.BanIdentity)
				assert.Contains(plan.DeleteMessageIDs, fmt.Sprintf("m%d", msgID))
				assert.Contains(plan.DeleteMessageIDs, "m1")
			}
		}
	}
	assert.Equal("user-a", lastPlanBan)

	// record destroyed with the ban; a fresh run starts over
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(0, rec.Spam.WarningCount)
	assert.Empty(rec.MessageLedger)
}

func TestRepetitionRunResetsOnDifferingMessage(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	msgs := []string{"aaa", "aaa", "aaa", "bbb", "bbb", "bbb", "bbb"}
	for i, text := range msgs {
		plan, err := eng.ProcessMessage(ctx, textEvent("user-a", fmt.Sprintf("m%d", i+1), text))
		require.NoError(t, err)
		assert.True(plan.Empty())
	}
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	// the differing message counts as the first of the new run
	assert.Equal(4, rec.Spam.RepeatCount)

	// fifth "bbb" in a row fires
	plan, err := eng.ProcessMessage(ctx, textEvent("user-a", "m8", "bbb"))
	require.NoError(t, err)
	assert.Equal([]string{"m8"}, plan.DeleteMessageIDs)
	assert.Empty(plan.BanIdentity)
}

func TestRepetitionStickers(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	for i := 1; i <= 4; i++ {
		plan, err := eng.ProcessMessage(ctx, stickerEvent("user-a", fmt.Sprintf("m%d", i), "sticker-77"))
		require.NoError(t, err)
		assert.True(plan.Empty())
	}
	plan, err := eng.ProcessMessage(ctx, stickerEvent("user-a", "m5", "sticker-77"))
	require.NoError(t, err)
	assert.Equal([]string{"m5"}, plan.DeleteMessageIDs)

	// a different sticker restarts the run
	plan, err = eng.ProcessMessage(ctx, stickerEvent("user-a", "m6", "sticker-88"))
	require.NoError(t, err)
	assert.True(plan.Empty())
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(1, rec.Spam.RepeatCount)
}

func TestRepetitionCountsDuplicateDeliveries(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	// the engine is not idempotent per message ID: a duplicate delivery of
	// the same event advances the run like any other identical message
	plan, err := eng.ProcessMessage(ctx, textEvent("user-a", "m1", "same thing"))
	require.NoError(t, err)
	assert.True(plan.Empty())

	plan, err = eng.ProcessMessage(ctx, textEvent("user-a", "m1", "same thing"))
	require.NoError(t, err)
	assert.True(plan.Empty())

	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(2, rec.Spam.RepeatCount)
	assert.Equal([]string{"m1", "m1"}, rec.MessageLedger)
}

func TestRepetitionIgnoresNonComparableContent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	// no text and no media payload: exempt from repetition tracking
	for i := 1; i <= 10; i++ {
		plan, err := eng.ProcessMessage(ctx, textEvent("user-a", fmt.Sprintf("m%d", i), ""))
		require.NoError(t, err)
		assert.True(plan.Empty())
	}
	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(0, rec.Spam.RepeatCount)
	assert.Len(rec.MessageLedger, 10)
}
