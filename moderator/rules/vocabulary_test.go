package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularySingleStrike(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	_, err := eng.ProcessMessage(ctx, textEvent("user-a", "m1", "an ordinary message"))
	require.NoError(t, err)

	plan, err := eng.ProcessMessage(ctx, textEvent("user-a", "m2", "what a badword to use"))
	require.NoError(t, err)
	assert.Equal("user-a", plan.BanIdentity)
	assert.ElementsMatch([]string{"m1", "m2"}, plan.DeleteMessageIDs)
	require.Len(t, plan.Notices, 1)

	rec, err := eng.Users.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(rec.MessageLedger)
}

func TestVocabularySubstringMatch(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	// no word-boundary requirement: embedded occurrences match
	plan, err := eng.ProcessMessage(ctx, textEvent("user-a", "m1", "xxbadwordxx"))
	require.NoError(t, err)
	assert.Equal("user-a", plan.BanIdentity)
}

func TestVocabularyCaseSensitive(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	plan, err := eng.ProcessMessage(ctx, textEvent("user-a", "m1", "BADWORD"))
	require.NoError(t, err)
	assert.True(plan.Empty())
}

func TestVocabularySkipsMediaCaptions(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	eng := engineFixture()

	// only plain text messages are checked; captions pass through
	ev := stickerEvent("user-a", "m1", "sticker-1")
	ev.Message.Text = "badword caption"
	plan, err := eng.ProcessMessage(ctx, ev)
	require.NoError(t, err)
	assert.True(plan.Empty())
}
