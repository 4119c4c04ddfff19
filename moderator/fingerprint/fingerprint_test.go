package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groupwarden/groupwarden/moderator/event"
)

func TestFromMessage(t *testing.T) {
	assert := assert.New(t)

	fp := FromMessage(&event.Message{ID: "1", Text: "hello"})
	assert.NotNil(fp)
	assert.Equal(KindText, fp.Kind)
	assert.Equal("hello", fp.Ident)

	fp = FromMessage(&event.Message{ID: "2", Content: &event.ContentRef{Kind: "sticker", ID: "stk123"}})
	assert.NotNil(fp)
	assert.Equal(KindSticker, fp.Kind)
	assert.Equal("stk123", fp.Ident)

	fp = FromMessage(&event.Message{ID: "3", Text: "caption", Content: &event.ContentRef{Kind: "photo", ID: "ph9"}})
	assert.NotNil(fp)
	assert.Equal(KindPhoto, fp.Kind)
	assert.Equal("ph9", fp.Ident)

	// no comparable content
	assert.Nil(FromMessage(nil))
	assert.Nil(FromMessage(&event.Message{ID: "4"}))
	assert.Nil(FromMessage(&event.Message{ID: "5", Content: &event.ContentRef{Kind: "poll", ID: "p1"}}))
	assert.Nil(FromMessage(&event.Message{ID: "6", Content: &event.ContentRef{Kind: "photo"}}))
}

func TestEqual(t *testing.T) {
	assert := assert.New(t)

	a := &Fingerprint{Kind: KindText, Ident: "abc"}
	b := &Fingerprint{Kind: KindText, Ident: "abc"}
	c := &Fingerprint{Kind: KindSticker, Ident: "abc"}
	d := &Fingerprint{Kind: KindText, Ident: "Abc"}

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
	// case-sensitive, no normalization
	assert.False(a.Equal(d))

	var nilFP *Fingerprint
	assert.True(nilFP.Equal(nil))
	assert.False(a.Equal(nil))
	assert.False(nilFP.Equal(a))
}

func TestHashStable(t *testing.T) {
	assert := assert.New(t)

	a := &Fingerprint{Kind: KindText, Ident: "same"}
	b := &Fingerprint{Kind: KindText, Ident: "same"}
	assert.Equal(a.Hash(), b.Hash())
	assert.Len(a.Hash(), 16)

	c := &Fingerprint{Kind: KindSticker, Ident: "same"}
	assert.NotEqual(a.Hash(), c.Hash())
}
