package fingerprint

import (
	"fmt"

	"github.com/spaolacci/murmur3"

	"github.com/groupwarden/groupwarden/moderator/event"
)

// Kind of content a fingerprint was derived from.
type Kind string

const (
	KindText      = Kind("text")
	KindSticker   = Kind("sticker")
	KindAnimation = Kind("animation")
	KindPhoto     = Kind("photo")
)

// Fingerprint is a comparable digest of a message's payload, used for
// repetition detection. Two fingerprints are equal iff both Kind and Ident are
// equal; comparison is exact and case-sensitive, with no normalization.
type Fingerprint struct {
	Kind  Kind
	Ident string
}

// FromMessage derives a fingerprint from a message payload. Returns nil for
// messages that carry no comparable content (service messages, polls, etc);
// such messages are exempt from repetition checking.
func FromMessage(msg *event.Message) *Fingerprint {
	if msg == nil {
		return nil
	}
	if msg.Content != nil {
		var kind Kind
		switch msg.Content.Kind {
		case "sticker":
			kind = KindSticker
		case "animation":
			kind = KindAnimation
		case "photo":
			kind = KindPhoto
		default:
			return nil
		}
		if msg.Content.ID == "" {
			return nil
		}
		return &Fingerprint{Kind: kind, Ident: msg.Content.ID}
	}
	if msg.Text != "" {
		return &Fingerprint{Kind: KindText, Ident: msg.Text}
	}
	return nil
}

// Equal compares two (possibly nil) fingerprints.
func (f *Fingerprint) Equal(other *Fingerprint) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Kind == other.Kind && f.Ident == other.Ident
}

// Hash returns a fast, compact hash of the fingerprint, suitable for storage
// keys and log fields where the literal content would be noisy or large.
//
// current implementation uses murmur3, default seed, and hex encoding
func (f *Fingerprint) Hash() string {
	val := murmur3.Sum64([]byte(string(f.Kind) + ":" + f.Ident))
	return fmt.Sprintf("%016x", val)
}

func (f *Fingerprint) String() string {
	if f == nil {
		return "(none)"
	}
	return string(f.Kind) + "/" + f.Hash()
}
