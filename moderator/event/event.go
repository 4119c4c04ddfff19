package event

import (
	"time"
)

// Kind of inbound event, as resolved by the transport collaborator.
type Kind string

const (
	// A content message posted to the chat (text, sticker, media, etc).
	KindMessage = Kind("message")
	// An out-of-band profile/membership update signal, with no message payload.
	KindProfileUpdate = Kind("profile-update")
)

// Annotation types on rich-text message spans. Only link-ish annotations are
// meaningful to the engine; everything else passes through untouched.
type AnnotationKind string

const (
	AnnotationURL      = AnnotationKind("url")
	AnnotationTextLink = AnnotationKind("text-link")
	AnnotationMention  = AnnotationKind("mention")
	AnnotationHashtag  = AnnotationKind("hashtag")
)

// A single rich-text annotation on a message body or media caption.
type Annotation struct {
	Kind AnnotationKind
}

// Reference to a non-text media payload attached to a message. The ID is a
// stable platform identifier for the media object, not the bytes themselves.
type ContentRef struct {
	// one of: "sticker", "animation", "photo"
	Kind string
	ID   string
}

// Reference to the message a command message replied to. Only populated when
// the transport observed an explicit reply relationship.
type ReplyRef struct {
	MessageID string
	// identity of the replied-to message's author
	Author string
	// presentable name for the author, when the transport has one
	AuthorName string
}

// Message payload of a content event.
//
// Events are both containers for data about the event itself (similar to an
// HTTP request type) and the unit of decision: one inbound event produces at
// most one action plan.
type Message struct {
	ID string
	// message text, or media caption when Content is set
	Text        string
	Annotations []Annotation
	Content     *ContentRef
	ReplyTo     *ReplyRef
}

// Last-known (or currently observed) identity fields for a user. Either field
// may be empty; an empty handle is common for users without one.
type Profile struct {
	DisplayName string
	Handle      string
}

// A single inbound per-user event, abstracted away from any chat platform.
//
// The transport collaborator is responsible for resolving Privileged via a
// chat-admin lookup before handing the event to the engine; if that lookup
// fails it must pass false (fail safe to non-privileged).
type Event struct {
	// opaque user identity of the acting user (unique key for all state)
	Actor string
	// opaque chat identity; single-community deployments see one value
	Chat string
	Time time.Time
	Kind Kind
	// set iff Kind == KindMessage
	Message *Message
	// currently observed identity fields, when the transport has them
	Profile    *Profile
	Privileged bool
}

// BestName returns the most presentable name for the event's actor, for use
// in notices. Always "@"-prefixed, even when falling back to the display name
// or the raw identity.
func (ev *Event) BestName() string {
	if ev.Profile != nil {
		if ev.Profile.Handle != "" {
			return "@" + ev.Profile.Handle
		}
		if ev.Profile.DisplayName != "" {
			return "@" + ev.Profile.DisplayName
		}
	}
	return "@" + ev.Actor
}

// HasLink reports whether any annotation marks a hyperlink or clickable URL
// span. Applies equally to caption annotations on media messages.
func (m *Message) HasLink() bool {
	for _, a := range m.Annotations {
		if a.Kind == AnnotationURL || a.Kind == AnnotationTextLink {
			return true
		}
	}
	return false
}

// PlainText reports whether the message is a plain text message (no media
// payload) with a non-empty body.
func (m *Message) PlainText() bool {
	return m.Content == nil && m.Text != ""
}
