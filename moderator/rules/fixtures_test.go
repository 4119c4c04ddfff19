package rules

import (
	"log/slog"
	"time"

	"github.com/groupwarden/groupwarden/moderator"
	"github.com/groupwarden/groupwarden/moderator/activity"
	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/groupwarden/groupwarden/moderator/userstore"
	"github.com/groupwarden/groupwarden/moderator/wordset"
)

func engineFixture() *moderator.Engine {
	users := userstore.NewMemUserStore(1000, time.Hour)
	act := activity.NewMemActivityStore()
	words := wordset.New([]string{"badword"})
	return moderator.NewEngine(slog.Default(), DefaultRules(), users, act, words)
}

func textEvent(actor, msgID, text string) *event.Event {
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

func stickerEvent(actor, msgID, stickerID string) *event.Event {
	ev := textEvent(actor, msgID, "")
	ev.Message.Content = &event.ContentRef{Kind: "sticker", ID: stickerID}
	return ev
}

func linkEvent(actor, msgID, text string) *event.Event {
	ev := textEvent(actor, msgID, text)
	ev.Message.Annotations = []event.Annotation{
		{Kind: event.AnnotationURL},
	}
	return ev
}
