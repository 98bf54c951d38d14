package notify

import "github.com/goliatone/go-places/internal/places"

// EntryAnnouncer adapts the dispatcher to the submission lifecycle's
// SubmissionAnnouncer contract, binding it to the new-entry topic.
type EntryAnnouncer struct {
	dispatcher *Dispatcher
	topic      string
}

// NewEntryAnnouncer constructs an announcer publishing to the given topic.
func NewEntryAnnouncer(dispatcher *Dispatcher, topic string) *EntryAnnouncer {
	return &EntryAnnouncer{dispatcher: dispatcher, topic: topic}
}

var _ places.SubmissionAnnouncer = (*EntryAnnouncer)(nil)

// AnnounceNewEntry enqueues the new-entry notification without blocking.
func (a *EntryAnnouncer) AnnounceNewEntry(record *places.Place) {
	if a == nil || a.dispatcher == nil || record == nil {
		return
	}
	a.dispatcher.Enqueue(a.topic, NewEntryNotification(record))
}
