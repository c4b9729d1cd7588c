// Package queue defines the chat message payloads exchanged over the
// message broker and the consumer that answers them.
package queue

// IncomingMessage is one chat message from the messaging gateway.  Sender
// identifies the conversation partner across messages; it keys the city
// memory and the search history.
type IncomingMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	SentAt string `json:"sent_at"`
}

// OutgoingReply is the service's answer, published for the gateway to
// deliver.  Strategy and EventCount ride along for downstream analytics;
// the gateway only needs Text.
type OutgoingReply struct {
	Sender     string `json:"sender"`
	Text       string `json:"text"`
	Strategy   string `json:"strategy,omitempty"`
	EventCount int    `json:"event_count"`
	RepliedAt  string `json:"replied_at"`
}
