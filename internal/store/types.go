package store

// Chat is an imported conversation.
type Chat struct {
	ID   int64
	Name string
}

// ChatInfo is a chat together with its stored message count.
type ChatInfo struct {
	ID       int64
	Name     string
	Messages int64
}

// Message is a stored chat message. Date is the export's timestamp string
// kept verbatim. Sender is nil for system and annotation lines, which the
// export carries without a display name; nil must never be conflated with
// an empty name. Attachment points at an attachments row when the message
// carried media.
type Message struct {
	ID         int64
	Date       string
	Sender     *string
	Message    string
	Attachment *int64
	Chat       int64
}

// Attachment is one occurrence of a file in a message. Several attachments
// may share one files row when their bytes are identical.
type Attachment struct {
	ID   int64
	File string
	Name string
}
