package model

// NotificationKind identifies which template produced a message.
type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "order_confirmation"
	NotificationAdminAlert   NotificationKind = "order_alert"
	NotificationReply        NotificationKind = "order_reply"
)

// Message is a fully composed email ready for the transport.
type Message struct {
	Kind        NotificationKind
	Reference   string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Attachment is an in-memory file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}
