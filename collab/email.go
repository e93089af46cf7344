// Package collab holds the outbound collaborator contracts of the engine:
// email, in-app notifications, the telegram bot endpoint and arbitrary
// webhooks. Transports themselves live outside this repository; only the
// call contracts matter to the engine.
package collab

type EmailOptions struct {
	Cc       []string
	RecordId string
}

type EmailResult struct {
	Id        string `json:"id"`
	MessageId string `json:"messageId,omitempty"`
}

// EmailSender is the "send from template" contract of the email collaborator.
type EmailSender interface {
	SendFromTemplate(templateId string, recipients []string, data map[string]any, actingUserId string, opts EmailOptions) (*EmailResult, error)
}
