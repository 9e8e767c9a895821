package usecase

import "context"

// Mail is an outgoing message handed off for delivery.
type Mail struct {
	To       string
	Subject  string
	HTMLBody string
}

// MailEnqueuer abstracts the durable outbox so use cases never block a request
// on SMTP. Delivery happens after the response, on the dispatcher's schedule.
type MailEnqueuer interface {
	EnqueueMail(ctx context.Context, mail Mail) error
}
