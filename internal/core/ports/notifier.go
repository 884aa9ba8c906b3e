package ports

import "context"

// Notification template identifiers understood by the email service.
const (
	TemplateUserBanned     = "user_banned"
	TemplateUserUnbanned   = "user_unbanned"
	TemplatePhotoRejected  = "photo_rejected"
	TemplateContentRemoved = "content_removed"
)

// Notifier delivers side-channel notifications to affected users. Delivery is
// best-effort: implementations log failures and never surface them, which is
// why Send has no error return.
type Notifier interface {
	Send(ctx context.Context, to, template string, tmplCtx map[string]string)
}
