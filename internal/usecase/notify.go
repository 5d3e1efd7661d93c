package usecase

import "github.com/polkiloo/storefront/internal/domain/model"

// Notifier accepts composed messages for background delivery.
type Notifier interface {
	Enqueue(msg model.Message) error
}

// MessageComposer renders the emails triggered by order lifecycle events.
type MessageComposer interface {
	Confirmation(order *model.Order) (model.Message, error)
	AdminAlert(order *model.Order) (model.Message, error)
	Reply(order *model.Order, subject, message string, attachments []model.Attachment) (model.Message, error)
}
