package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const defaultContentType = "application/octet-stream"

// AdminUpdate is an operator edit of a single order. Nil fields are left untouched.
// Notes doubles as the history note when Status is set.
type AdminUpdate struct {
	Status        *model.OrderStatus
	Notes         *string
	CustomNotes   *string
	PaymentStatus *model.PaymentStatus
	DepositAmount *decimal.Decimal
}

// ReplyAttachment is a file supplied with an operator reply.
type ReplyAttachment struct {
	Filename string
	Content  string
	Encoding string
}

// ReplyRequest is a free-form email from the operator to the customer.
type ReplyRequest struct {
	Subject     string
	Message     string
	Attachments []ReplyAttachment
}

// AdminUseCase backs the operator back office.
type AdminUseCase struct {
	orders             repository.OrderRepository
	engine             *StatusEngine
	composer           MessageComposer
	notifier           Notifier
	logger             *slog.Logger
	maxAttachmentBytes int
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(
	orders repository.OrderRepository,
	engine *StatusEngine,
	composer MessageComposer,
	notifier Notifier,
	cfg *config.Config,
	logger *slog.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		orders:             orders,
		engine:             engine,
		composer:           composer,
		notifier:           notifier,
		logger:             logger,
		maxAttachmentBytes: cfg.MaxAttachmentBytes,
	}
}

// Get returns the full order document.
func (u *AdminUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	if !validOrderID(id) {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByID(ctx, id)
}

// Update applies a status transition (if requested) and detail edits in a single
// store write. Without any field set the order is returned unchanged.
func (u *AdminUseCase) Update(ctx context.Context, id string, upd AdminUpdate) (*model.Order, error) {
	if !validOrderID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domainErrors.NewValidationError("status", fmt.Sprintf("unknown status %q", *upd.Status))
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		return nil, domainErrors.NewValidationError("paymentStatus", fmt.Sprintf("unknown payment status %q", *upd.PaymentStatus))
	}
	if upd.DepositAmount != nil && upd.DepositAmount.IsNegative() {
		return nil, domainErrors.NewValidationError("depositAmount", "must not be negative")
	}

	details := model.OrderUpdate{
		Notes:         upd.Notes,
		CustomNotes:   upd.CustomNotes,
		PaymentStatus: upd.PaymentStatus,
		DepositAmount: upd.DepositAmount,
	}

	switch {
	case upd.Status != nil:
		var note string
		if upd.Notes != nil {
			note = *upd.Notes
		}
		return u.engine.transition(ctx, id, *upd.Status, note, model.TriggeredByAdmin, details)
	case !details.IsEmpty():
		return u.orders.UpdateDetails(ctx, id, details)
	default:
		return u.orders.GetByID(ctx, id)
	}
}

// Reply composes a free-form email to the order's customer and queues it.
// Status and history are not touched.
func (u *AdminUseCase) Reply(ctx context.Context, id string, req ReplyRequest) error {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domainErrors.NewValidationError("subject", "is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return domainErrors.NewValidationError("message", "is required")
	}

	attachments, err := u.decodeAttachments(req.Attachments)
	if err != nil {
		return err
	}

	order, err := u.Get(ctx, id)
	if err != nil {
		return err
	}

	msg, err := u.composer.Reply(order, subject, req.Message, attachments)
	if err != nil {
		return fmt.Errorf("%w: compose reply: %w", domainErrors.ErrNotification, err)
	}
	if err := u.notifier.Enqueue(msg); err != nil {
		u.logger.Error("enqueue order reply",
			slog.String("order_id", order.ID),
			slog.String("reference", order.Reference),
			slog.String("error", err.Error()),
		)
		return err
	}

	u.logger.Info("order reply queued",
		slog.String("order_id", order.ID),
		slog.String("reference", order.Reference),
		slog.Int("attachments", len(attachments)),
	)
	return nil
}

// List returns orders matching filter, newest first. A search holding a complete
// order reference is answered by reference lookup.
func (u *AdminUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domainErrors.NewValidationError("status", fmt.Sprintf("unknown status %q", *filter.Status))
	}
	filter.Email = strings.TrimSpace(filter.Email)
	filter.Search = strings.TrimSpace(filter.Search)

	if ref := NormalizeReference(filter.Search); ValidReference(ref) {
		return u.findByReference(ctx, ref, filter)
	}
	return u.orders.List(ctx, filter)
}

// findByReference serves a search that is a full order reference with a direct lookup.
func (u *AdminUseCase) findByReference(ctx context.Context, reference string, filter model.OrderFilter) ([]model.Order, error) {
	order, err := u.orders.GetByReference(ctx, reference)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if filter.Offset > 0 ||
		(filter.Status != nil && order.Status != *filter.Status) ||
		(filter.Email != "" && !strings.EqualFold(order.Customer.Email, filter.Email)) {
		return nil, nil
	}
	return []model.Order{*order}, nil
}

// Stats returns dashboard counters.
func (u *AdminUseCase) Stats(ctx context.Context) (*model.OrderStats, error) {
	return u.orders.Stats(ctx)
}

func (u *AdminUseCase) decodeAttachments(in []ReplyAttachment) ([]model.Attachment, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make([]model.Attachment, 0, len(in))
	for i, a := range in {
		field := fmt.Sprintf("attachments[%d]", i)

		name := filepath.Base(strings.TrimSpace(a.Filename))
		if name == "" || name == "." || name == string(filepath.Separator) {
			return nil, domainErrors.NewValidationError(field+".filename", "is required")
		}
		if enc := strings.ToLower(strings.TrimSpace(a.Encoding)); enc != "" && enc != "base64" {
			return nil, domainErrors.NewValidationError(field+".encoding", fmt.Sprintf("unsupported encoding %q", a.Encoding))
		}

		content, err := base64.StdEncoding.DecodeString(stripDataURL(a.Content))
		if err != nil {
			return nil, domainErrors.NewValidationError(field+".content", "must be valid base64")
		}
		if len(content) > u.maxAttachmentBytes {
			return nil, domainErrors.NewValidationError(field+".content", fmt.Sprintf("exceeds %d bytes", u.maxAttachmentBytes))
		}

		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = defaultContentType
		}
		out = append(out, model.Attachment{Filename: name, ContentType: contentType, Content: content})
	}
	return out, nil
}

// stripDataURL drops a "data:<type>;base64," prefix browsers add to FileReader output.
func stripDataURL(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "data:") {
		return content
	}
	if _, payload, ok := strings.Cut(content, ","); ok {
		return payload
	}
	return content
}
