package presenter

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

type MessagePresenter struct {
	base
	messages ports.MessageService
}

func NewMessagePresenter(messages ports.MessageService, pool Executor, log zerolog.Logger) *MessagePresenter {
	p := &MessagePresenter{messages: messages}
	p.init(pool, log, "message")
	return p
}

// Submit sends a contact-form message. No caller is needed.
func (p *MessagePresenter) Submit(ctx context.Context, in ports.MessageInput, cb func(Result[*domain.Message])) {
	draft := &domain.Message{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Content: in.Content,
	}
	if f := invalid(validation.ValidateMessage(draft)); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "submit_message", cb, func(ctx context.Context) (*domain.Message, error) {
		return p.messages.Submit(ctx, in)
	})
}

func (p *MessagePresenter) List(ctx context.Context, caller domain.Caller, cb func(Result[[]domain.Message])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "list_messages", cb, func(ctx context.Context) ([]domain.Message, error) {
		return p.messages.List(ctx, caller)
	})
}

func (p *MessagePresenter) CountUnread(ctx context.Context, caller domain.Caller, cb func(Result[int64])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "count_unread", cb, func(ctx context.Context) (int64, error) {
		return p.messages.CountUnread(ctx, caller)
	})
}

func (p *MessagePresenter) MarkRead(ctx context.Context, id string, read bool, caller domain.Caller, cb func(Result[struct{}])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "mark_message", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.messages.MarkRead(ctx, id, read, caller)
	})
}

func (p *MessagePresenter) Delete(ctx context.Context, id string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "delete_message", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.messages.Delete(ctx, id, caller)
	})
}
