package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
	"github.com/blogplatform/blog/internal/metrics"
)

type MessageService struct {
	repo  ports.MessageRepository
	guard ports.SubmissionGuard // optional
	log   zerolog.Logger
}

// NewMessageService returns a MessageService. guard may be nil, in which
// case duplicate submissions are not detected.
func NewMessageService(repo ports.MessageRepository, guard ports.SubmissionGuard, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, guard: guard, log: log}
}

// Submit stores an anonymous contact-form message.
func (s *MessageService) Submit(ctx context.Context, in ports.MessageInput) (*domain.Message, error) {
	msg := &domain.Message{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Content: in.Content,
		SentAt:  time.Now().UTC(),
	}
	if err := validation.ValidateMessage(msg).Err(); err != nil {
		metrics.MessagesSubmittedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if s.guard != nil {
		dup, err := s.guard.IsDuplicate(ctx, msg)
		if err != nil {
			s.log.Warn().Err(err).Msg("duplicate check failed, accepting anyway")
		} else if dup {
			metrics.MessagesSubmittedTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrDuplicateSubmission
		}
	}

	saved, err := s.repo.Save(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store message")
		return nil, err
	}

	if s.guard != nil {
		if err := s.guard.Mark(ctx, saved); err != nil {
			s.log.Warn().Err(err).Str("message_id", saved.ID).Msg("failed to set duplicate key")
		}
	}

	metrics.MessagesSubmittedTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Str("message_id", saved.ID).Str("from", saved.Email).Msg("message received")
	return saved, nil
}

func (s *MessageService) List(ctx context.Context, caller domain.Caller) ([]domain.Message, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *MessageService) MarkRead(ctx context.Context, id string, read bool, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return s.repo.SetRead(ctx, id, read)
}

func (s *MessageService) Delete(ctx context.Context, id string, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *MessageService) CountUnread(ctx context.Context, caller domain.Caller) (int64, error) {
	if err := requireAdmin(caller); err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx)
}
