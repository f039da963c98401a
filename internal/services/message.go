package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/repositories/messages"
)

// MessageService appends immutable messages to direct and group logs.
// Sending is not idempotent: every call is a new event. Empty text
// (after trimming) is rejected without mutation.
type MessageService interface {
	SendDirect(ctx context.Context, from, to, text string) error
	SendGroup(ctx context.Context, groupID, from, text string) error
}

type messageService struct {
	messages messages.Repository
	log      logging.Logger
	now      func() time.Time

	// mu guards lastTS; timestamps are the sole ordering key, so two
	// sends in the same millisecond must still come out distinct and
	// increasing.
	mu     sync.Mutex
	lastTS int64
}

func NewMessageService(repo messages.Repository, log logging.Logger) MessageService {
	return &messageService{messages: repo, log: log, now: time.Now}
}

func (s *messageService) SendDirect(ctx context.Context, from, to, text string) error {
	m, ok := s.build(ctx, from, to, text)
	if !ok {
		return nil
	}
	if err := s.messages.AppendDirect(ctx, m); err != nil {
		return fmt.Errorf("sending direct message: %w", err)
	}
	return nil
}

func (s *messageService) SendGroup(ctx context.Context, groupID, from, text string) error {
	m, ok := s.build(ctx, from, groupID, text)
	if !ok {
		return nil
	}
	if err := s.messages.AppendGroup(ctx, groupID, m); err != nil {
		return fmt.Errorf("sending group message: %w", err)
	}
	return nil
}

func (s *messageService) build(ctx context.Context, from, to, text string) (models.Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" || from == "" || to == "" {
		s.log.Debug(ctx, "message skipped", "from", from, "to", to)
		return models.Message{}, false
	}
	return models.Message{From: from, To: to, Text: text, Timestamp: s.nextTimestamp()}, true
}

func (s *messageService) nextTimestamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now().UnixMilli()
	if ts <= s.lastTS {
		ts = s.lastTS + 1
	}
	s.lastTS = ts
	return ts
}
