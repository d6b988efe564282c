package push

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/avkorz/diskhub/internal/auth"
	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/todo"
)

const (
	tickInterval   = time.Minute
	reminderWindow = time.Hour
)

// Scheduler periodically scans every member's lists for items coming due and
// notifies their subscriptions. Background work runs under the owner's disk
// token, since no request context exists here.
type Scheduler struct {
	mu        sync.Mutex
	service   *Service
	subs      *SubscriptionStore
	members   *family.Service
	todos     *todo.Service
	diskToken string
	logger    *slog.Logger

	notified map[string]time.Time // item ID -> when reminded

	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(svc *Service, subs *SubscriptionStore, members *family.Service, todos *todo.Service, diskToken string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:   svc,
		subs:      subs,
		members:   members,
		todos:     todos,
		diskToken: diskToken,
		logger:    logger,
		notified:  make(map[string]time.Time),
	}
}

// Start begins the reminder loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for the current tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) tick(ctx context.Context) {
	ctx = auth.WithIdentity(ctx, auth.Identity{Token: s.diskToken})

	members, err := s.members.ListMembers(ctx)
	if err != nil {
		s.logger.Warn("list members", "error", err)
		return
	}

	for _, m := range members {
		if !m.IsActive {
			continue
		}
		s.remind(ctx, m.Username)
	}

	s.prune()
}

func (s *Scheduler) remind(ctx context.Context, member string) {
	due, err := s.todos.DueSoon(ctx, member, reminderWindow)
	if err != nil {
		s.logger.Warn("scan due items", "member", member, "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	subs, err := s.subs.List(ctx, member)
	if err != nil {
		s.logger.Warn("list subscriptions", "member", member, "error", err)
		return
	}
	if len(subs) == 0 {
		return
	}

	for _, item := range due {
		s.mu.Lock()
		_, seen := s.notified[item.ID]
		if !seen {
			s.notified[item.ID] = time.Now()
		}
		s.mu.Unlock()
		if seen {
			continue
		}

		payload := Payload{
			Title: "To-do due soon",
			Body:  item.Title,
			Tag:   "todo-" + item.ID,
		}
		for _, sub := range subs {
			if err := s.service.Send(sub, payload); err != nil {
				if errors.Is(err, ErrExpired) {
					if rmErr := s.subs.Remove(ctx, member, sub.Endpoint); rmErr != nil {
						s.logger.Warn("drop expired subscription", "member", member, "error", rmErr)
					}
					continue
				}
				s.logger.Warn("send reminder", "member", member, "error", err)
			}
		}
	}
}

// prune forgets reminders old enough that their item either passed or was
// rescheduled.
func (s *Scheduler) prune() {
	cutoff := time.Now().Add(-48 * time.Hour)
	s.mu.Lock()
	for id, at := range s.notified {
		if at.Before(cutoff) {
			delete(s.notified, id)
		}
	}
	s.mu.Unlock()
}
