package push

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/model"
)

// ErrSubscriptionNotFound is returned when removing an unknown endpoint.
var ErrSubscriptionNotFound = errors.New("push: subscription not found")

// SubscriptionStore persists push subscriptions per member through the
// document repository.
type SubscriptionStore struct {
	repo *docstore.Repo
}

func NewSubscriptionStore(repo *docstore.Repo) *SubscriptionStore {
	return &SubscriptionStore{repo: repo}
}

// DocPath returns the backing document path for a member's subscriptions.
func DocPath(member string) string {
	return fmt.Sprintf("/family/%s/push/subscriptions.json", member)
}

func (s *SubscriptionStore) List(ctx context.Context, member string) ([]model.PushSubscription, error) {
	return docstore.ReadJSON(ctx, s.repo, DocPath(member), []model.PushSubscription{})
}

// Add stores a subscription, replacing any existing one for the same endpoint.
func (s *SubscriptionStore) Add(ctx context.Context, member string, endpoint, p256dh, authKey string) (*model.PushSubscription, error) {
	sub := model.PushSubscription{
		ID:        uuid.NewString(),
		Endpoint:  endpoint,
		P256dhKey: p256dh,
		AuthKey:   authKey,
		CreatedAt: time.Now().UTC(),
	}

	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.PushSubscription{}, func(subs *[]model.PushSubscription) error {
		kept := (*subs)[:0]
		for _, existing := range *subs {
			if existing.Endpoint != endpoint {
				kept = append(kept, existing)
			}
		}
		*subs = append(kept, sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionStore) Remove(ctx context.Context, member, endpoint string) error {
	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.PushSubscription{}, func(subs *[]model.PushSubscription) error {
		kept := (*subs)[:0]
		for _, existing := range *subs {
			if existing.Endpoint != endpoint {
				kept = append(kept, existing)
			}
		}
		if len(kept) == len(*subs) {
			return ErrSubscriptionNotFound
		}
		*subs = kept
		return nil
	})
	return err
}
