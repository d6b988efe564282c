package model

import "time"

// PushSubscription is one browser push endpoint, stored per member in
// /family/<member>/push/subscriptions.json.
type PushSubscription struct {
	ID        string    `json:"id"`
	Endpoint  string    `json:"endpoint"`
	P256dhKey string    `json:"p256dhKey"`
	AuthKey   string    `json:"authKey"`
	CreatedAt time.Time `json:"createdAt"`
}
