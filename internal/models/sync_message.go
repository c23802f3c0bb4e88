package models

import "time"

// SyncRequest is the message consumed from the sync request queue
type SyncRequest struct {
	Keyword   string `json:"keyword,omitempty"`
	City      string `json:"city,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	MaxPages  int    `json:"max_pages,omitempty"`
}

// SyncResult is the message published after a sync run completes
type SyncResult struct {
	Keyword        string    `json:"keyword,omitempty"`
	City           string    `json:"city,omitempty"`
	StateCode      string    `json:"state_code,omitempty"`
	VenuesCreated  int       `json:"venues_created"`
	EventsCreated  int       `json:"events_created"`
	PricesRecorded int       `json:"prices_recorded"`
	CompletedAt    time.Time `json:"completed_at"`
}
