// ABOUTME: Gateways to the external persistent store and the scheduler's saved state
// ABOUTME: Diffing, deduplication and persistence live behind StoreGateway, out of this core

package interfaces

import (
	"context"
	"time"

	"aggregator-core/core/domain"
)

// StoreGateway is the boundary to the persistent store. The store owns
// diff/merge and destruction of entities; this core only hands over candidate
// channel graphs with assigned IDs.
type StoreGateway interface {
	// FeedIDs lists all subscribed feeds.
	FeedIDs(ctx context.Context) ([]domain.ID, error)

	// FeedURL returns the source URL of a feed.
	FeedURL(ctx context.Context, id domain.ID) (string, error)

	// FeedInterval returns the feed's custom update interval in minutes.
	// Zero means the feed is covered by the global timer.
	FeedInterval(ctx context.Context, id domain.ID) (int, error)

	// UpdateChannels hands a freshly parsed, ID-assigned channel graph to
	// the store for diffing and persistence.
	UpdateChannels(ctx context.Context, feedID domain.ID, url string, channels []domain.Channel) error
}

// SchedulerState persists the scheduler's timestamps across restarts.
// A zero time means "never".
type SchedulerState interface {
	LastGlobalUpdate() (time.Time, error)
	SetLastGlobalUpdate(t time.Time) error

	LastFeedUpdate(id domain.ID) (time.Time, error)
	SetLastFeedUpdate(id domain.ID, t time.Time) error
}
