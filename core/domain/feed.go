// ABOUTME: Feed and Channel domain models for the aggregation pipeline
// ABOUTME: A Feed owns the ordered Channels produced by parsing its source URL

package domain

import "time"

// ID is the stable identifier assigned to persisted entities. Each entity
// tier draws its IDs from its own monotonic pool.
type ID int64

// IDNotFound marks an entity that has not been through the identity cascade
// yet. It is the zero value of ID, so freshly constructed records start out
// unassigned.
const IDNotFound ID = 0

// Feed represents a subscribed source URL and the channels it yields.
// A single URL can legitimately yield more than one channel, for example
// after a redirect split.
type Feed struct {
	// FeedID is the stable identifier, IDNotFound until the cascade runs.
	FeedID ID

	// URL is the feed's source URL.
	URL string

	// LastUpdate records when the feed was last fetched successfully.
	LastUpdate time.Time

	// Channels holds the channels parsed from the feed document, in
	// document order.
	Channels []Channel
}

// Channel is one syndicated channel's metadata plus its items.
type Channel struct {
	// ChannelID is the stable identifier, IDNotFound until assigned.
	ChannelID ID

	// FeedID references the owning feed. Restored by the identity cascade.
	FeedID ID

	Title       string
	Link        string
	Description string
	Author      string
	Language    string

	// ItemCount is a display hint; it matches len(Items) for freshly
	// parsed channels but may differ for truncated persisted ones.
	ItemCount int

	// Items holds the channel's items in document order.
	Items []Item
}
