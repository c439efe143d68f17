// ABOUTME: Monotonic per-tier ID pools and the identity cascade for candidate graphs
// ABOUTME: Already-assigned entities are left untouched, making the cascade idempotent

package identity

import (
	"sync/atomic"

	"aggregator-core/core/domain"
)

// Allocator mints stable identifiers from one monotonic pool per entity
// tier. It is safe for concurrent use; counters survive across cascade
// invocations for the lifetime of the process.
type Allocator struct {
	feed    atomic.Int64
	channel atomic.Int64
	item    atomic.Int64
	entry   atomic.Int64
	sub     atomic.Int64
}

// NewAllocator returns an allocator whose pools start at 1, keeping 0 free
// as the IDNotFound sentinel.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NextFeedID allocates the next feed identifier.
func (a *Allocator) NextFeedID() domain.ID { return domain.ID(a.feed.Add(1)) }

// NextChannelID allocates the next channel identifier.
func (a *Allocator) NextChannelID() domain.ID { return domain.ID(a.channel.Add(1)) }

// NextItemID allocates the next item identifier.
func (a *Allocator) NextItemID() domain.ID { return domain.ID(a.item.Add(1)) }

// NextEntryID allocates the next MediaRSS entry identifier.
func (a *Allocator) NextEntryID() domain.ID { return domain.ID(a.entry.Add(1)) }

// NextSubID allocates the next MediaRSS sub-record identifier. Thumbnails,
// credits, comments, peer links and scenes share one pool.
func (a *Allocator) NextSubID() domain.ID { return domain.ID(a.sub.Add(1)) }

// AssignFeed runs the identity cascade on a candidate feed. A feed that
// already carries an ID is left alone, children included; re-submitting a
// persisted graph changes nothing.
func (a *Allocator) AssignFeed(f *domain.Feed) {
	if f.FeedID != domain.IDNotFound {
		return
	}
	f.FeedID = a.NextFeedID()
	for i := range f.Channels {
		f.Channels[i].FeedID = f.FeedID
		a.AssignChannel(&f.Channels[i])
	}
}

// AssignChannel assigns an ID to an unassigned channel and cascades into its
// items, restoring their ChannelID back-references.
func (a *Allocator) AssignChannel(c *domain.Channel) {
	if c.ChannelID != domain.IDNotFound {
		return
	}
	c.ChannelID = a.NextChannelID()
	for i := range c.Items {
		c.Items[i].ChannelID = c.ChannelID
		a.AssignItem(&c.Items[i])
	}
}

// AssignItem assigns an ID to an unassigned item and stamps it into every
// owned enclosure and MediaRSS entry.
func (a *Allocator) AssignItem(it *domain.Item) {
	if it.ItemID != domain.IDNotFound {
		return
	}
	it.ItemID = a.NextItemID()
	for i := range it.Enclosures {
		it.Enclosures[i].ItemID = it.ItemID
	}
	for i := range it.MRSSEntries {
		it.MRSSEntries[i].ItemID = it.ItemID
	}
}
