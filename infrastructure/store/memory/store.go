// ABOUTME: In-memory subscription registry implementing the store gateway
// ABOUTME: Keeps the latest parsed channel graph per feed; no diffing, last write wins

package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
)

// ErrFeedNotFound is returned when a feed ID is not subscribed.
var ErrFeedNotFound = errors.New("feed not found")

type subscription struct {
	feed     domain.Feed
	interval int
}

// Store is an in-memory store gateway. It doubles as the subscription
// registry: feeds are added here and the scheduler discovers them through
// FeedIDs.
type Store struct {
	mu    sync.RWMutex
	alloc *identity.Allocator
	feeds map[domain.ID]*subscription
	order []domain.ID
}

// NewStore creates an empty store sharing the given ID allocator.
func NewStore(alloc *identity.Allocator) *Store {
	return &Store{
		alloc: alloc,
		feeds: make(map[domain.ID]*subscription),
	}
}

// AddFeed subscribes a feed URL. intervalMinutes zero means the feed follows
// the global update interval.
func (s *Store) AddFeed(url string, intervalMinutes int) domain.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.alloc.NextFeedID()
	s.feeds[id] = &subscription{
		feed:     domain.Feed{FeedID: id, URL: url},
		interval: intervalMinutes,
	}
	s.order = append(s.order, id)
	return id
}

// RemoveFeed unsubscribes a feed and drops its stored channels.
func (s *Store) RemoveFeed(id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feeds[id]; !ok {
		return ErrFeedNotFound
	}
	delete(s.feeds, id)
	for i, fid := range s.order {
		if fid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// FeedIDs lists subscribed feeds in subscription order.
func (s *Store) FeedIDs(ctx context.Context) ([]domain.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ID, len(s.order))
	copy(out, s.order)
	return out, nil
}

// FeedURL returns the source URL of a feed.
func (s *Store) FeedURL(ctx context.Context, id domain.ID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.feeds[id]
	if !ok {
		return "", ErrFeedNotFound
	}
	return sub.feed.URL, nil
}

// FeedInterval returns the feed's custom update interval in minutes.
func (s *Store) FeedInterval(ctx context.Context, id domain.ID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.feeds[id]
	if !ok {
		return 0, ErrFeedNotFound
	}
	return sub.interval, nil
}

// SetFeedInterval changes a feed's custom update interval.
func (s *Store) SetFeedInterval(id domain.ID, intervalMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.feeds[id]
	if !ok {
		return ErrFeedNotFound
	}
	sub.interval = intervalMinutes
	return nil
}

// UpdateChannels replaces the feed's stored channels with a freshly parsed
// graph and stamps the feed's last update time.
func (s *Store) UpdateChannels(ctx context.Context, feedID domain.ID, url string, channels []domain.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.feeds[feedID]
	if !ok {
		return ErrFeedNotFound
	}
	sub.feed.URL = url
	sub.feed.Channels = channels
	sub.feed.LastUpdate = time.Now()
	return nil
}

// Feed returns a snapshot of a subscribed feed.
func (s *Store) Feed(id domain.ID) (domain.Feed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.feeds[id]
	if !ok {
		return domain.Feed{}, ErrFeedNotFound
	}
	return sub.feed, nil
}
