// ABOUTME: Item and Enclosure domain models representing one syndicated entry
// ABOUTME: Field defaults follow the soft-failure policy of the dialect parsers

package domain

import "time"

// Item is one syndicated entry within a channel.
type Item struct {
	// ItemID is the stable identifier, IDNotFound until assigned.
	ItemID ID

	// ChannelID references the owning channel. Restored by the identity
	// cascade.
	ChannelID ID

	Title       string
	Link        string
	Description string
	Author      string

	// Categories collects dc:subject, plain category and iTunes keyword
	// values, in that source order, empties dropped.
	Categories []string

	// GUID is globally unique but optional; RSS 2.0 does not require it.
	GUID string

	// PubDate is the publication time. The zero time means the feed did
	// not carry a parseable date; callers substitute the current time via
	// FixDate before persisting.
	PubDate time.Time

	Unread bool

	// NumComments is -1 when the feed does not declare a comment count.
	NumComments int

	// CommentsRSS links the comments RSS, CommentsLink the comments page.
	// Either may be empty.
	CommentsRSS  string
	CommentsLink string

	// Enclosures holds the item's attached media, in document order.
	Enclosures []Enclosure

	// Latitude and Longitude carry the GeoRSS point. -1 means unknown for
	// items that never went through a parser; parsed items without geo
	// data end up at (0, 0).
	Latitude  float64
	Longitude float64

	// MRSSEntries holds the resolved MediaRSS entries, in document order.
	MRSSEntries []MRSSEntry
}

// NewItem returns an item with the documented "unknown" defaults.
func NewItem() Item {
	return Item{
		NumComments: -1,
		Latitude:    -1,
		Longitude:   -1,
	}
}

// FixDate substitutes the current time for an invalid publication date.
func (it *Item) FixDate() {
	if it.PubDate.IsZero() {
		it.PubDate = time.Now()
	}
}

// Enclosure is a single attached media reference on an item.
type Enclosure struct {
	// ItemID references the owning item. Restored by the identity cascade.
	ItemID ID

	// URL is the address of the attached media.
	URL string

	// Type is the declared MIME type.
	Type string

	// Length is the size in bytes, -1 if unknown.
	Length int64

	// Lang carries Atom's hreflang attribute.
	Lang string
}
