// ABOUTME: MediaRSS domain models covering media:content entries and their sub-records
// ABOUTME: Entries are fully resolved at parse time; nothing is left to inherit

package domain

// MRSSEntry is one resolved media:content entry on an item. Attribute-level
// fields come from the content element itself; the remaining fields are the
// outcome of the ancestor-inheritance merge.
type MRSSEntry struct {
	// EntryID is generated while parsing, before the identity cascade.
	EntryID ID

	// ItemID references the owning item. Restored by the identity cascade.
	ItemID ID

	URL          string
	Size         int64
	Type         string
	Medium       string
	IsDefault    bool
	Expression   string // "full" when the feed leaves it blank
	Bitrate      int
	Framerate    float64
	SamplingRate float64
	Channels     int
	Duration     int
	Width        int
	Height       int
	Lang         string

	Rating        string
	RatingScheme  string
	Title         string
	Description   string
	Keywords      string
	CopyrightURL  string
	CopyrightText string
	RatingAverage int
	RatingCount   int
	RatingMin     int
	RatingMax     int
	Views         int
	Favs          int
	Tags          string

	Thumbnails []MRSSThumbnail
	Credits    []MRSSCredit
	Comments   []MRSSComment
	PeerLinks  []MRSSPeerLink
	Scenes     []MRSSScene
}

// MRSSThumbnail is a thumbnail image attached to a MediaRSS entry.
type MRSSThumbnail struct {
	ThumbnailID ID
	EntryID     ID
	URL         string
	Width       int
	Height      int
	Time        string
}

// MRSSCredit names a contributor to the media object. Credits without a
// role are dropped during parsing.
type MRSSCredit struct {
	CreditID ID
	EntryID  ID
	Role     string
	Who      string
}

// MRSSComment is one comment, response or backlink on the media object.
// Type distinguishes the three sources.
type MRSSComment struct {
	CommentID ID
	EntryID   ID
	Type      string
	Comment   string
}

// MRSSPeerLink is a P2P link for the media object.
type MRSSPeerLink struct {
	PeerLinkID ID
	EntryID    ID
	Type       string
	Link       string
}

// MRSSScene describes one scene within the media object.
type MRSSScene struct {
	SceneID     ID
	EntryID     ID
	Title       string
	Description string
	StartTime   string
	EndTime     string
}
