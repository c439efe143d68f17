// ABOUTME: MediaRSS sub-parser resolving media:content entries for one item
// ABOUTME: Implements the ancestor-inheritance merge with per-parse memoization

package parser

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
)

// arbitraryData is the metadata a media:content entry may inherit from any
// ancestor. Scalar fields are optional (nil means "not declared here");
// list fields accumulate. The sub-records are prototypes without IDs; they
// are stamped per entry when the merged record is applied.
type arbitraryData struct {
	rating        *string
	ratingScheme  *string
	title         *string
	description   *string
	keywords      *string
	copyrightURL  *string
	copyrightText *string
	ratingAverage *int
	ratingCount   *int
	ratingMin     *int
	ratingMax     *int
	views         *int
	favs          *int
	tags          *string

	thumbnails []domain.MRSSThumbnail
	credits    []domain.MRSSCredit
	comments   []domain.MRSSComment
	peerLinks  []domain.MRSSPeerLink
	scenes     []domain.MRSSScene
}

// merge combines d with the data of a deeper element. Scalars declared by
// the child win; lists concatenate. Both inputs are left untouched.
func (d arbitraryData) merge(child arbitraryData) arbitraryData {
	out := d
	if child.rating != nil {
		out.rating = child.rating
	}
	if child.ratingScheme != nil {
		out.ratingScheme = child.ratingScheme
	}
	if child.title != nil {
		out.title = child.title
	}
	if child.description != nil {
		out.description = child.description
	}
	if child.keywords != nil {
		out.keywords = child.keywords
	}
	if child.copyrightURL != nil {
		out.copyrightURL = child.copyrightURL
	}
	if child.copyrightText != nil {
		out.copyrightText = child.copyrightText
	}
	if child.ratingAverage != nil {
		out.ratingAverage = child.ratingAverage
	}
	if child.ratingCount != nil {
		out.ratingCount = child.ratingCount
	}
	if child.ratingMin != nil {
		out.ratingMin = child.ratingMin
	}
	if child.ratingMax != nil {
		out.ratingMax = child.ratingMax
	}
	if child.views != nil {
		out.views = child.views
	}
	if child.favs != nil {
		out.favs = child.favs
	}
	if child.tags != nil {
		out.tags = child.tags
	}

	out.thumbnails = concatThumbnails(d.thumbnails, child.thumbnails)
	out.credits = concatCredits(d.credits, child.credits)
	out.comments = concatComments(d.comments, child.comments)
	out.peerLinks = concatPeerLinks(d.peerLinks, child.peerLinks)
	out.scenes = concatScenes(d.scenes, child.scenes)
	return out
}

func concatThumbnails(a, b []domain.MRSSThumbnail) []domain.MRSSThumbnail {
	return append(append([]domain.MRSSThumbnail{}, a...), b...)
}

func concatCredits(a, b []domain.MRSSCredit) []domain.MRSSCredit {
	return append(append([]domain.MRSSCredit{}, a...), b...)
}

func concatComments(a, b []domain.MRSSComment) []domain.MRSSComment {
	return append(append([]domain.MRSSComment{}, a...), b...)
}

func concatPeerLinks(a, b []domain.MRSSPeerLink) []domain.MRSSPeerLink {
	return append(append([]domain.MRSSPeerLink{}, a...), b...)
}

func concatScenes(a, b []domain.MRSSScene) []domain.MRSSScene {
	return append(append([]domain.MRSSScene{}, a...), b...)
}

// mrssParser resolves the MediaRSS entries of a single item. The metadata
// cache is keyed by node pointer, which identifies an element uniquely
// within one parse; a parser instance must not outlive its parse invocation
// or be shared between concurrent parses.
type mrssParser struct {
	alloc  *identity.Allocator
	logger interfaces.Logger
	cache  map[*xmlquery.Node]arbitraryData
}

// parseMRSS returns the fully resolved MediaRSS entries of item, in document
// order: entries inside media:group holders first, then the item's own
// direct entries.
func parseMRSS(item *xmlquery.Node, alloc *identity.Allocator, logger interfaces.Logger) []domain.MRSSEntry {
	p := &mrssParser{
		alloc:  alloc,
		logger: logger,
		cache:  make(map[*xmlquery.Node]arbitraryData),
	}

	var result []domain.MRSSEntry
	for _, group := range directChildrenNS(item, nsMediaRSS, "group") {
		result = append(result, p.collectEntries(group)...)
	}
	result = append(result, p.collectEntries(item)...)
	return result
}

// collectEntries builds one entry per direct media:content child of holder.
func (p *mrssParser) collectEntries(holder *xmlquery.Node) []domain.MRSSEntry {
	var result []domain.MRSSEntry
	for _, en := range directChildrenNS(holder, nsMediaRSS, "content") {
		result = append(result, p.buildEntry(en))
	}
	return result
}

func (p *mrssParser) buildEntry(en *xmlquery.Node) domain.MRSSEntry {
	entry := domain.MRSSEntry{EntryID: p.alloc.NextEntryID()}

	if url, ok := attr(en, "url"); ok {
		entry.URL = url
	} else if players := descendantsNS(en, nsMediaRSS, "player"); len(players) > 0 {
		entry.URL, _ = attr(players[0], "url")
	} else {
		p.logger.Warn("media:content without url or player", nil)
	}

	entry.Size = attrInt64(en, "fileSize")
	entry.Type, _ = attr(en, "type")
	entry.Medium, _ = attr(en, "medium")
	entry.IsDefault = attrOr(en, "isDefault", "") == "true"
	entry.Expression = attrOr(en, "expression", "")
	if entry.Expression == "" {
		entry.Expression = "full"
	}
	entry.Bitrate = attrInt(en, "bitrate")
	entry.Framerate = attrFloat(en, "framerate")
	entry.SamplingRate = attrFloat(en, "samplingrate")
	entry.Channels = attrInt(en, "channels")
	entry.Duration = attrInt(en, "duration")
	entry.Width = attrInt(en, "width")
	entry.Height = attrInt(en, "height")
	entry.Lang, _ = attr(en, "lang")

	d := p.inheritedData(en)
	entry.Rating = strOr(d.rating)
	entry.RatingScheme = strOr(d.ratingScheme)
	entry.Title = strOr(d.title)
	entry.Description = strOr(d.description)
	entry.Keywords = strOr(d.keywords)
	entry.CopyrightURL = strOr(d.copyrightURL)
	entry.CopyrightText = strOr(d.copyrightText)
	entry.RatingAverage = intOr(d.ratingAverage)
	entry.RatingCount = intOr(d.ratingCount)
	entry.RatingMin = intOr(d.ratingMin)
	entry.RatingMax = intOr(d.ratingMax)
	entry.Views = intOr(d.views)
	entry.Favs = intOr(d.favs)
	entry.Tags = strOr(d.tags)

	// Stamp the inherited prototypes with fresh sub-record IDs and this
	// entry's back-reference.
	for _, t := range d.thumbnails {
		t.ThumbnailID = p.alloc.NextSubID()
		t.EntryID = entry.EntryID
		entry.Thumbnails = append(entry.Thumbnails, t)
	}
	for _, c := range d.credits {
		c.CreditID = p.alloc.NextSubID()
		c.EntryID = entry.EntryID
		entry.Credits = append(entry.Credits, c)
	}
	for _, c := range d.comments {
		c.CommentID = p.alloc.NextSubID()
		c.EntryID = entry.EntryID
		entry.Comments = append(entry.Comments, c)
	}
	for _, l := range d.peerLinks {
		l.PeerLinkID = p.alloc.NextSubID()
		l.EntryID = entry.EntryID
		entry.PeerLinks = append(entry.PeerLinks, l)
	}
	for _, s := range d.scenes {
		s.SceneID = p.alloc.NextSubID()
		s.EntryID = entry.EntryID
		entry.Scenes = append(entry.Scenes, s)
	}

	return entry
}

// inheritedData folds the directly-held metadata of every ancestor of en,
// root first, en last, so deeper declarations win for scalars while lists
// accumulate across all levels.
func (p *mrssParser) inheritedData(en *xmlquery.Node) arbitraryData {
	var chain []*xmlquery.Node
	for n := en; n != nil && n.Type == xmlquery.ElementNode; n = n.Parent {
		chain = append(chain, n)
	}

	var merged arbitraryData
	for i := len(chain) - 1; i >= 0; i-- {
		merged = merged.merge(p.dataFor(chain[i]))
	}
	return merged
}

// dataFor extracts the metadata held directly on element, memoized per node.
func (p *mrssParser) dataFor(element *xmlquery.Node) arbitraryData {
	if d, ok := p.cache[element]; ok {
		return d
	}

	var d arbitraryData

	if elems := directChildrenNS(element, nsMediaRSS, "rating"); len(elems) > 0 {
		relem := elems[0]
		d.rating = strPtr(strings.TrimSpace(relem.InnerText()))
		if scheme, ok := attr(relem, "scheme"); ok {
			d.ratingScheme = strPtr(scheme)
		} else {
			d.ratingScheme = strPtr("urn:simple")
		}
	}

	if elems := directChildrenNS(element, nsMediaRSS, "copyright"); len(elems) > 0 {
		celem := elems[0]
		d.copyrightText = strPtr(strings.TrimSpace(celem.InnerText()))
		if url, ok := attr(celem, "url"); ok {
			d.copyrightURL = strPtr(url)
		}
	}

	if comms := directChildrenNS(element, nsMediaRSS, "community"); len(comms) > 0 {
		comm := comms[0]
		if stars := descendantsNS(comm, nsMediaRSS, "starRating"); len(stars) > 0 {
			d.ratingAverage = attrIntPtr(stars[0], "average")
			d.ratingCount = attrIntPtr(stars[0], "count")
			d.ratingMin = attrIntPtr(stars[0], "min")
			d.ratingMax = attrIntPtr(stars[0], "max")
		}
		if stats := descendantsNS(comm, nsMediaRSS, "statistics"); len(stats) > 0 {
			d.views = attrIntPtr(stats[0], "views")
			d.favs = attrIntPtr(stats[0], "favorites")
		}
		if tags := descendantsNS(comm, nsMediaRSS, "tags"); len(tags) > 0 {
			d.tags = strPtr(strings.TrimSpace(tags[0].InnerText()))
		}
	}

	if elems := directChildrenNS(element, nsMediaRSS, "title"); len(elems) > 0 {
		d.title = strPtr(UnescapeEntities(strings.TrimSpace(elems[0].InnerText())))
	}
	if elems := directChildrenNS(element, nsMediaRSS, "description"); len(elems) > 0 {
		d.description = strPtr(UnescapeEntities(strings.TrimSpace(elems[0].InnerText())))
	}
	if elems := directChildrenNS(element, nsMediaRSS, "keywords"); len(elems) > 0 {
		d.keywords = strPtr(strings.TrimSpace(elems[0].InnerText()))
	}

	d.thumbnails = collectThumbnails(element)
	d.credits = collectCredits(element)
	d.comments = collectMediaComments(element)
	d.peerLinks = collectPeerLinks(element)
	d.scenes = collectScenes(element)

	p.cache[element] = d
	return d
}

func collectThumbnails(element *xmlquery.Node) []domain.MRSSThumbnail {
	var out []domain.MRSSThumbnail
	for _, n := range directChildrenNS(element, nsMediaRSS, "thumbnail") {
		thumb := domain.MRSSThumbnail{
			Width:  attrInt(n, "width"),
			Height: attrInt(n, "height"),
			Time:   attrOr(n, "time", ""),
		}
		thumb.URL, _ = attr(n, "url")
		out = append(out, thumb)
	}
	return out
}

func collectCredits(element *xmlquery.Node) []domain.MRSSCredit {
	var out []domain.MRSSCredit
	for _, n := range directChildrenNS(element, nsMediaRSS, "credit") {
		role, ok := attr(n, "role")
		if !ok {
			continue
		}
		out = append(out, domain.MRSSCredit{
			Role: role,
			Who:  strings.TrimSpace(n.InnerText()),
		})
	}
	return out
}

// collectMediaComments gathers comments, responses and backlinks, each
// labeled with its human-readable type tag.
func collectMediaComments(element *xmlquery.Node) []domain.MRSSComment {
	var out []domain.MRSSComment

	collect := func(parentLocal, childLocal, typeTag string) {
		parents := directChildrenNS(element, nsMediaRSS, parentLocal)
		if len(parents) == 0 {
			return
		}
		for _, n := range descendantsNS(parents[0], nsMediaRSS, childLocal) {
			out = append(out, domain.MRSSComment{
				Type:    typeTag,
				Comment: strings.TrimSpace(n.InnerText()),
			})
		}
	}

	collect("comments", "comment", "Comments")
	collect("responses", "response", "Responses")
	collect("backLinks", "backLink", "Backlinks")
	return out
}

func collectPeerLinks(element *xmlquery.Node) []domain.MRSSPeerLink {
	var out []domain.MRSSPeerLink
	for _, n := range directChildrenNS(element, nsMediaRSS, "peerLink") {
		link := domain.MRSSPeerLink{}
		link.Link, _ = attr(n, "href")
		link.Type, _ = attr(n, "type")
		out = append(out, link)
	}
	return out
}

func collectScenes(element *xmlquery.Node) []domain.MRSSScene {
	scenesNodes := directChildrenNS(element, nsMediaRSS, "scenes")
	if len(scenesNodes) == 0 {
		return nil
	}
	var out []domain.MRSSScene
	for _, n := range descendantsNS(scenesNodes[0], nsMediaRSS, "scene") {
		// Scene detail tags are unprefixed in MediaRSS documents.
		out = append(out, domain.MRSSScene{
			Title:       childText(n, "sceneTitle"),
			Description: childText(n, "sceneDescription"),
			StartTime:   childText(n, "sceneStartTime"),
			EndTime:     childText(n, "sceneEndTime"),
		})
	}
	return out
}

func strPtr(s string) *string { return &s }

func strOr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func intOr(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}
