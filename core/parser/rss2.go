// ABOUTME: RSS 2.0 dialect parser (also accepts the compatible 0.9x documents)
// ABOUTME: Builds the candidate Channel/Item graph from an <rss> document

package parser

import (
	"strconv"

	"github.com/antchfx/xmlquery"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
)

// RSS2Parser parses RSS 2.0 feed documents.
type RSS2Parser struct {
	alloc  *identity.Allocator
	logger interfaces.Logger
}

// NewRSS2Parser creates an RSS 2.0 dialect parser.
func NewRSS2Parser(alloc *identity.Allocator, logger interfaces.Logger) *RSS2Parser {
	return &RSS2Parser{alloc: alloc, logger: logger}
}

// CanParse reports whether root looks like an RSS 2.0 document.
func (p *RSS2Parser) CanParse(root *xmlquery.Node) bool {
	return root != nil && root.Data == "rss"
}

// Parse builds one channel per <channel> element.
func (p *RSS2Parser) Parse(root *xmlquery.Node, feedID domain.ID) []domain.Channel {
	var channels []domain.Channel
	for _, chElem := range childElementsNamed(root, "channel") {
		ch := domain.Channel{
			FeedID:      feedID,
			Title:       childText(chElem, "title"),
			Link:        GetLink(chElem),
			Description: childText(chElem, "description"),
			Author:      GetAuthor(chElem),
			Language:    childText(chElem, "language"),
		}
		for _, itElem := range childElementsNamed(chElem, "item") {
			ch.Items = append(ch.Items, p.parseItem(itElem))
		}
		ch.ItemCount = len(ch.Items)
		channels = append(channels, ch)
	}
	return channels
}

func (p *RSS2Parser) parseItem(el *xmlquery.Node) domain.Item {
	item := domain.NewItem()
	item.Title = childText(el, "title")
	item.Link = GetLink(el)
	item.Description = LongerDescription(el, childText(el, "description"))
	item.Author = GetAuthor(el)
	item.Categories = GetAllCategories(el)
	item.GUID = childText(el, "guid")
	item.Unread = true

	item.PubDate = ParseRFC822Like(childText(el, "pubDate"))
	if item.PubDate.IsZero() {
		item.PubDate = GetDCDateTime(el)
	}

	item.NumComments = GetNumComments(el)
	item.CommentsRSS = GetCommentsRSS(el)
	item.CommentsLink = GetCommentsLink(el)

	for _, enc := range childElementsNamed(el, "enclosure") {
		length, _ := strconv.ParseInt(attrOr(enc, "length", "-1"), 10, 64)
		e := domain.Enclosure{
			Length: length,
			Lang:   attrOr(enc, "hreflang", ""),
		}
		e.URL, _ = attr(enc, "url")
		e.Type, _ = attr(enc, "type")
		item.Enclosures = append(item.Enclosures, e)
	}
	item.Enclosures = append(item.Enclosures, GetEncEnclosures(el)...)

	item.Latitude, item.Longitude = GetGeoPoint(el)
	item.MRSSEntries = parseMRSS(el, p.alloc, p.logger)
	return item
}
