// ABOUTME: Atom dialect parser covering Atom 1.0 with tolerance for 0.3 documents
// ABOUTME: Maps entries onto the same candidate Item graph as the RSS dialects

package parser

import (
	"strconv"

	"github.com/antchfx/xmlquery"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
)

// AtomParser parses Atom feed documents.
type AtomParser struct {
	alloc  *identity.Allocator
	logger interfaces.Logger
}

// NewAtomParser creates an Atom dialect parser.
func NewAtomParser(alloc *identity.Allocator, logger interfaces.Logger) *AtomParser {
	return &AtomParser{alloc: alloc, logger: logger}
}

// CanParse reports whether root looks like an Atom document.
func (p *AtomParser) CanParse(root *xmlquery.Node) bool {
	if root == nil || root.Data != "feed" {
		return false
	}
	return root.NamespaceURI == nsAtom || root.NamespaceURI == nsAtom03 || root.NamespaceURI == ""
}

// Parse builds a single channel from the <feed> element.
func (p *AtomParser) Parse(root *xmlquery.Node, feedID domain.ID) []domain.Channel {
	description := childText(root, "subtitle")
	if description == "" {
		// Atom 0.3 called it tagline.
		description = childText(root, "tagline")
	}

	ch := domain.Channel{
		FeedID:      feedID,
		Title:       childText(root, "title"),
		Link:        GetLink(root),
		Description: description,
		Author:      GetAuthor(root),
	}
	if lang, ok := attrNS(root, "xml", "lang"); ok {
		ch.Language = lang
	}

	for _, entry := range childElementsNamed(root, "entry") {
		ch.Items = append(ch.Items, p.parseEntry(entry))
	}
	ch.ItemCount = len(ch.Items)
	return []domain.Channel{ch}
}

func (p *AtomParser) parseEntry(el *xmlquery.Node) domain.Item {
	item := domain.NewItem()
	item.Title = childText(el, "title")
	item.Link = GetLink(el)
	item.Author = GetAuthor(el)
	item.Categories = GetAllCategories(el)
	item.GUID = childText(el, "id")
	item.Unread = true

	description := childText(el, "content")
	if description == "" {
		description = childText(el, "summary")
	}
	item.Description = LongerDescription(el, description)

	for _, name := range []string{"updated", "published", "modified", "issued"} {
		if item.PubDate = ParseRFC3339Like(childText(el, name)); !item.PubDate.IsZero() {
			break
		}
	}

	item.NumComments = GetNumComments(el)
	item.CommentsRSS = GetCommentsRSS(el)
	item.CommentsLink = GetCommentsLink(el)

	for _, link := range childElementsNamed(el, "link") {
		if rel, _ := attr(link, "rel"); rel != "enclosure" {
			continue
		}
		length, _ := strconv.ParseInt(attrOr(link, "length", "-1"), 10, 64)
		e := domain.Enclosure{
			Length: length,
			Lang:   attrOr(link, "hreflang", ""),
		}
		e.URL, _ = attr(link, "href")
		e.Type, _ = attr(link, "type")
		item.Enclosures = append(item.Enclosures, e)
	}
	item.Enclosures = append(item.Enclosures, GetEncEnclosures(el)...)

	item.Latitude, item.Longitude = GetGeoPoint(el)
	item.MRSSEntries = parseMRSS(el, p.alloc, p.logger)
	return item
}
