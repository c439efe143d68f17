// ABOUTME: RDF/RSS 1.0 dialect parser
// ABOUTME: Channel metadata and top-level items live side by side under rdf:RDF

package parser

import (
	"github.com/antchfx/xmlquery"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
)

// RDFParser parses RDF/RSS 1.0 feed documents.
type RDFParser struct {
	alloc  *identity.Allocator
	logger interfaces.Logger
}

// NewRDFParser creates an RDF dialect parser.
func NewRDFParser(alloc *identity.Allocator, logger interfaces.Logger) *RDFParser {
	return &RDFParser{alloc: alloc, logger: logger}
}

// CanParse reports whether root looks like an RDF document.
func (p *RDFParser) CanParse(root *xmlquery.Node) bool {
	return root != nil && root.Data == "RDF"
}

// Parse builds a single channel from the rdf:RDF document. In RSS 1.0 the
// items are siblings of the channel element, not children.
func (p *RDFParser) Parse(root *xmlquery.Node, feedID domain.ID) []domain.Channel {
	ch := domain.Channel{FeedID: feedID}

	if chElem := firstChildNamed(root, "channel"); chElem != nil {
		ch.Title = childText(chElem, "title")
		ch.Link = GetLink(chElem)
		ch.Description = childText(chElem, "description")
		ch.Author = GetAuthor(chElem)
	}

	for _, itElem := range childElementsNamed(root, "item") {
		ch.Items = append(ch.Items, p.parseItem(itElem))
	}
	ch.ItemCount = len(ch.Items)
	return []domain.Channel{ch}
}

func (p *RDFParser) parseItem(el *xmlquery.Node) domain.Item {
	item := domain.NewItem()
	item.Title = childText(el, "title")
	item.Link = GetLink(el)
	item.Description = LongerDescription(el, childText(el, "description"))
	item.Author = GetAuthor(el)
	item.Categories = GetAllCategories(el)
	item.Unread = true

	// RSS 1.0 items carry no guid element; the rdf:about URI is the
	// closest stable identifier.
	item.GUID, _ = attrNS(el, nsRDF, "about")

	item.PubDate = GetDCDateTime(el)

	item.NumComments = GetNumComments(el)
	item.CommentsRSS = GetCommentsRSS(el)
	item.CommentsLink = GetCommentsLink(el)

	item.Enclosures = GetEncEnclosures(el)
	item.Latitude, item.Longitude = GetGeoPoint(el)
	item.MRSSEntries = parseMRSS(el, p.alloc, p.logger)
	return item
}
