// ABOUTME: Dialect registry turning raw document bytes into candidate Channel graphs
// ABOUTME: Detection combines gofeed's content sniffing with root-element inspection

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/mmcdole/gofeed"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
	"aggregator-core/core/interfaces"
)

// ErrUnknownDialect is returned when no dialect parser recognizes a
// well-formed document.
var ErrUnknownDialect = errors.New("no parser recognizes the document dialect")

// DialectParser is one feed dialect's translation into the candidate graph.
type DialectParser interface {
	// CanParse reports whether this dialect claims the document root.
	CanParse(root *xmlquery.Node) bool

	// Parse builds the candidate channels. Field-level failures never
	// abort; the result is always a best-effort graph.
	Parse(root *xmlquery.Node, feedID domain.ID) []domain.Channel
}

// Registry holds the known dialect parsers and the shared post-processing
// every parsed channel goes through.
type Registry struct {
	rss2   *RSS2Parser
	atom   *AtomParser
	rdf    *RDFParser
	logger interfaces.Logger
}

// NewRegistry creates a registry with the RSS 2.0, Atom and RDF dialects.
func NewRegistry(alloc *identity.Allocator, logger interfaces.Logger) *Registry {
	return &Registry{
		rss2:   NewRSS2Parser(alloc, logger),
		atom:   NewAtomParser(alloc, logger),
		rdf:    NewRDFParser(alloc, logger),
		logger: logger,
	}
}

// ParseDocument parses the raw document bytes, picks the dialect and returns
// the post-processed candidate channels. XML errors come back wrapped;
// an unrecognized dialect yields ErrUnknownDialect.
func (r *Registry) ParseDocument(data []byte, feedID domain.ID) ([]domain.Channel, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}
	root := rootElement(doc)
	if root == nil {
		return nil, fmt.Errorf("parse XML: %w", errors.New("document has no root element"))
	}

	dialect := r.detect(data, root)
	if dialect == nil {
		return nil, ErrUnknownDialect
	}

	channels := dialect.Parse(root, feedID)
	for i := range channels {
		if channels[i].Link == "" {
			r.logger.Warn("channel without link", map[string]interface{}{
				"title": channels[i].Title,
			})
			channels[i].Link = "about:blank"
		}
		for j := range channels[i].Items {
			channels[i].Items[j].Title = collapseWhitespace(channels[i].Items[j].Title)
		}
	}
	return channels, nil
}

// detect picks the dialect parser for the document. gofeed's sniffer
// separates the Atom family from the RSS family; the root element then
// distinguishes RSS 2.0 from RDF/RSS 1.0.
func (r *Registry) detect(data []byte, root *xmlquery.Node) DialectParser {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		return r.atom
	case gofeed.FeedTypeRSS:
		if r.rdf.CanParse(root) {
			return r.rdf
		}
		return r.rss2
	}

	for _, p := range []DialectParser{r.rss2, r.atom, r.rdf} {
		if p.CanParse(root) {
			return p
		}
	}
	return nil
}

// collapseWhitespace trims s and squeezes internal whitespace runs to a
// single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
