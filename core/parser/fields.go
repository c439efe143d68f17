// ABOUTME: Per-field extraction helpers shared by every feed dialect
// ABOUTME: Each helper falls back to a documented default instead of failing

package parser

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"

	"aggregator-core/core/domain"
)

// Namespaces recognized by the dialect parsers.
const (
	nsDC           = "http://purl.org/dc/elements/1.1/"
	nsWFW          = "http://wellformedweb.org/CommentAPI/"
	nsAtom         = "http://www.w3.org/2005/Atom"
	nsAtom03       = "http://purl.org/atom/ns#"
	nsRDF          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsSlash        = "http://purl.org/rss/1.0/modules/slash/"
	nsEnc          = "http://purl.oclc.org/net/rss_2.0/enc#"
	nsITunes       = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	nsGeoRSSSimple = "http://www.georss.org/georss"
	nsGeoW3        = "http://www.w3.org/2003/01/geo/wgs84_pos#"
	nsMediaRSS     = "http://search.yahoo.com/mrss/"
	nsContent      = "http://purl.org/rss/1.0/modules/content/"
)

// GetDescription scans the whole subtree under parent for content:encoded
// and itunes:summary elements and returns the longest text found, ties
// broken by encounter order. Length is counted in runes, not bytes, so
// multibyte text competes fairly.
func GetDescription(parent *xmlquery.Node) string {
	nodes := descendantsNS(parent, nsContent, "encoded")
	nodes = append(nodes, descendantsNS(parent, nsITunes, "summary")...)

	var max string
	maxLen := 0
	for _, n := range nodes {
		if repr := n.InnerText(); utf8.RuneCountInString(repr) > maxLen {
			max = repr
			maxLen = utf8.RuneCountInString(repr)
		}
	}
	return max
}

// LongerDescription returns the richer of cand and whatever GetDescription
// finds; the candidate is only replaced by strictly longer text.
func LongerDescription(parent *xmlquery.Node, cand string) string {
	if ext := GetDescription(parent); utf8.RuneCountInString(ext) > utf8.RuneCountInString(cand) {
		return ext
	}
	return cand
}

// GetLink walks the direct <link> children of parent and returns the first
// one that either has no rel attribute or rel="alternate", preferring an
// href attribute over element text.
func GetLink(parent *xmlquery.Node) string {
	for _, link := range childElementsNamed(parent, "link") {
		rel, hasRel := attr(link, "rel")
		if hasRel && rel != "alternate" {
			continue
		}
		if href, ok := attr(link, "href"); ok {
			return href
		}
		return strings.TrimSpace(link.InnerText())
	}
	return ""
}

// GetAuthor resolves the author with the precedence itunes:author,
// dc:creator, bare <author>; the first non-empty match wins.
func GetAuthor(parent *xmlquery.Node) string {
	if nodes := descendantsNS(parent, nsITunes, "author"); len(nodes) > 0 {
		return strings.TrimSpace(nodes[0].InnerText())
	}
	if nodes := descendantsNS(parent, nsDC, "creator"); len(nodes) > 0 {
		return strings.TrimSpace(nodes[0].InnerText())
	}
	if nodes := descendantsNamed(parent, "author"); len(nodes) > 0 {
		return strings.TrimSpace(nodes[0].InnerText())
	}
	return ""
}

// GetCommentsRSS returns the first wfw:commentRss element's text.
func GetCommentsRSS(parent *xmlquery.Node) string {
	if nodes := descendantsNS(parent, nsWFW, "commentRss"); len(nodes) > 0 {
		return strings.TrimSpace(nodes[0].InnerText())
	}
	return ""
}

// GetCommentsLink returns the first unprefixed comments element's text.
func GetCommentsLink(parent *xmlquery.Node) string {
	if nodes := descendantsNamed(parent, "comments"); len(nodes) > 0 {
		return strings.TrimSpace(nodes[0].InnerText())
	}
	return ""
}

// GetNumComments parses the first slash:comments element as an integer,
// -1 when the element is absent.
func GetNumComments(parent *xmlquery.Node) int {
	nodes := descendantsNS(parent, nsSlash, "comments")
	if len(nodes) == 0 {
		return -1
	}
	n, _ := strconv.Atoi(strings.TrimSpace(nodes[0].InnerText()))
	return n
}

// GetDCDateTime parses the first dc:date element as an RFC3339-like date.
func GetDCDateTime(parent *xmlquery.Node) time.Time {
	if nodes := descendantsNS(parent, nsDC, "date"); len(nodes) > 0 {
		return ParseRFC3339Like(strings.TrimSpace(nodes[0].InnerText()))
	}
	return time.Time{}
}

// GetAllCategories concatenates dc:subject values, bare <category> values
// and iTunes keyword values (each wrapped as "Podcast <keyword>"), dropping
// empty strings from each source list. Nothing is deduplicated.
func GetAllCategories(parent *xmlquery.Node) []string {
	var out []string
	for _, n := range descendantsNS(parent, nsDC, "subject") {
		if text := strings.TrimSpace(n.InnerText()); text != "" {
			out = append(out, text)
		}
	}
	for _, n := range descendantsNamed(parent, "category") {
		if text := strings.TrimSpace(n.InnerText()); text != "" {
			out = append(out, text)
		}
	}
	for _, n := range descendantsNS(parent, nsITunes, "keywords") {
		if text := strings.TrimSpace(n.InnerText()); text != "" {
			out = append(out, "Podcast "+text)
		}
	}
	return out
}

// GetGeoPoint extracts geo coordinates, preferring paired geo:lat/geo:long
// elements over a GeoRSS-simple <point> whose text must be exactly two
// whitespace-separated numbers. Returns (0, 0) when neither form is present.
func GetGeoPoint(parent *xmlquery.Node) (lat, long float64) {
	lats := descendantsNS(parent, nsGeoW3, "lat")
	longs := descendantsNS(parent, nsGeoW3, "long")
	if len(lats) > 0 && len(longs) > 0 {
		lat, _ = strconv.ParseFloat(strings.TrimSpace(lats[0].InnerText()), 64)
		long, _ = strconv.ParseFloat(strings.TrimSpace(longs[0].InnerText()), 64)
		return lat, long
	}

	if points := descendantsNS(parent, nsGeoRSSSimple, "point"); len(points) > 0 {
		parts := strings.Fields(points[0].InnerText())
		if len(parts) == 2 {
			lat, _ = strconv.ParseFloat(parts[0], 64)
			long, _ = strconv.ParseFloat(parts[1], 64)
		}
	}
	return lat, long
}

// GetEncEnclosures builds enclosures from enc:enclosure elements of the RSS
// enclosure module, reading rdf:resource as the URL.
func GetEncEnclosures(parent *xmlquery.Node) []domain.Enclosure {
	var out []domain.Enclosure
	for _, n := range descendantsNS(parent, nsEnc, "enclosure") {
		url, _ := attrNS(n, nsRDF, "resource")
		mime, _ := attrNS(n, nsEnc, "type")
		lengthStr, ok := attrNS(n, nsEnc, "length")
		if !ok {
			lengthStr = "-1"
		}
		length, _ := strconv.ParseInt(lengthStr, 10, 64)
		out = append(out, domain.Enclosure{
			URL:    url,
			Type:   mime,
			Length: length,
		})
	}
	return out
}
