// ABOUTME: Literal replacement of the handful of HTML entities feeds commonly leak
// ABOUTME: Not a general entity decoder; the table is fixed on purpose

package parser

import "strings"

var entityReplacer = strings.NewReplacer(
	"&euro;", "€",
	"&quot;", "\"",
	"&amp;", "&",
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&#8217;", "'",
	"&#8230;", "...",
)

// UnescapeEntities replaces a fixed table of HTML entities with their
// literal characters.
func UnescapeEntities(text string) string {
	return entityReplacer.Replace(text)
}
