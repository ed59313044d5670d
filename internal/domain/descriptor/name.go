package descriptor

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var namePolicy = bluemonday.StrictPolicy()

// cleanName normalizes a display name: markup stripped, HTML entities
// decoded, runs of whitespace collapsed to single spaces, and the result
// NFC-normalized so visually identical names dedupe together.
func cleanName(s string) string {
	s = namePolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}
