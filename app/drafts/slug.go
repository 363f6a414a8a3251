package drafts

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 80

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the filesystem-and-URL-safe fragment of a draft
// filename: diacritics stripped, lower-cased, non-alphanumeric runs
// collapsed to single hyphens, bounded length. Titles that slug down to
// nothing fall back to a hash so the filename is never empty.
func Slugify(title string) string {
	decomposed := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(decomposed, title)
	if err != nil {
		ascii = title
	}

	slug := strings.ToLower(ascii)
	slug = nonAlnumRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	if slug == "" {
		sum := sha256.Sum256([]byte(title))
		slug = hex.EncodeToString(sum[:])[:12]
	}

	return slug
}
