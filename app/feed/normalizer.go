package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// timestampFields is the ordered list of fields tried for an item's
// publication instant. Inoreader emits timestampUsec/crawlTimeMsec,
// JSON Feed emits date_published, plain RSS-to-JSON bridges emit
// published/updated.
var timestampFields = []string{
	"date_published",
	"published",
	"updated",
	"crawled",
	"timestampUsec",
	"crawlTimeMsec",
}

// Normalizer maps heterogeneous raw feed-item shapes into the canonical
// Item. It performs no network I/O and never fabricates data: an item
// with no parseable date gets a nil PublishedAt, not "now".
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Run(raw RawItem, order int) Item {
	item := Item{
		Title:     strings.TrimSpace(stringField(raw, "title")),
		FeedOrder: order,
	}

	item.URL = n.resolveURL(raw)

	publishedAt, rawTimestamp := n.resolveTimestamp(raw)
	item.PublishedAt = publishedAt

	item.RawContentHTML = n.resolveContent(raw)
	item.ID = n.deriveID(raw, item, rawTimestamp)

	return item
}

// resolveURL picks the item's source URL: canonical/alternate arrays of
// {href} objects first, then direct url/link fields, then an id-like
// field that happens to be a well-formed absolute URL.
func (n *Normalizer) resolveURL(raw RawItem) string {
	for _, key := range []string{"canonical", "alternate"} {
		arr, ok := raw[key].([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		entry, ok := arr[0].(map[string]any)
		if !ok {
			continue
		}
		if href := strings.TrimSpace(stringField(entry, "href")); isAbsoluteURL(href) {
			return href
		}
	}

	for _, key := range []string{"url", "link"} {
		if value := strings.TrimSpace(stringField(raw, key)); isAbsoluteURL(value) {
			return value
		}
	}

	for _, key := range []string{"originId", "id"} {
		if value := strings.TrimSpace(stringField(raw, key)); isAbsoluteURL(value) {
			return value
		}
	}

	return ""
}

// resolveTimestamp returns the first field that parses as an absolute
// instant, normalized to UTC, along with the raw value it came from.
func (n *Normalizer) resolveTimestamp(raw RawItem) (*time.Time, string) {
	for _, key := range timestampFields {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}

		switch v := value.(type) {
		case float64:
			if t := epochToTime(v); t != nil {
				return t, fmt.Sprintf("%.0f", v)
			}
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				continue
			}
			if epoch, err := strconv.ParseFloat(trimmed, 64); err == nil {
				if t := epochToTime(epoch); t != nil {
					return t, trimmed
				}
				continue
			}
			if parsed, err := dateparse.ParseAny(trimmed); err == nil {
				utc := parsed.UTC()
				return &utc, trimmed
			}
		}
	}

	return nil, ""
}

// epochToTime interprets a numeric timestamp by magnitude: seconds,
// milliseconds or microseconds since the Unix epoch.
func epochToTime(v float64) *time.Time {
	if v <= 0 {
		return nil
	}

	var t time.Time
	switch {
	case v < 1e11:
		t = time.Unix(int64(v), 0)
	case v < 1e14:
		t = time.UnixMilli(int64(v))
	default:
		t = time.UnixMicro(int64(v))
	}

	utc := t.UTC()
	return &utc
}

// resolveContent extracts the bundled body HTML, trying the nested
// content/summary objects before the flat content_html field.
func (n *Normalizer) resolveContent(raw RawItem) string {
	for _, key := range []string{"content", "summary"} {
		if nested, ok := raw[key].(map[string]any); ok {
			if html := stringField(nested, "content"); html != "" {
				return html
			}
		}
	}

	if html := stringField(raw, "content_html"); html != "" {
		return html
	}

	// Plain-string content/summary, seen on some bridges.
	for _, key := range []string{"content", "summary"} {
		if html := stringField(raw, key); html != "" {
			return html
		}
	}

	return ""
}

// deriveID produces a stable identifier: the native id if present, else
// a hash of the resolved URL, else a hash of title plus the raw
// timestamp value. Identical raw input always yields the same id.
func (n *Normalizer) deriveID(raw RawItem, item Item, rawTimestamp string) string {
	if id := strings.TrimSpace(stringField(raw, "id")); id != "" {
		return id
	}

	if item.URL != "" {
		return hashID(item.URL)
	}

	return hashID(item.Title + "|" + rawTimestamp)
}

func hashID(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func isAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func stringField(m map[string]any, key string) string {
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}
