package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Parser turns a fetched feed document into raw items. JSON documents
// (Inoreader-style "items" array, bare arrays tolerated) are decoded
// as-is; everything else goes through gofeed so RSS and Atom sources
// work too. Either way the output is the same RawItem shape and the
// Normalizer stays the single place that interprets fields.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) ([]RawItem, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("feed document is empty")
	}

	if items, ok := p.parseJSON(data); ok {
		return items, nil
	}

	return p.parseSyndication(data)
}

func (p *Parser) parseJSON(data []byte) ([]RawItem, bool) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}

	if trimmed[0] == '[' {
		var items []RawItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, false
		}
		return items, true
	}

	var doc struct {
		Items []RawItem `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, false
	}
	return doc.Items, true
}

func (p *Parser) parseSyndication(data []byte) ([]RawItem, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		raw := RawItem{
			"id":    item.GUID,
			"title": item.Title,
			"link":  item.Link,
		}
		if item.Published != "" {
			raw["published"] = item.Published
		} else if item.Updated != "" {
			raw["updated"] = item.Updated
		}
		if item.Content != "" {
			raw["content_html"] = item.Content
		} else if item.Description != "" {
			raw["content_html"] = item.Description
		}
		items = append(items, raw)
	}

	return items, nil
}
