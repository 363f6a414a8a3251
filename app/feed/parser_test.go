package feed

import (
	"testing"
)

func TestParser_Run_JSONItemsObject(t *testing.T) {
	parser := NewParser()

	data := []byte(`{
		"items": [
			{"id": "1", "title": "First", "url": "https://example.com/1"},
			{"id": "2", "title": "Second", "url": "https://example.com/2"}
		]
	}`)

	items, err := parser.Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0]["title"] != "First" {
		t.Errorf("Expected title First, got %v", items[0]["title"])
	}
}

func TestParser_Run_BareJSONArray(t *testing.T) {
	parser := NewParser()

	data := []byte(`[{"id": "1", "title": "Only"}]`)

	items, err := parser.Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
}

func TestParser_Run_RSSFallback(t *testing.T) {
	parser := NewParser()

	data := []byte(`<?xml version="1.0"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<item>
			<guid>rss-1</guid>
			<title>RSS Story</title>
			<link>https://example.com/rss-1</link>
			<pubDate>Fri, 28 Aug 2026 10:00:00 GMT</pubDate>
			<description>Short description body</description>
		</item>
	</channel>
</rss>`)

	items, err := parser.Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	raw := items[0]
	if raw["id"] != "rss-1" {
		t.Errorf("Expected guid as id, got %v", raw["id"])
	}
	if raw["link"] != "https://example.com/rss-1" {
		t.Errorf("Expected link carried over, got %v", raw["link"])
	}
	if raw["published"] == nil {
		t.Error("Expected pubDate mapped to published")
	}
	if raw["content_html"] != "Short description body" {
		t.Errorf("Expected description as content_html, got %v", raw["content_html"])
	}
}

func TestParser_Run_EmptyDocument(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Run(nil); err == nil {
		t.Error("Expected an error for an empty document")
	}
}

func TestParser_Run_Garbage(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Run([]byte("not a feed in any format")); err == nil {
		t.Error("Expected an error for an unparseable document")
	}
}
