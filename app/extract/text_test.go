package extract

import (
	"strings"
	"testing"
)

func TestStripHTML_RemovesNonContentTags(t *testing.T) {
	html := `<html><body>
		<script>var tracking = true;</script>
		<style>.hidden { display: none; }</style>
		<noscript>Enable JavaScript</noscript>
		<p>Visible paragraph text.</p>
	</body></html>`

	text := StripHTML(html)

	if !strings.Contains(text, "Visible paragraph text.") {
		t.Errorf("Expected visible text to survive, got %q", text)
	}
	for _, forbidden := range []string{"tracking", "display: none", "Enable JavaScript"} {
		if strings.Contains(text, forbidden) {
			t.Errorf("Expected %q to be stripped, got %q", forbidden, text)
		}
	}
}

func TestStripHTML_EmptyInput(t *testing.T) {
	if got := StripHTML("   \n\t "); got != "" {
		t.Errorf("Expected empty output for blank input, got %q", got)
	}
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"space runs", "a    b\tc", "a b c"},
		{"newline runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"indented blank lines", "a\n   \n\t\nb", "a\n\nb"},
		{"surrounding whitespace", "  \n a b \n  ", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three\nfour"); got != 4 {
		t.Errorf("Expected 4, got %d", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}
