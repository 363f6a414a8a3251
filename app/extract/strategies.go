package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Strategy converts raw page markup into plain article text. Strategies
// are attempted in order; a result only counts once its cleaned text
// passes the word minimum, which the Extractor checks uniformly.
type Strategy interface {
	Name() string
	Run(data []byte, pageURL string) (*Content, error)
}

// readabilityStrategy runs the statistical boilerplate-removal
// algorithm and takes its plain-text rendition of the main content.
type readabilityStrategy struct{}

func (s *readabilityStrategy) Name() string { return "readability" }

func (s *readabilityStrategy) Run(data []byte, pageURL string) (*Content, error) {
	parsedURL, _ := url.Parse(pageURL)

	article, err := readability.FromReader(bytes.NewReader(data), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("readability parse failed: %w", err)
	}

	if article.TextContent == "" {
		return nil, fmt.Errorf("readability produced no text")
	}

	return &Content{
		Title: strings.TrimSpace(article.Title),
		Text:  article.TextContent,
	}, nil
}

// domStrategy walks the document with goquery, drops chrome elements
// and collects paragraph text from the usual article containers.
type domStrategy struct{}

// paragraphSelectors is a ladder from specific article containers down
// to bare paragraphs; the first selector yielding text wins.
var paragraphSelectors = []string{
	"article p",
	".article p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

func (s *domStrategy) Name() string { return "dom" }

func (s *domStrategy) Run(data []byte, pageURL string) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, form").Remove()

	var paragraphs []string
	for _, selector := range paragraphSelectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			break
		}
	}

	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no paragraph content found")
	}

	return &Content{
		Title: documentTitle(doc),
		Text:  strings.Join(paragraphs, "\n\n"),
	}, nil
}

// stripStrategy is the last resort: the whole page as tag-stripped text.
type stripStrategy struct{}

func (s *stripStrategy) Name() string { return "strip" }

func (s *stripStrategy) Run(data []byte, pageURL string) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("page has no text content")
	}

	return &Content{
		Title: documentTitle(doc),
		Text:  text,
	}, nil
}

func documentTitle(doc *goquery.Document) string {
	for _, selector := range []string{"h1", "title", ".article-title", ".headline"} {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return ""
}
