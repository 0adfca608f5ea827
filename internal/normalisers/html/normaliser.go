package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts HTML article fields to plain text.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Normalise strips markup from the title, summary and content.
// Plain text passes through with only whitespace collapsed.
func (n *Normaliser) Normalise(ctx context.Context, fields domain.ArticleFields) (domain.ArticleFields, error) {
	if err := ctx.Err(); err != nil {
		return fields, err
	}

	fields.Title = strings.Join(strings.Fields(StripHTML(fields.Title)), " ")
	fields.Author = strings.TrimSpace(html.UnescapeString(fields.Author))
	fields.Summary = StripHTML(fields.Summary)
	fields.Content = StripHTML(fields.Content)
	return fields, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	cdata             = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|figure|figcaption)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|figure|figcaption)[^>]*>`)
	lineBreaks        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t\p{Zs}]+`)
	imgSrc            = regexp.MustCompile(`(?i)<img\b[^>]*?\bsrc\s*=\s*["']([^"']+)["']`)
)

// StripHTML removes tags and returns the readable text, one block per line.
func StripHTML(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return joinLines(content)
	}

	content = cdata.ReplaceAllString(content, "$1")
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, noscriptTag, svgTag, htmlComments} {
		content = re.ReplaceAllString(content, "")
	}

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = lineBreaks.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	return joinLines(content)
}

// joinLines collapses horizontal whitespace and drops empty lines.
func joinLines(content string) string {
	lines := strings.Split(multiSpaces.ReplaceAllString(content, " "), "\n")
	result := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// ImageSources returns the src of every <img> in content, in document
// order and without duplicates.
func ImageSources(content string) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, m := range imgSrc.FindAllStringSubmatch(content, -1) {
		src := strings.TrimSpace(html.UnescapeString(m[1]))
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}
