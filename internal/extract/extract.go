package extract

import (
	"strings"
)

// rightAlignedSpan is the markup carrying a field's numeric value on the
// detail page. The value is the span immediately following its label.
const rightAlignedSpan = `<span class="t-text -right">`

// Extractor locates the numeric text associated with a label in an HTML
// document. The second return is false when the label or its value is not
// present; absence is a null, not an error.
type Extractor interface {
	Extract(label string, page []byte) (string, bool)
}

// SpanExtractor scans the raw HTML for the label and takes the inner text
// of the next right-aligned span.
type SpanExtractor struct{}

// NewSpanExtractor returns the default proximity-scan extractor.
func NewSpanExtractor() SpanExtractor { return SpanExtractor{} }

// Extract implements Extractor.
func (SpanExtractor) Extract(label string, page []byte) (string, bool) {
	html := string(page)

	start := strings.Index(html, label)
	if start < 0 {
		return "", false
	}

	spanStart := strings.Index(html[start:], rightAlignedSpan)
	if spanStart < 0 {
		// Label present but no value span before document end.
		return "", false
	}
	valueStart := start + spanStart + len(rightAlignedSpan)

	spanEnd := strings.Index(html[valueStart:], "</span>")
	if spanEnd < 0 {
		return "", false
	}

	value := strings.TrimSpace(html[valueStart : valueStart+spanEnd])
	if value == "" {
		return "", false
	}
	return value, true
}
