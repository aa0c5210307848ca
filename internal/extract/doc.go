// Package extract pulls labeled numeric fields out of Borsa Italiana
// detail pages.
//
// The extraction is keyword-proximity based and therefore coupled to the
// site's markup; callers only see the narrow Extractor interface so the
// parsing strategy can be swapped without touching them. Two strategies
// ship: a raw-string span scan (SpanExtractor, the default) and an XPath
// walk over the parsed document (XPathExtractor).
package extract
