// Package borsa provides the HTTP client for the two Borsa Italiana
// endpoints the scanner depends on.
//
// Endpoints:
//   - Instrument detail page: GET <page_base_url>/<ISIN>.html
//   - Volume history: POST <chart_url> (ChartWService GetCvals)
//
// Both are public; the charting service still expects a browser-like
// cookie/header set, which is injected at construction and never mutated
// during a run.
package borsa
