package universe

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

const (
	isinColumn     = "ISIN Code"
	currencyColumn = "Currency"
)

// Loader fetches and parses the instrument master list.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a Loader with a bounded HTTP timeout for remote lists.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Load reads the listino from a local path or an http(s) URL and returns
// the unique, sorted ISINs whose Currency matches (all currencies when
// currency is empty).
func (l *Loader) Load(ctx context.Context, source, currency string) ([]string, error) {
	r, closeFn, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return ParseListino(r, currency)
}

// LoadPlain reads an ISIN-per-line file, ignoring blanks and # comments.
func (l *Loader) LoadPlain(ctx context.Context, source string) ([]string, error) {
	r, closeFn, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var isins []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		isins = append(isins, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read isin list: %w", err)
	}
	return unique(isins), nil
}

func (l *Loader) open(ctx context.Context, source string) (io.Reader, func() error, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		return resp.Body, resp.Body.Close, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", source, err)
	}
	return f, f.Close, nil
}

// ParseListino parses the semicolon-separated instrument master.
func ParseListino(r io.Reader, currency string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse listino: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("listino is empty")
	}

	isinIdx, currencyIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case isinColumn:
			isinIdx = i
		case currencyColumn:
			currencyIdx = i
		}
	}
	if isinIdx < 0 {
		return nil, fmt.Errorf("listino has no %q column", isinColumn)
	}
	if currency != "" && currencyIdx < 0 {
		return nil, fmt.Errorf("listino has no %q column", currencyColumn)
	}

	var isins []string
	for _, row := range rows[1:] {
		if isinIdx >= len(row) {
			continue
		}
		if currency != "" {
			if currencyIdx >= len(row) || !strings.EqualFold(strings.TrimSpace(row[currencyIdx]), currency) {
				continue
			}
		}
		isin := strings.ToUpper(strings.TrimSpace(row[isinIdx]))
		if isin == "" {
			continue
		}
		isins = append(isins, isin)
	}

	return unique(isins), nil
}

func unique(isins []string) []string {
	seen := make(map[string]bool, len(isins))
	out := make([]string, 0, len(isins))
	for _, isin := range isins {
		if seen[isin] {
			continue
		}
		seen[isin] = true
		out = append(out, isin)
	}
	sort.Strings(out)
	return out
}
