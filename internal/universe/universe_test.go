package universe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const listino = `Description;ISIN Code;Market;Currency
BTP 2030;IT0001234567;MOT;EUR
OAT 2032;FR0000000001;MOT;EUR
GILT 2028;GB0000000002;MOT;GBP
BTP 2030 DUP;it0001234567;MOT;EUR
BUND 2029;DE0000000003;MOT;eur
NO ISIN;;MOT;EUR
`

// TestParseListino tests the instrument master parser.
func TestParseListino(t *testing.T) {
	t.Run("currency filter with dedupe and sort", func(t *testing.T) {
		got, err := ParseListino(strings.NewReader(listino), "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"DE0000000003", "FR0000000001", "IT0001234567"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("empty currency keeps all rows", func(t *testing.T) {
		got, err := ParseListino(strings.NewReader(listino), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 4 {
			t.Errorf("len = %d, want 4", len(got))
		}
	})

	t.Run("missing isin column", func(t *testing.T) {
		if _, err := ParseListino(strings.NewReader("Description;Currency\nBTP;EUR\n"), "EUR"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("missing currency column only matters when filtering", func(t *testing.T) {
		data := "ISIN Code\nIT0001234567\n"
		if _, err := ParseListino(strings.NewReader(data), "EUR"); err == nil {
			t.Error("expected error when filtering without a Currency column")
		}
		got, err := ParseListino(strings.NewReader(data), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := ParseListino(strings.NewReader(""), "EUR"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

// TestLoad tests the local-file and HTTP source paths.
func TestLoad(t *testing.T) {
	t.Run("local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "listino.csv")
		if err := os.WriteFile(path, []byte(listino), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := NewLoader(time.Second).Load(context.Background(), path, "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("http source", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(listino))
		}))
		defer server.Close()

		got, err := NewLoader(time.Second).Load(context.Background(), server.URL, "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("http failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		if _, err := NewLoader(time.Second).Load(context.Background(), server.URL, "EUR"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewLoader(time.Second).Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), "EUR"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

// TestLoadPlain tests the ISIN-per-line format.
func TestLoadPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isins.txt")
	data := "# watchlist\nIT0001234567\n\nfr0000000001\nIT0001234567\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewLoader(time.Second).LoadPlain(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"FR0000000001", "IT0001234567"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
