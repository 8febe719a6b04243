package dataset

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.NumCustomers = 8
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	dir := t.TempDir()
	if err := SaveCSV(dir, ds); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadCSV(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(got.Customers) != len(ds.Customers) {
		t.Fatalf("loaded %d customers, want %d", len(got.Customers), len(ds.Customers))
	}
	for i := range ds.Customers {
		if !reflect.DeepEqual(got.Customers[i], ds.Customers[i]) {
			t.Fatalf("customer %d round trip mismatch:\n got %+v\nwant %+v", i, got.Customers[i], ds.Customers[i])
		}
	}
	if !reflect.DeepEqual(got.Orders, ds.Orders) {
		t.Fatal("orders did not survive the round trip")
	}
}

func TestLoadCSVMissingFiles(t *testing.T) {
	t.Parallel()

	if _, err := LoadCSV(t.TempDir()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadCSVMalformedRows(t *testing.T) {
	t.Parallel()

	validCustomer := []string{
		"CUST0001", "Asha Rao", "asha.rao@example.com", "new",
		"['electronics', 'books']", "2025-06-01", "2025-01-10", "72",
		"morning", "[]", "researcher", "0.34", "1234.50",
	}
	validOrder := []string{"ORD00000001", "CUST0001", "2025-05-20", "100.00", "electronics", "web"}

	cases := []struct {
		name    string
		mutate  func(cust, order []string)
		wantSub string
	}{
		{"bad interests", func(c, _ []string) { c[4] = "electronics, books" }, "interests"},
		{"unterminated interests", func(c, _ []string) { c[4] = "['electronics" }, "interests"},
		{"bad created_at", func(c, _ []string) { c[6] = "10-01-2025" }, "created_at"},
		{"bad segment", func(c, _ []string) { c[3] = "platinum" }, "segment"},
		{"bad engagement", func(c, _ []string) { c[7] = "high" }, "engagement_score"},
		{"bad order date", func(_, o []string) { o[2] = "2025/05/20" }, "order_date"},
		{"bad amount", func(_, o []string) { o[3] = "hundred" }, "amount"},
		{"bad channel", func(_, o []string) { o[5] = "fax" }, "channel"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cust := append([]string(nil), validCustomer...)
			order := append([]string(nil), validOrder...)
			tc.mutate(cust, order)

			dir := t.TempDir()
			writeTestCSV(t, filepath.Join(dir, CustomersFile), customerHeader, cust)
			writeTestCSV(t, filepath.Join(dir, OrdersFile), orderHeader, order)

			_, err := LoadCSV(dir)
			if err == nil {
				t.Fatal("expected load error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("err = %v, want mention of %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoadCSVHeaderMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestCSV(t, filepath.Join(dir, CustomersFile), []string{"id", "name"}, []string{"CUST0001", "Asha"})
	writeTestCSV(t, filepath.Join(dir, OrdersFile), orderHeader)

	if _, err := LoadCSV(dir); err == nil || !strings.Contains(err.Error(), "header") {
		t.Fatalf("err = %v, want header validation failure", err)
	}
}

func writeTestCSV(t *testing.T, path string, rows ...[]string) {
	t.Helper()
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFormatList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{nil, "[]"},
		{[]string{}, "[]"},
		{[]string{"electronics"}, "['electronics']"},
		{[]string{"electronics", "home_decor"}, "['electronics', 'home_decor']"},
	}
	for _, tc := range cases {
		if got := FormatList(tc.in); got != tc.want {
			t.Fatalf("FormatList(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "[]", want: []string{}},
		{in: "['electronics']", want: []string{"electronics"}},
		{in: "['electronics', 'books']", want: []string{"electronics", "books"}},
		{in: `["electronics", "books"]`, want: []string{"electronics", "books"}},
		{in: "  ['a','b']  ", want: []string{"a", "b"}},
		{in: "electronics, books", wantErr: true},
		{in: "[electronics]", wantErr: true},
		{in: "['electronics'", wantErr: true},
		{in: "['electronics]", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseList(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseList(%q) succeeded, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseList(%q): %v", tc.in, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("ParseList(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("ParseList(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}
