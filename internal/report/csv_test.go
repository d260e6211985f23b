package report

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	records := []domain.Applicant{
		{FullName: `Jane "JJ" Doe`, Position: "Nurse, ICU", Status: "hired", Education: "BSN", Email: "jane@example.com", Phone: "+63 912", CreatedAt: "2025-01-15"},
		{FullName: "Line\nBreak", Position: "Driver", CreatedAt: "not a date"},
		{},
	}

	var b strings.Builder
	if err := WriteCSV(&b, records, time.UTC); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	parsed, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	if !reflect.DeepEqual(parsed[0], Header) {
		t.Fatalf("header = %v", parsed[0])
	}
	if len(parsed) != len(records)+1 {
		t.Fatalf("expected %d lines, got %d", len(records)+1, len(parsed))
	}

	want := [][]string{
		{`Jane "JJ" Doe`, "Nurse, ICU", "hired", "BSN", "jane@example.com", "+63 912", "1/15/2025"},
		{"Line\nBreak", "Driver", "", "", "", "", "not a date"},
		{"", "", "", "", "", "", ""},
	}
	if !reflect.DeepEqual(parsed[1:], want) {
		t.Fatalf("rows = %q, want %q", parsed[1:], want)
	}
}

func TestWriteCSVFormat(t *testing.T) {
	records := []domain.Applicant{{FullName: `a"b`, CreatedAt: "2025-03-04T10:00:00Z"}}

	got := string(EncodeCSV(records, time.UTC))
	want := "Full Name,Position,Status,Education,Email,Phone,Applied Date\n" +
		`"a""b","","","","","","3/4/2025"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	got := string(EncodeCSV(nil, time.UTC))
	if got != strings.Join(Header, ",") {
		t.Fatalf("got %q", got)
	}
}

func TestAppliedDateUsesLocation(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	if got := AppliedDate("2025-01-31T20:00:00Z", manila); got != "2/1/2025" {
		t.Fatalf("got %q, want 2/1/2025", got)
	}
}

func TestFilenameUsesUTCDate(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	now := time.Date(2025, 6, 1, 3, 0, 0, 0, manila)

	if got := Filename(now); got != "recruitment-report-2025-05-31.csv" {
		t.Fatalf("got %q", got)
	}
}

func TestSheetRows(t *testing.T) {
	rows := SheetRows([]domain.Applicant{{FullName: "x", CreatedAt: "2025-02-03"}}, time.UTC)

	if len(rows) != 2 || rows[0][0] != "Full Name" || rows[1][0] != "x" || rows[1][6] != "2/3/2025" {
		t.Fatalf("unexpected rows %v", rows)
	}
}
