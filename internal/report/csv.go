package report

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/dashboard"
	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// Header is the first line of every report
var Header = []string{"Full Name", "Position", "Status", "Education", "Email", "Phone", "Applied Date"}

const appliedDateLayout = "1/2/2006"

// AppliedDate renders createdAt as M/D/YYYY in loc, or returns it untouched
// when it cannot be parsed
func AppliedDate(createdAt string, loc *time.Location) string {
	t, ok := dashboard.ParseDate(createdAt, loc)
	if !ok {
		return createdAt
	}
	return t.Format(appliedDateLayout)
}

// Row returns the report columns of one applicant, in Header order
func Row(a domain.Applicant, loc *time.Location) []string {
	return []string{
		a.FullName,
		a.Position,
		a.Status,
		a.Education,
		a.Email,
		a.Phone,
		AppliedDate(a.CreatedAt, loc),
	}
}

// Rows maps records to report rows without the header
func Rows(records []domain.Applicant, loc *time.Location) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, Row(r, loc))
	}
	return out
}

// WriteCSV writes the header line followed by one line per record. Every
// record field is double-quoted with inner quotes doubled; lines are
// separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, records []domain.Applicant, loc *time.Location) error {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))

	for _, row := range Rows(records, loc) {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// EncodeCSV is WriteCSV into a byte slice
func EncodeCSV(records []domain.Applicant, loc *time.Location) []byte {
	var buf bytes.Buffer
	_ = WriteCSV(&buf, records, loc)
	return buf.Bytes()
}

// Filename is recruitment-report-<YYYY-MM-DD>.csv using the UTC date of now
func Filename(now time.Time) string {
	return "recruitment-report-" + now.UTC().Format("2006-01-02") + ".csv"
}

// SheetRows is Header plus Rows in the cell shape the Sheets API expects
func SheetRows(records []domain.Applicant, loc *time.Location) [][]interface{} {
	out := make([][]interface{}, 0, len(records)+1)
	out = append(out, toCells(Header))
	for _, row := range Rows(records, loc) {
		out = append(out, toCells(row))
	}
	return out
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
