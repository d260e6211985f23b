package dashboard

import (
	"errors"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

var (
	ErrPageOutOfRange  = errors.New("dashboard: page out of range")
	ErrInvalidPageSize = errors.New("dashboard: page size must be positive")
)

// DisplayRange backs "Showing From to To of Total"; From is 0 when empty
type DisplayRange struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

// Page is one slice of the filtered view
type Page struct {
	Items      []domain.Applicant `json:"items"`
	Number     int                `json:"number"`
	TotalPages int                `json:"totalPages"`
	Range      DisplayRange       `json:"range"`
	HasPrev    bool               `json:"hasPrev"`
	HasNext    bool               `json:"hasNext"`
}

// TotalPages is ceil(n/size), never less than 1
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate returns page number (1-based) of records. Pages outside
// [1, TotalPages] are rejected rather than clamped.
func Paginate(records []domain.Applicant, number, size int) (Page, error) {
	if size <= 0 {
		return Page{}, ErrInvalidPageSize
	}

	total := TotalPages(len(records), size)
	if number < 1 || number > total {
		return Page{}, ErrPageOutOfRange
	}

	start := min((number-1)*size, len(records))
	end := min(start+size, len(records))

	from := 0
	if len(records) > 0 {
		from = start + 1
	}

	return Page{
		Items:      records[start:end],
		Number:     number,
		TotalPages: total,
		Range:      DisplayRange{From: from, To: end, Total: len(records)},
		HasPrev:    number > 1,
		HasNext:    number < total,
	}, nil
}
