package library

import (
	"sort"
	"strings"
)

// PageSize is the fixed page window used by every list view.
const PageSize = 6

// SortOrder selects ascending or descending comparison.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// BookSortField names a sortable column of the catalog.
type BookSortField string

const (
	BooksByTitle    BookSortField = "title"
	BooksByAuthor   BookSortField = "author"
	BooksByCategory BookSortField = "category"
)

// RecordSortField names a sortable column of the borrow ledger.
type RecordSortField string

const (
	RecordsByDueDate    RecordSortField = "dueDate"
	RecordsByBorrowDate RecordSortField = "borrowDate"
	RecordsByBookTitle  RecordSortField = "title"
)

// FilterBooks keeps the books whose title, author and category concatenation
// contains query, case-insensitively. An empty query returns the input
// unchanged, order preserved.
func FilterBooks(books []Book, query string) []Book {
	needle := strings.ToLower(query)
	if needle == "" {
		return books
	}
	var out []Book
	for _, b := range books {
		haystack := strings.ToLower(b.Title + " " + b.Author + " " + b.Category)
		if strings.Contains(haystack, needle) {
			out = append(out, b)
		}
	}
	return out
}

// SortBooks returns a sorted copy of books, ordered by the chosen field with
// case-insensitive string comparison. Equal keys keep their relative order.
func SortBooks(books []Book, field BookSortField, order SortOrder) []Book {
	out := make([]Book, len(books))
	copy(out, books)

	key := func(b Book) string {
		switch field {
		case BooksByAuthor:
			return strings.ToLower(b.Author)
		case BooksByCategory:
			return strings.ToLower(b.Category)
		default:
			return strings.ToLower(b.Title)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return key(out[j]) < key(out[i])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

// FilterRecords keeps the records whose book title, book author and student
// name concatenation contains query, case-insensitively.
func FilterRecords(recs []BorrowRecord, query string) []BorrowRecord {
	needle := strings.ToLower(query)
	if needle == "" {
		return recs
	}
	var out []BorrowRecord
	for _, r := range recs {
		haystack := strings.ToLower(r.Book.Title + " " + r.Book.Author + " " + r.Student.Name)
		if strings.Contains(haystack, needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortRecords returns a sorted copy of recs. Date fields compare
// chronologically; the title field compares case-insensitively.
func SortRecords(recs []BorrowRecord, field RecordSortField, order SortOrder) []BorrowRecord {
	out := make([]BorrowRecord, len(recs))
	copy(out, recs)

	less := func(a, b BorrowRecord) bool {
		switch field {
		case RecordsByBorrowDate:
			return a.BorrowDate.Before(b.BorrowDate)
		case RecordsByBookTitle:
			return strings.ToLower(a.Book.Title) < strings.ToLower(b.Book.Title)
		default:
			return a.DueDate.Before(b.DueDate)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Paginate slices items into the window for page (1-based) and reports the
// total page count. Out-of-range pages clamp to the nearest valid page; an
// empty input has zero pages and an empty window.
func Paginate[T any](items []T, page int) ([]T, int) {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if totalPages == 0 {
		return nil, 0
	}
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}
	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi], totalPages
}
