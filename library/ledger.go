package library

import (
	"context"
	"time"
)

// LedgerView owns the borrowed-books screen. Students see their own active
// records; librarians see everyone's, returned ones included.
type LedgerView struct {
	api     *Client
	session *Session

	Records []BorrowRecord

	Query     string
	SortField RecordSortField
	SortOrder SortOrder
	Page      int
}

// NewLedgerView builds a ledger for the given session, sorted by due date
// ascending on the first page.
func NewLedgerView(api *Client, sess *Session) *LedgerView {
	return &LedgerView{
		api:       api,
		session:   sess,
		SortField: RecordsByDueDate,
		SortOrder: Ascending,
		Page:      1,
	}
}

// Load fetches the ledger for the session's role and replaces the local copy
// wholesale. The student endpoint is already scoped to the caller, but
// returned records are filtered out anyway so the screen only lists books
// still out.
func (v *LedgerView) Load(ctx context.Context) error {
	if v.session.Role == RoleLibrarian {
		recs, err := v.api.AllBorrows(ctx)
		if err != nil {
			return err
		}
		v.Records = recs
		return nil
	}

	recs, err := v.api.MyBorrows(ctx)
	if err != nil {
		return err
	}
	active := recs[:0]
	for _, r := range recs {
		if r.Active() {
			active = append(active, r)
		}
	}
	v.Records = active
	return nil
}

// Visible applies filter, sort and pagination.
func (v *LedgerView) Visible() ([]BorrowRecord, int) {
	filtered := FilterRecords(v.Records, v.Query)
	return Paginate(SortRecords(filtered, v.SortField, v.SortOrder), v.Page)
}

// SetQuery updates the filter and rewinds to the first page.
func (v *LedgerView) SetQuery(query string) {
	v.Query = query
	v.Page = 1
}

// NextPage advances one page, clamped at the last page.
func (v *LedgerView) NextPage() {
	if _, total := v.Visible(); v.Page < total {
		v.Page++
	}
}

// PrevPage goes back one page, clamped at the first.
func (v *LedgerView) PrevPage() {
	if v.Page > 1 {
		v.Page--
	}
}

// CanReturn reports whether the return action is offered for r.
func (v *LedgerView) CanReturn(r BorrowRecord) bool {
	return v.session.Role == RoleStudent && r.Active()
}

// Return closes the record through the remote service, reloads the ledger
// and reports the server-computed fine (zero when returned on time).
func (v *LedgerView) Return(ctx context.Context, recordID string) (float64, error) {
	res, err := v.api.Return(ctx, recordID)
	if err != nil {
		return 0, err
	}
	if err := v.Load(ctx); err != nil {
		// The return itself succeeded; surface the fine with the stale list.
		return res.Fine, err
	}
	return res.Fine, nil
}

// DashboardStats summarizes a student's standing.
type DashboardStats struct {
	TotalBooks int
	Borrowed   int
	History    int
	Overdue    int
	TotalFines float64
}

// StudentDashboard owns the student landing screen: the borrowable catalog,
// the active loans, the returned history and the derived stats.
type StudentDashboard struct {
	api     *Client
	session *Session

	Books   []Book
	Active  []BorrowRecord
	History []BorrowRecord

	Query     string
	SortField BookSortField
	Page      int
}

// NewStudentDashboard builds the dashboard sorted by title on the first page.
func NewStudentDashboard(api *Client, sess *Session) *StudentDashboard {
	return &StudentDashboard{api: api, session: sess, SortField: BooksByTitle, Page: 1}
}

// Load fetches the catalog and the caller's borrow records, splitting the
// records into active loans and returned history.
func (d *StudentDashboard) Load(ctx context.Context) error {
	books, err := d.api.Books(ctx)
	if err != nil {
		return err
	}
	recs, err := d.api.MyBorrows(ctx)
	if err != nil {
		return err
	}

	d.Books = books
	d.Active = nil
	d.History = nil
	for _, r := range recs {
		if r.Active() {
			d.Active = append(d.Active, r)
		} else {
			d.History = append(d.History, r)
		}
	}
	return nil
}

// AvailableBooks lists the borrowable slice of the catalog after filter,
// sort and pagination.
func (d *StudentDashboard) AvailableBooks() ([]Book, int) {
	var avail []Book
	for _, b := range FilterBooks(d.Books, d.Query) {
		if b.Available {
			avail = append(avail, b)
		}
	}
	return Paginate(SortBooks(avail, d.SortField, Ascending), d.Page)
}

// Stats derives the dashboard counters. Overdue counts active loans whose
// due date lies before now; fines are summed from the returned history.
func (d *StudentDashboard) Stats(now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalBooks: len(d.Books),
		Borrowed:   len(d.Active),
		History:    len(d.History),
	}
	for _, r := range d.Active {
		if r.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	for _, r := range d.History {
		stats.TotalFines += r.Fine
	}
	return stats
}

// Borrow checks the book out and refetches everything, since a borrow moves
// state in both the catalog and the ledger.
func (d *StudentDashboard) Borrow(ctx context.Context, bookID string) error {
	if _, err := d.api.Borrow(ctx, bookID); err != nil {
		return err
	}
	return d.Load(ctx)
}

// Return closes the loan, refetches and reports the fine.
func (d *StudentDashboard) Return(ctx context.Context, recordID string) (float64, error) {
	res, err := d.api.Return(ctx, recordID)
	if err != nil {
		return 0, err
	}
	if err := d.Load(ctx); err != nil {
		return res.Fine, err
	}
	return res.Fine, nil
}
