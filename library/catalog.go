package library

import (
	"context"
	"fmt"
)

// CatalogView owns the book-catalog screen: the fetched book list, the
// free-text filter, the sort choice and the page window, plus the borrow and
// delete actions. Derived views recompute from the latest fetched state;
// nothing here is locally authoritative.
type CatalogView struct {
	api     *Client
	session *Session

	Books []Book

	Query     string
	SortField BookSortField
	SortOrder SortOrder
	Page      int
}

// NewCatalogView builds a catalog for the given session with default
// sorting (title, ascending) on the first page.
func NewCatalogView(api *Client, sess *Session) *CatalogView {
	return &CatalogView{
		api:       api,
		session:   sess,
		SortField: BooksByTitle,
		SortOrder: Ascending,
		Page:      1,
	}
}

// Load fetches the catalog and replaces the local copy wholesale.
func (v *CatalogView) Load(ctx context.Context) error {
	books, err := v.api.Books(ctx)
	if err != nil {
		return err
	}
	v.Books = books
	return nil
}

// Visible applies filter, sort and pagination and returns the current page
// window along with the total page count.
func (v *CatalogView) Visible() ([]Book, int) {
	filtered := FilterBooks(v.Books, v.Query)
	return Paginate(SortBooks(filtered, v.SortField, v.SortOrder), v.Page)
}

// SetQuery updates the filter and rewinds to the first page, since the old
// page index is meaningless against a new result set.
func (v *CatalogView) SetQuery(query string) {
	v.Query = query
	v.Page = 1
}

// NextPage advances one page, clamped at the last page.
func (v *CatalogView) NextPage() {
	if _, total := v.Visible(); v.Page < total {
		v.Page++
	}
}

// PrevPage goes back one page, clamped at the first.
func (v *CatalogView) PrevPage() {
	if v.Page > 1 {
		v.Page--
	}
}

// CanBorrow reports whether the borrow action is offered for b: students
// only, and only while the book is available.
func (v *CatalogView) CanBorrow(b Book) bool {
	return v.session.Role == RoleStudent && b.Available
}

// CanManage reports whether catalog mutations (delete) are offered.
func (v *CatalogView) CanManage() bool {
	return v.session.Role == RoleLibrarian
}

// Borrow checks the book out through the remote service and, on success,
// patches the local copy to unavailable so it is no longer offered.
func (v *CatalogView) Borrow(ctx context.Context, bookID string) error {
	idx := v.indexOf(bookID)
	if idx < 0 {
		return fmt.Errorf("no book with id %s", bookID)
	}
	if !v.CanBorrow(v.Books[idx]) {
		return fmt.Errorf("%q is not available for borrowing", v.Books[idx].Title)
	}
	if _, err := v.api.Borrow(ctx, bookID); err != nil {
		return err
	}
	v.Books[idx].Available = false
	return nil
}

// Delete removes the book through the remote service and drops it from the
// local copy on success. The CLI layer is responsible for confirming first.
func (v *CatalogView) Delete(ctx context.Context, bookID string) error {
	idx := v.indexOf(bookID)
	if idx < 0 {
		return fmt.Errorf("no book with id %s", bookID)
	}
	if err := v.api.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	v.Books = append(v.Books[:idx], v.Books[idx+1:]...)
	return nil
}

func (v *CatalogView) indexOf(bookID string) int {
	for i := range v.Books {
		if v.Books[i].ID == bookID {
			return i
		}
	}
	return -1
}
