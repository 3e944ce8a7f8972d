package library

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// overdueGraceDays is the grace period the overdue report assumes, counted
// from the borrow date. Display-only: the server's isOverdue/fine fields
// remain authoritative everywhere else.
const overdueGraceDays = 3

// FormState tracks the add/edit book form.
type FormState int

const (
	FormIdle FormState = iota
	FormEditing
	FormSubmitting
)

// BookForm holds the add/edit form fields.
type BookForm struct {
	Title     string
	Author    string
	Category  string
	CoverPath string
}

// ManageView owns the librarian dashboard: catalog maintenance with the
// add/edit form, the full borrow list and the overdue report.
type ManageView struct {
	api *Client

	Books    []Book
	Borrowed []BorrowRecord
	Overdue  []BorrowRecord

	Query string

	Form      BookForm
	State     FormState
	editingID string
}

// NewManageView builds an empty dashboard with an idle form.
func NewManageView(api *Client) *ManageView {
	return &ManageView{api: api}
}

// Load fetches the catalog, the full borrow list and the overdue list,
// replacing the local copies wholesale.
func (v *ManageView) Load(ctx context.Context) error {
	books, err := v.api.Books(ctx)
	if err != nil {
		return err
	}
	borrowed, err := v.api.AllBorrows(ctx)
	if err != nil {
		return err
	}
	overdue, err := v.api.OverdueBorrows(ctx)
	if err != nil {
		return err
	}
	v.Books = books
	v.Borrowed = borrowed
	v.Overdue = overdue
	return nil
}

// FilteredBooks applies the free-text filter to the managed catalog.
func (v *ManageView) FilteredBooks() []Book {
	return FilterBooks(v.Books, v.Query)
}

// StartEdit populates the form from an existing book and switches the form
// into editing mode.
func (v *ManageView) StartEdit(bookID string) error {
	for _, b := range v.Books {
		if b.ID == bookID {
			v.Form = BookForm{Title: b.Title, Author: b.Author, Category: b.Category}
			v.State = FormEditing
			v.editingID = bookID
			return nil
		}
	}
	return fmt.Errorf("no book with id %s", bookID)
}

// Editing returns the id of the book being edited, if any.
func (v *ManageView) Editing() (string, bool) {
	return v.editingID, v.editingID != ""
}

// ResetForm clears the fields and returns the form to idle.
func (v *ManageView) ResetForm() {
	v.Form = BookForm{}
	v.State = FormIdle
	v.editingID = ""
}

// Submit sends the form to the remote service: a create when no book is
// being edited, an update otherwise. On success the local catalog is patched
// and the form resets; on failure the fields stay put for retry.
func (v *ManageView) Submit(ctx context.Context) (*Book, error) {
	if v.State == FormSubmitting {
		return nil, fmt.Errorf("a submission is already in progress")
	}
	if strings.TrimSpace(v.Form.Title) == "" ||
		strings.TrimSpace(v.Form.Author) == "" ||
		strings.TrimSpace(v.Form.Category) == "" {
		return nil, fmt.Errorf("title, author and category are required")
	}

	prev := v.State
	v.State = FormSubmitting

	in := BookInput{
		Title:     v.Form.Title,
		Author:    v.Form.Author,
		Category:  v.Form.Category,
		CoverPath: v.Form.CoverPath,
	}

	if v.editingID == "" {
		book, err := v.api.CreateBook(ctx, in)
		if err != nil {
			v.State = prev
			return nil, err
		}
		v.Books = append(v.Books, *book)
		v.ResetForm()
		return book, nil
	}

	book, err := v.api.UpdateBook(ctx, v.editingID, in)
	if err != nil {
		v.State = prev
		return nil, err
	}
	for i := range v.Books {
		if v.Books[i].ID == v.editingID {
			v.Books[i] = *book
			break
		}
	}
	v.ResetForm()
	return book, nil
}

// Delete removes the book remotely and drops it from the local catalog.
func (v *ManageView) Delete(ctx context.Context, bookID string) error {
	if err := v.api.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	for i := range v.Books {
		if v.Books[i].ID == bookID {
			v.Books = append(v.Books[:i], v.Books[i+1:]...)
			break
		}
	}
	return nil
}

// OverdueRow is one line of the overdue report.
type OverdueRow struct {
	BookTitle   string
	StudentName string
	BorrowDate  time.Time
	DaysOverdue int
}

// OverdueReport derives the report rows from the overdue list. Days overdue
// is elapsed whole days since the borrow date minus the grace period,
// floored at zero for display.
func (v *ManageView) OverdueReport(now time.Time) []OverdueRow {
	rows := make([]OverdueRow, 0, len(v.Overdue))
	for _, r := range v.Overdue {
		rows = append(rows, OverdueRow{
			BookTitle:   r.Book.Title,
			StudentName: r.Student.Name,
			BorrowDate:  r.BorrowDate,
			DaysOverdue: DaysOverdue(r.BorrowDate, now),
		})
	}
	return rows
}

// DaysOverdue computes the display-only overdue day count for a loan taken
// out at borrowDate: floor(elapsed days) minus the grace period, never
// negative.
func DaysOverdue(borrowDate, now time.Time) int {
	days := int(now.Sub(borrowDate).Hours()/24) - overdueGraceDays
	if days < 0 {
		return 0
	}
	return days
}
