package library

import (
	"fmt"
	"time"
)

// Role identifies which set of actions a session may perform.
type Role string

const (
	RoleStudent   Role = "student"
	RoleLibrarian Role = "librarian"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleLibrarian
}

// Session is the authenticated identity held by the client for the current
// login. It is issued by the remote service and persisted locally so it
// survives restarts.
type Session struct {
	SubjectID string `json:"subjectId"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Token     string `json:"token"`
}

// Book is a catalog entry. The remote service owns it; the client only holds
// a fetched copy, patched locally after confirmed mutations.
type Book struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Category   string `json:"category"`
	Available  bool   `json:"available"`
	CoverImage string `json:"coverImage,omitempty"`
}

// BookRef is the book projection embedded in a borrow record.
type BookRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage,omitempty"`
}

// UserRef is the borrower projection embedded in a borrow record.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BorrowRecord links a book, a borrower and the lending timeline. A nil
// ReturnDate marks the record active. IsOverdue and Fine are computed by the
// server and treated as opaque here.
type BorrowRecord struct {
	ID         string     `json:"id"`
	Book       BookRef    `json:"book"`
	Student    UserRef    `json:"student"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	IsOverdue  bool       `json:"isOverdue"`
	Fine       float64    `json:"fine"`
}

// Active reports whether the book has not been returned yet.
func (r *BorrowRecord) Active() bool { return r.ReturnDate == nil }

// ReturnResult is the payload of a successful return call. The server may
// send more fields; the client only consumes the fine.
type ReturnResult struct {
	Fine float64 `json:"fine"`
}

// APIError is a request the remote service rejected. Message carries the
// server-provided explanation when one was sent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}
