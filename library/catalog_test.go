package library

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogStudentBorrowFlow(t *testing.T) {
	var borrowedID string
	borrowCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Book{
			{ID: "b1", Title: "Dune", Author: "Herbert", Category: "Fiction", Available: true},
			{ID: "b2", Title: "Emma", Author: "Austen", Category: "Fiction", Available: false},
		})
	})
	mux.HandleFunc("POST /borrow/{id}", func(w http.ResponseWriter, r *http.Request) {
		borrowedID = r.PathValue("id")
		borrowCalls++
		json.NewEncoder(w).Encode(BorrowRecord{
			ID:         "rec1",
			Book:       BookRef{ID: borrowedID, Title: "Dune"},
			BorrowDate: time.Now(),
			DueDate:    time.Now().AddDate(0, 0, 14),
		})
	})

	sess := studentSession()
	api, _ := newTestClient(t, mux, sess)
	view := NewCatalogView(api, sess)
	require.NoError(t, view.Load(context.Background()))

	// Only the available book is offered for borrowing.
	assert.True(t, view.CanBorrow(view.Books[0]))
	assert.False(t, view.CanBorrow(view.Books[1]))
	assert.False(t, view.CanManage())

	require.NoError(t, view.Borrow(context.Background(), "b1"))
	assert.Equal(t, "b1", borrowedID)

	// The local copy is patched without a refetch.
	assert.False(t, view.Books[0].Available)
	assert.False(t, view.CanBorrow(view.Books[0]))

	// A second attempt is rejected locally, before any request goes out.
	err := view.Borrow(context.Background(), "b1")
	require.Error(t, err)
	assert.Equal(t, 1, borrowCalls)
}

func TestCatalogBorrowUnknownBook(t *testing.T) {
	sess := studentSession()
	api, _ := newTestClient(t, http.NewServeMux(), sess)
	view := NewCatalogView(api, sess)
	view.Books = []Book{{ID: "b1", Title: "Dune", Available: true}}

	err := view.Borrow(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestCatalogLibrarianDelete(t *testing.T) {
	var deletedID string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		deletedID = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})

	sess := librarianSession()
	api, _ := newTestClient(t, mux, sess)
	view := NewCatalogView(api, sess)
	view.Books = []Book{
		{ID: "b1", Title: "Dune"},
		{ID: "b2", Title: "Emma"},
	}

	assert.True(t, view.CanManage())
	assert.False(t, view.CanBorrow(Book{Available: true}), "librarians do not borrow")

	require.NoError(t, view.Delete(context.Background(), "b1"))
	assert.Equal(t, "b1", deletedID)
	require.Len(t, view.Books, 1)
	assert.Equal(t, "b2", view.Books[0].ID)
}

func TestCatalogQueryRewindsPage(t *testing.T) {
	sess := studentSession()
	view := NewCatalogView(nil, sess)
	for i := 0; i < 14; i++ {
		view.Books = append(view.Books, Book{ID: string(rune('a' + i)), Title: "Book"})
	}

	view.NextPage()
	assert.Equal(t, 2, view.Page)
	view.NextPage()
	view.NextPage()
	assert.Equal(t, 3, view.Page, "page clamps at the last page")

	view.SetQuery("book")
	assert.Equal(t, 1, view.Page)

	view.PrevPage()
	assert.Equal(t, 1, view.Page, "page clamps at the first page")

	window, total := view.Visible()
	assert.Equal(t, 3, total)
	assert.Len(t, window, PageSize)
}
