package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"library-client/library"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries the wiring shared by every command: configuration, the durable
// session store and the API gateway.
type app struct {
	cfg   library.Config
	store *library.SessionStore
	api   *library.Client
}

func main() {
	a := &app{}

	var apiFlag, stateFlag string

	root := &cobra.Command{
		Use:   "library-client",
		Short: "Terminal client for the library lending service",
		Long: "library-client talks to a remote library lending service: browse the\n" +
			"catalog, borrow and return books, and (for librarians) maintain the\n" +
			"catalog and track overdue loans.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = library.LoadConfig()
			if apiFlag != "" {
				a.cfg.BaseURL = apiFlag
			}
			if stateFlag != "" {
				a.cfg.StatePath = stateFlag
			}
			store, err := library.OpenSessionStore(a.cfg.StatePath)
			if err != nil {
				return fmt.Errorf("open state store: %w", err)
			}
			a.store = store
			a.api = library.NewClient(a.cfg.BaseURL, store)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.store != nil {
				a.store.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&apiFlag, "api", "", "remote API base URL (overrides LIBRARY_API_URL)")
	root.PersistentFlags().StringVar(&stateFlag, "state", "", "local state database path (overrides LIBRARY_STATE_DB)")

	root.AddCommand(
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		booksCmd(a),
		borrowedCmd(a),
		dashboardCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

func readLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// guardErr translates guard sentinels into the messages that stand in for
// the browser client's redirects.
func guardErr(err error) error {
	switch {
	case errors.Is(err, library.ErrNotLoggedIn):
		return errors.New("you are not logged in; run 'library-client login' first")
	case errors.Is(err, library.ErrNotAuthorized):
		return errors.New("access denied: your account does not have permission for this page")
	}
	return err
}

// ------------------ Auth commands ------------------

func loginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to the lending service",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := bufio.NewScanner(os.Stdin)
			email, ok := readLine(sc, "Email: ")
			if !ok || email == "" {
				return errors.New("email is required")
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			sess, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := a.store.Login(*sess); err != nil {
				return err
			}

			fmt.Printf("Welcome back, %s (%s).\n", sess.Name, sess.Role)
			fmt.Println("Run 'library-client dashboard' to get started.")
			return nil
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := bufio.NewScanner(os.Stdin)
			name, ok := readLine(sc, "Name: ")
			if !ok || name == "" {
				return errors.New("name is required")
			}
			email, ok := readLine(sc, "Email: ")
			if !ok || email == "" {
				return errors.New("email is required")
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if password == "" {
				return errors.New("password cannot be empty")
			}

			roleStr, _ := readLine(sc, "Role [student/librarian] (student): ")
			role := library.Role(roleStr)
			if roleStr == "" {
				role = library.RoleStudent
			}
			if !role.IsValid() {
				return fmt.Errorf("unknown role %q", roleStr)
			}

			sess, err := a.api.Register(cmd.Context(), name, email, password, role)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err := a.store.Login(*sess); err != nil {
				return err
			}

			fmt.Printf("Account created. Welcome, %s (%s).\n", sess.Name, sess.Role)
			return nil
		},
	}
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.store.Current() == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			if err := a.store.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := library.RequireAuth(a.store)
			if err != nil {
				return guardErr(err)
			}
			fmt.Printf("%s <%s> (%s)\n", sess.Name, sess.SubjectID, sess.Role)
			return nil
		},
	}
}

// ------------------ Catalog screen ------------------

func booksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "Browse the book catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := library.RequireAuth(a.store)
			if err != nil {
				return guardErr(err)
			}
			return catalogScreen(cmd.Context(), a, sess)
		},
	}
}

func catalogScreen(ctx context.Context, a *app, sess *library.Session) error {
	view := library.NewCatalogView(a.api, sess)
	if err := view.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		page, totalPages := view.Visible()
		renderCatalogPage(view, page, totalPages)

		fmt.Println("\nCommands: s <text> search | f title|author|category | o asc|desc | n/p page")
		if sess.Role == library.RoleStudent {
			fmt.Println("          b <row> borrow | r reload | q quit")
		} else {
			fmt.Println("          d <row> delete | r reload | q quit")
		}

		input, ok := readLine(sc, "> ")
		if !ok {
			return nil
		}
		verb, arg := splitCommand(input)

		switch verb {
		case "s", "search":
			view.SetQuery(arg)
		case "f", "field":
			switch arg {
			case "title", "author", "category":
				view.SortField = library.BookSortField(arg)
			default:
				fmt.Println("Sort field must be title, author or category.")
			}
		case "o", "order":
			switch arg {
			case "asc":
				view.SortOrder = library.Ascending
			case "desc":
				view.SortOrder = library.Descending
			default:
				fmt.Println("Order must be asc or desc.")
			}
		case "n", "next":
			view.NextPage()
		case "p", "prev":
			view.PrevPage()
		case "b", "borrow":
			book, err := pickBook(page, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := view.Borrow(ctx, book.ID); err != nil {
				fmt.Printf("Error borrowing book: %v\n", err)
			} else {
				fmt.Printf("Borrowed '%s'.\n", book.Title)
			}
		case "d", "delete":
			book, err := pickBook(page, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !view.CanManage() {
				fmt.Println("Only librarians can delete books.")
				continue
			}
			if !confirm(sc, fmt.Sprintf("Delete '%s'? [y/N]: ", book.Title)) {
				continue
			}
			if err := view.Delete(ctx, book.ID); err != nil {
				fmt.Printf("Error deleting book: %v\n", err)
			} else {
				fmt.Printf("Deleted '%s'.\n", book.Title)
			}
		case "r", "reload":
			if err := view.Load(ctx); err != nil {
				fmt.Printf("Error reloading catalog: %v\n", err)
			}
		case "q", "quit", "exit":
			return nil
		case "":
			// Refresh the display.
		default:
			fmt.Printf("Unknown command: %s\n", verb)
		}
	}
}

func renderCatalogPage(view *library.CatalogView, page []library.Book, totalPages int) {
	fmt.Printf("\nBook Catalog | sort %s %s", view.SortField, view.SortOrder)
	if view.Query != "" {
		fmt.Printf(" | filter %q", view.Query)
	}
	fmt.Println()

	if len(page) == 0 {
		fmt.Println("No books found.")
		return
	}

	fmt.Printf("%-4s %-32s %-24s %-16s %s\n", "#", "Title", "Author", "Category", "Status")
	fmt.Println(strings.Repeat("-", 90))
	for i, b := range page {
		status := "Available"
		if !b.Available {
			status = "Borrowed"
		}
		fmt.Printf("%-4d %-32s %-24s %-16s %s\n",
			i+1,
			truncateString(b.Title, 32),
			truncateString(b.Author, 24),
			truncateString(b.Category, 16),
			status)
	}
	fmt.Printf("Page %d of %d\n", view.Page, totalPages)
}

// ------------------ Ledger screen ------------------

func borrowedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "borrowed",
		Short: "List borrowed books",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := library.RequireAuth(a.store)
			if err != nil {
				return guardErr(err)
			}
			return ledgerScreen(cmd.Context(), a, sess)
		},
	}
}

func ledgerScreen(ctx context.Context, a *app, sess *library.Session) error {
	view := library.NewLedgerView(a.api, sess)
	if err := view.Load(ctx); err != nil {
		return fmt.Errorf("load borrowed books: %w", err)
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		page, totalPages := view.Visible()
		renderLedgerPage(view, sess, page, totalPages)

		fmt.Println("\nCommands: s <text> search | f due|borrowed|title | o asc|desc | n/p page")
		if sess.Role == library.RoleStudent {
			fmt.Println("          ret <row> return | r reload | q quit")
		} else {
			fmt.Println("          r reload | q quit")
		}

		input, ok := readLine(sc, "> ")
		if !ok {
			return nil
		}
		verb, arg := splitCommand(input)

		switch verb {
		case "s", "search":
			view.SetQuery(arg)
		case "f", "field":
			switch arg {
			case "due":
				view.SortField = library.RecordsByDueDate
			case "borrowed":
				view.SortField = library.RecordsByBorrowDate
			case "title":
				view.SortField = library.RecordsByBookTitle
			default:
				fmt.Println("Sort field must be due, borrowed or title.")
			}
		case "o", "order":
			switch arg {
			case "asc":
				view.SortOrder = library.Ascending
			case "desc":
				view.SortOrder = library.Descending
			default:
				fmt.Println("Order must be asc or desc.")
			}
		case "n", "next":
			view.NextPage()
		case "p", "prev":
			view.PrevPage()
		case "ret", "return":
			rec, err := pickRecord(page, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !view.CanReturn(*rec) {
				fmt.Println("This record cannot be returned.")
				continue
			}
			fine, err := view.Return(ctx, rec.ID)
			if err != nil {
				fmt.Printf("Error returning book: %v\n", err)
				continue
			}
			if fine > 0 {
				fmt.Printf("Book returned with fine: %.2f\n", fine)
			} else {
				fmt.Println("Book returned on time.")
			}
		case "r", "reload":
			if err := view.Load(ctx); err != nil {
				fmt.Printf("Error reloading: %v\n", err)
			}
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Printf("Unknown command: %s\n", verb)
		}
	}
}

func renderLedgerPage(view *library.LedgerView, sess *library.Session, page []library.BorrowRecord, totalPages int) {
	title := "All Borrowed Books"
	if sess.Role == library.RoleStudent {
		title = "My Borrowed Books"
	}
	fmt.Printf("\n%s | sort %s %s", title, view.SortField, view.SortOrder)
	if view.Query != "" {
		fmt.Printf(" | filter %q", view.Query)
	}
	fmt.Println()

	if len(page) == 0 {
		fmt.Println("No borrowed books right now.")
		return
	}

	fmt.Printf("%-4s %-30s %-20s %-12s %-12s %s\n", "#", "Title", "Student", "Due", "Returned", "Status")
	fmt.Println(strings.Repeat("-", 96))
	for i, r := range page {
		returned := "-"
		if r.ReturnDate != nil {
			returned = r.ReturnDate.Format("2006-01-02")
		}
		status := "On Time"
		if r.IsOverdue {
			status = fmt.Sprintf("Overdue (fine %.2f)", r.Fine)
		}
		fmt.Printf("%-4d %-30s %-20s %-12s %-12s %s\n",
			i+1,
			truncateString(r.Book.Title, 30),
			truncateString(r.Student.Name, 20),
			r.DueDate.Format("2006-01-02"),
			returned,
			status)
	}
	fmt.Printf("Page %d of %d\n", view.Page, totalPages)
}

// ------------------ Dashboards ------------------

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the dashboard for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := library.RequireAuth(a.store)
			if err != nil {
				return guardErr(err)
			}
			if sess.Role == library.RoleLibrarian {
				return librarianDashboard(cmd.Context(), a)
			}
			return studentDashboard(cmd.Context(), a)
		},
	}
}

func studentDashboard(ctx context.Context, a *app) error {
	sess, err := library.RequireRole(a.store, library.RoleStudent)
	if err != nil {
		return guardErr(err)
	}

	dash := library.NewStudentDashboard(a.api, sess)
	if err := dash.Load(ctx); err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		stats := dash.Stats(time.Now())
		fmt.Printf("\nWelcome, %s\n", sess.Name)
		fmt.Printf("Books: %d | Borrowed: %d | Overdue: %d | Total fines: %.2f\n",
			stats.TotalBooks, stats.Borrowed, stats.Overdue, stats.TotalFines)
		if stats.Overdue > 0 {
			fmt.Printf("You have %d overdue book(s). Please return them as soon as possible.\n", stats.Overdue)
		}

		page, totalPages := dash.AvailableBooks()
		fmt.Println("\nAvailable Books")
		if len(page) == 0 {
			fmt.Println("No books found.")
		} else {
			fmt.Printf("%-4s %-32s %-24s %s\n", "#", "Title", "Author", "Category")
			fmt.Println(strings.Repeat("-", 80))
			for i, b := range page {
				fmt.Printf("%-4d %-32s %-24s %s\n", i+1,
					truncateString(b.Title, 32), truncateString(b.Author, 24), b.Category)
			}
			fmt.Printf("Page %d of %d\n", dash.Page, totalPages)
		}

		fmt.Println("\nMy Borrowed Books")
		if len(dash.Active) == 0 {
			fmt.Println("You haven't borrowed any books yet.")
		} else {
			fmt.Printf("%-4s %-32s %-12s\n", "#", "Title", "Due")
			fmt.Println(strings.Repeat("-", 52))
			for i, r := range dash.Active {
				fmt.Printf("%-4d %-32s %-12s\n", i+1,
					truncateString(r.Book.Title, 32), r.DueDate.Format("2006-01-02"))
			}
		}

		if len(dash.History) > 0 {
			fmt.Println("\nBorrow History")
			fmt.Printf("%-32s %-12s %-12s %s\n", "Title", "Borrowed", "Returned", "Fine")
			fmt.Println(strings.Repeat("-", 68))
			for _, h := range dash.History {
				returned := "-"
				if h.ReturnDate != nil {
					returned = h.ReturnDate.Format("2006-01-02")
				}
				fmt.Printf("%-32s %-12s %-12s %.2f\n",
					truncateString(h.Book.Title, 32),
					h.BorrowDate.Format("2006-01-02"), returned, h.Fine)
			}
		}

		fmt.Println("\nCommands: s <text> search | f title|author|category | n/p page | b <row> borrow")
		fmt.Println("          ret <row> return | r reload | q quit")

		input, ok := readLine(sc, "> ")
		if !ok {
			return nil
		}
		verb, arg := splitCommand(input)

		switch verb {
		case "s", "search":
			dash.Query = arg
			dash.Page = 1
		case "f", "field":
			switch arg {
			case "title", "author", "category":
				dash.SortField = library.BookSortField(arg)
			default:
				fmt.Println("Sort field must be title, author or category.")
			}
		case "n", "next":
			if _, total := dash.AvailableBooks(); dash.Page < total {
				dash.Page++
			}
		case "p", "prev":
			if dash.Page > 1 {
				dash.Page--
			}
		case "b", "borrow":
			book, err := pickBook(page, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := dash.Borrow(ctx, book.ID); err != nil {
				fmt.Printf("Error borrowing book: %v\n", err)
			} else {
				fmt.Printf("Borrowed '%s'.\n", book.Title)
			}
		case "ret", "return":
			rec, err := pickRecord(dash.Active, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fine, err := dash.Return(ctx, rec.ID)
			if err != nil {
				fmt.Printf("Error returning book: %v\n", err)
				continue
			}
			if fine > 0 {
				fmt.Printf("Book returned with fine: %.2f\n", fine)
			} else {
				fmt.Println("Book returned on time.")
			}
		case "r", "reload":
			if err := dash.Load(ctx); err != nil {
				fmt.Printf("Error reloading: %v\n", err)
			}
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Printf("Unknown command: %s\n", verb)
		}
	}
}

func librarianDashboard(ctx context.Context, a *app) error {
	sess, err := library.RequireRole(a.store, library.RoleLibrarian)
	if err != nil {
		return guardErr(err)
	}

	view := library.NewManageView(a.api)
	if err := view.Load(ctx); err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	sc := bufio.NewScanner(os.Stdin)
	fmt.Printf("\nWelcome Librarian, %s\n", sess.Name)

	for {
		books := view.FilteredBooks()
		fmt.Println("\nAll Books")
		if view.Query != "" {
			fmt.Printf("(filter %q)\n", view.Query)
		}
		if len(books) == 0 {
			fmt.Println("No books found.")
		} else {
			fmt.Printf("%-4s %-32s %-24s %-16s %s\n", "#", "Title", "Author", "Category", "Status")
			fmt.Println(strings.Repeat("-", 90))
			for i, b := range books {
				status := "Available"
				if !b.Available {
					status = "Borrowed"
				}
				fmt.Printf("%-4d %-32s %-24s %-16s %s\n", i+1,
					truncateString(b.Title, 32), truncateString(b.Author, 24),
					truncateString(b.Category, 16), status)
			}
		}

		fmt.Println("\nCommands: add | edit <row> | del <row> | s <text> search | overdue | borrowed")
		fmt.Println("          r reload | q quit")

		input, ok := readLine(sc, "> ")
		if !ok {
			return nil
		}
		verb, arg := splitCommand(input)

		switch verb {
		case "add":
			if err := bookFormFlow(ctx, sc, view, nil); err != nil {
				fmt.Printf("Error adding book: %v\n", err)
			}
		case "edit":
			book, err := pickBook(books, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := bookFormFlow(ctx, sc, view, book); err != nil {
				fmt.Printf("Error updating book: %v\n", err)
			}
		case "del", "delete":
			book, err := pickBook(books, arg)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !confirm(sc, fmt.Sprintf("Delete '%s'? [y/N]: ", book.Title)) {
				continue
			}
			if err := view.Delete(ctx, book.ID); err != nil {
				fmt.Printf("Error deleting book: %v\n", err)
			} else {
				fmt.Printf("Deleted '%s'.\n", book.Title)
			}
		case "s", "search":
			view.Query = arg
		case "overdue":
			renderOverdueReport(view)
		case "borrowed":
			renderBorrowedList(view)
		case "r", "reload":
			if err := view.Load(ctx); err != nil {
				fmt.Printf("Error reloading: %v\n", err)
			}
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Printf("Unknown command: %s\n", verb)
		}
	}
}

// bookFormFlow walks the add/edit form: prompts each field (offering the
// existing value on edit), then submits.
func bookFormFlow(ctx context.Context, sc *bufio.Scanner, view *library.ManageView, editing *library.Book) error {
	if editing != nil {
		if err := view.StartEdit(editing.ID); err != nil {
			return err
		}
	} else {
		view.ResetForm()
	}

	prompt := func(label, current string) (string, bool) {
		if current != "" {
			label = fmt.Sprintf("%s (%s): ", label, current)
		} else {
			label += ": "
		}
		value, ok := readLine(sc, label)
		if !ok {
			return "", false
		}
		if value == "" {
			return current, true
		}
		return value, true
	}

	title, ok := prompt("Title", view.Form.Title)
	if !ok {
		return nil
	}
	author, ok := prompt("Author", view.Form.Author)
	if !ok {
		return nil
	}
	category, ok := prompt("Category", view.Form.Category)
	if !ok {
		return nil
	}
	cover, ok := readLine(sc, "Cover image path (optional): ")
	if !ok {
		return nil
	}
	if cover != "" {
		if _, err := os.Stat(cover); err != nil {
			fmt.Printf("File error: %v. Saving without cover image.\n", err)
			cover = ""
		}
	}

	view.Form.Title = title
	view.Form.Author = author
	view.Form.Category = category
	view.Form.CoverPath = cover

	book, err := view.Submit(ctx)
	if err != nil {
		return err
	}
	if editing != nil {
		fmt.Printf("Book '%s' updated.\n", book.Title)
	} else {
		fmt.Printf("Book '%s' added.\n", book.Title)
	}
	return nil
}

func renderOverdueReport(view *library.ManageView) {
	rows := view.OverdueReport(time.Now())
	if len(rows) == 0 {
		fmt.Println("No overdue books right now.")
		return
	}
	fmt.Printf("%-32s %-20s %-12s %s\n", "Book", "Student", "Borrowed", "Days Overdue")
	fmt.Println(strings.Repeat("-", 78))
	for _, row := range rows {
		fmt.Printf("%-32s %-20s %-12s %d\n",
			truncateString(row.BookTitle, 32),
			truncateString(row.StudentName, 20),
			row.BorrowDate.Format("2006-01-02"),
			row.DaysOverdue)
	}
}

func renderBorrowedList(view *library.ManageView) {
	if len(view.Borrowed) == 0 {
		fmt.Println("No borrow records.")
		return
	}
	fmt.Printf("%-32s %-20s %-12s %s\n", "Book", "Student", "Due", "Status")
	fmt.Println(strings.Repeat("-", 78))
	for _, r := range view.Borrowed {
		status := "Not Returned"
		if r.ReturnDate != nil {
			status = "Returned"
		}
		fmt.Printf("%-32s %-20s %-12s %s\n",
			truncateString(r.Book.Title, 32),
			truncateString(r.Student.Name, 20),
			r.DueDate.Format("2006-01-02"),
			status)
	}
}

// ------------------ Helpers ------------------

func splitCommand(input string) (verb, arg string) {
	parts := strings.SplitN(input, " ", 2)
	verb = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return verb, arg
}

func pickBook(page []library.Book, arg string) (*library.Book, error) {
	row, err := strconv.Atoi(arg)
	if err != nil || row < 1 || row > len(page) {
		return nil, fmt.Errorf("pick a row between 1 and %d", len(page))
	}
	return &page[row-1], nil
}

func pickRecord(page []library.BorrowRecord, arg string) (*library.BorrowRecord, error) {
	row, err := strconv.Atoi(arg)
	if err != nil || row < 1 || row > len(page) {
		return nil, fmt.Errorf("pick a row between 1 and %d", len(page))
	}
	return &page[row-1], nil
}

func confirm(sc *bufio.Scanner, prompt string) bool {
	answer, ok := readLine(sc, prompt)
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
