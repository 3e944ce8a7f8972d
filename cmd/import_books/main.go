package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"library-client/library"
)

// Bulk catalog import: reads a CSV of title,author,category[,cover path]
// and creates each book through the remote API. Requires a logged-in
// librarian session (run 'library-client login' first).
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <books.csv>\n", os.Args[0])
		os.Exit(1)
	}
	csvPath := os.Args[1]

	cfg := library.LoadConfig()
	store, err := library.OpenSessionStore(cfg.StatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening state store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if _, err := library.RequireRole(store, library.RoleLibrarian); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	api := library.NewClient(cfg.BaseURL, store)
	ctx := context.Background()

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	fmt.Printf("Importing books from %s...\n", csvPath)

	successCount := 0
	errorCount := 0

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Line %d: ERROR - %v\n", line, err)
			errorCount++
			continue
		}
		if len(record) < 3 {
			fmt.Printf("Line %d: ERROR - need title,author,category\n", line)
			errorCount++
			continue
		}

		in := library.BookInput{
			Title:    strings.TrimSpace(record[0]),
			Author:   strings.TrimSpace(record[1]),
			Category: strings.TrimSpace(record[2]),
		}
		if len(record) > 3 {
			in.CoverPath = strings.TrimSpace(record[3])
		}
		if in.CoverPath != "" {
			if _, err := os.Stat(in.CoverPath); err != nil {
				fmt.Printf("Warning: cover for %q not accessible, importing without it\n", in.Title)
				in.CoverPath = ""
			}
		}

		fmt.Printf("Importing: %s by %s... ", in.Title, in.Author)
		book, err := api.CreateBook(ctx, in)
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		fmt.Printf("SUCCESS (ID: %s)\n", book.ID)
		successCount++
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if successCount > 0 {
		fmt.Println("\nCurrent catalog:")
		books, err := api.Books(ctx)
		if err != nil {
			fmt.Printf("Error retrieving books: %v\n", err)
			return
		}
		fmt.Printf("%-32s %-24s %s\n", "Title", "Author", "Category")
		fmt.Println(strings.Repeat("-", 75))
		for _, b := range books {
			fmt.Printf("%-32s %-24s %s\n", truncateString(b.Title, 32), truncateString(b.Author, 24), b.Category)
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
