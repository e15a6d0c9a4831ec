package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"lms/source"
)

// import_catalog converts a catalog CSV into the SQLite database the shell
// can load from with --source sqlite.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <catalog.csv> <catalog.db>\n", os.Args[0])
		os.Exit(1)
	}
	csvPath, dbPath := os.Args[1], os.Args[2]

	log := logrus.New()

	items, err := (source.CSV{Path: csvPath, Log: log}).Items()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	if len(items) == 0 {
		fmt.Fprintf(os.Stderr, "No usable rows in %s, nothing to import.\n", csvPath)
		os.Exit(1)
	}

	// Rebuild the database from scratch on every import.
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", dbPath, err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer db.Close()

	if err := source.EnsureSchema(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating schema: %v\n", err)
		os.Exit(1)
	}
	if err := source.WriteItems(db, items); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing items: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d items into %s\n", len(items), dbPath)
	fmt.Printf("%-6s %-50s %s\n", "ID", "Title", "Format")
	for _, it := range items {
		fmt.Printf("%-6d %-50s %s\n", it.ID, truncateString(it.Title, 50), it.Format)
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
