package source

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"lms/library"
)

// SQLite reads catalog items from the items table of a database built by
// cmd/import_catalog. The database is opened read-only; a running session
// never writes back to it.
type SQLite struct {
	Path string
	Log  *logrus.Logger
}

// Items loads every row of the items table. Rows that fail to scan are
// skipped with a diagnostic.
func (s SQLite) Items() ([]library.Item, error) {
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", s.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id,title,author,year,edition,"desc",format,copies,avail_copies,ratings FROM items`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []library.Item
	for rows.Next() {
		var it library.Item
		err := rows.Scan(&it.ID, &it.Title, &it.Author, &it.Year, &it.Edition,
			&it.Desc, &it.Format, &it.Copies, &it.AvailCopies, &it.Ratings)
		if err != nil {
			log.Warnf("skipping items row: %v", err)
			continue
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

// EnsureSchema creates the items table read by SQLite.Items and written by
// the import tool.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS items (
        id INTEGER PRIMARY KEY,
        title TEXT NOT NULL,
        author TEXT NOT NULL DEFAULT '',
        year INTEGER NOT NULL,
        edition TEXT NOT NULL DEFAULT '',
        "desc" TEXT NOT NULL DEFAULT '',
        format TEXT NOT NULL,
        copies INTEGER NOT NULL,
        avail_copies INTEGER NOT NULL,
        ratings INTEGER NOT NULL
    );`)
	return err
}

// WriteItems inserts items into the items table. A row sharing an id replaces
// the earlier one, matching the catalog's last-write-wins rule.
func WriteItems(db *sql.DB, items []library.Item) error {
	stmt, err := db.Prepare(`INSERT OR REPLACE INTO items
        (id,title,author,year,edition,"desc",format,copies,avail_copies,ratings)
        VALUES(?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		_, err := stmt.Exec(it.ID, it.Title, it.Author, it.Year, it.Edition,
			it.Desc, it.Format, it.Copies, it.AvailCopies, it.Ratings)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", it.ID, err)
		}
	}
	return nil
}
