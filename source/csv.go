package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"lms/library"
)

// csvColumns are the header names a catalog CSV must carry. Column order does
// not matter because fields are matched by name.
var csvColumns = []string{"title", "author", "year", "edition", "desc", "format", "id", "copies", "avail_copies", "ratings"}

// CSV reads catalog items from a comma-separated file with a header row.
// Malformed rows are skipped with a diagnostic; only an unreadable file or a
// broken header is fatal.
type CSV struct {
	Path string
	Log  *logrus.Logger
}

// Items parses the file at Path.
func (s CSV) Items() ([]library.Item, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()
	return s.read(f)
}

func (s CSV) read(r io.Reader) ([]library.Item, error) {
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	rd := csv.NewReader(r)
	// Row length is checked per row so a short row stays non-fatal.
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var items []library.Item
	for line := 2; ; line++ {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("skipping csv line %d: %v", line, err)
			continue
		}
		it, err := itemFromRecord(rec, idx)
		if err != nil {
			log.Warnf("skipping csv line %d: %v", line, err)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, want := range csvColumns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("catalog csv header is missing column %q", want)
		}
	}
	return idx, nil
}

func itemFromRecord(rec []string, idx map[string]int) (library.Item, error) {
	need := 0
	for _, col := range csvColumns {
		if i := idx[col]; i >= need {
			need = i + 1
		}
	}
	if len(rec) < need {
		return library.Item{}, fmt.Errorf("expected at least %d fields, got %d", need, len(rec))
	}

	var (
		it  library.Item
		err error
	)
	if it.ID, err = parseCount(rec[idx["id"]], "id"); err != nil {
		return library.Item{}, err
	}
	if it.Year, err = parseCount(rec[idx["year"]], "year"); err != nil {
		return library.Item{}, err
	}
	if it.Copies, err = parseCount(rec[idx["copies"]], "copies"); err != nil {
		return library.Item{}, err
	}
	if it.AvailCopies, err = parseCount(rec[idx["avail_copies"]], "avail_copies"); err != nil {
		return library.Item{}, err
	}
	if it.Ratings, err = parseCount(rec[idx["ratings"]], "ratings"); err != nil {
		return library.Item{}, err
	}
	it.Title = strings.TrimSpace(rec[idx["title"]])
	it.Author = strings.TrimSpace(rec[idx["author"]])
	it.Edition = strings.TrimSpace(rec[idx["edition"]])
	it.Desc = strings.TrimSpace(rec[idx["desc"]])
	it.Format = strings.TrimSpace(rec[idx["format"]])
	return it, nil
}

func parseCount(raw, name string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q", name, strings.TrimSpace(raw))
	}
	return uint32(n), nil
}
