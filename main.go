package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lms/config"
	"lms/library"
	"lms/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		srcKind    string
		srcPath    string
	)

	cmd := &cobra.Command{
		Use:          "lms",
		Short:        "Interactive library circulation shell",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if srcKind != "" {
				cfg.Catalog.Source = srcKind
			}
			if srcPath != "" {
				cfg.Catalog.Path = srcPath
			}

			log := newLogger(cfg.Log.Level)
			src, err := catalogSource(cfg, log)
			if err != nil {
				return err
			}

			ledger := library.NewLedger(library.NewCatalog(log))
			count, err := ledger.LoadCatalog(src)
			if err != nil {
				return fmt.Errorf("initialize catalog from %s: %w", cfg.Catalog.Path, err)
			}
			log.Infof("catalog ready with %d items", count)

			runShell(ledger)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	cmd.Flags().StringVar(&srcKind, "source", "", "catalog source kind: csv or sqlite (overrides config)")
	cmd.Flags().StringVar(&srcPath, "path", "", "catalog source path (overrides config)")
	return cmd
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func catalogSource(cfg *config.Config, log *logrus.Logger) (library.ItemSource, error) {
	switch cfg.Catalog.Source {
	case "csv":
		return source.CSV{Path: cfg.Catalog.Path, Log: log}, nil
	case "sqlite":
		return source.SQLite{Path: cfg.Catalog.Path, Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q (want csv or sqlite)", cfg.Catalog.Source)
	}
}

func runShell(ledger *library.Ledger) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Library Management System!")
	fmt.Println("Available commands:")
	fmt.Println("  Circulation: issue, return, renew")
	fmt.Println("  Members: add member, members")
	fmt.Println("  Catalog: catalog")
	fmt.Println("  System: exit")
	fmt.Println()
	fmt.Println("Tips:")
	fmt.Println("  • For 'issue': enter a member ID, or a name to register a new member")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "issue":
			handleIssue(scanner, ledger)
		case "return":
			handleReturn(scanner, ledger)
		case "renew":
			handleRenew(scanner, ledger)
		case "add member":
			handleAddMember(scanner, ledger)
		case "members":
			handleMembers(ledger)
		case "catalog":
			handleCatalog(ledger)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func handleIssue(sc *bufio.Scanner, ledger *library.Ledger) {
	itemID, err := promptID(sc, "Item ID: ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print("Member ID (or name of a new member): ")
	if !sc.Scan() {
		return
	}
	memberField := strings.TrimSpace(sc.Text())
	if memberField == "" {
		fmt.Printf("Error: %v\n", library.ErrInvalidInput)
		return
	}

	// A numeric entry targets an existing member; anything else registers a
	// new one. The split is made here so the core never sniffs strings.
	if memberID, convErr := strconv.ParseUint(memberField, 10, 32); convErr == nil {
		co, err := ledger.IssueToMember(itemID, uint32(memberID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Issued '%s' (ID: %d) to member %d, due %s.\n",
			co.Title, co.ItemID, memberID, co.DueDate.Format("2006-01-02"))
		return
	}

	first, last := splitName(memberField)
	memberID, co, err := ledger.IssueToNewMember(itemID, first, last)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Registered member %d and issued '%s' (ID: %d), due %s.\n",
		memberID, co.Title, co.ItemID, co.DueDate.Format("2006-01-02"))
}

func handleReturn(sc *bufio.Scanner, ledger *library.Ledger) {
	itemID, err := promptID(sc, "Item ID: ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	memberID, err := promptID(sc, "Member ID: ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	item, err := ledger.Return(itemID, memberID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Returned '%s' (ID: %d). Available copies: %d/%d.\n",
		item.Title, item.ID, item.AvailCopies, item.Copies)
}

func handleRenew(sc *bufio.Scanner, ledger *library.Ledger) {
	itemID, err := promptID(sc, "Item ID: ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	memberID, err := promptID(sc, "Member ID: ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	co, err := ledger.Renew(itemID, memberID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Renewed '%s' (ID: %d), now due %s.\n",
		co.Title, co.ItemID, co.DueDate.Format("2006-01-02"))
}

func handleAddMember(sc *bufio.Scanner, ledger *library.Ledger) {
	fmt.Print("First name: ")
	if !sc.Scan() {
		return
	}
	first := strings.TrimSpace(sc.Text())

	fmt.Print("Last name: ")
	if !sc.Scan() {
		return
	}
	last := strings.TrimSpace(sc.Text())

	id := ledger.AddMember(first, last)
	fmt.Printf("Added member ID %d.\n", id)
}

func handleMembers(ledger *library.Ledger) {
	members := ledger.Members()
	if len(members) == 0 {
		fmt.Println("No members registered yet.")
		return
	}

	fmt.Printf("%-10s %-25s %s\n", "Member ID", "Name", "Checked-out items")
	for _, m := range members {
		var loans []string
		for _, loan := range m.Loans {
			loans = append(loans, fmt.Sprintf("%s (%d), due %s",
				loan.Title, loan.ItemID, loan.DueDate.Format("2006-01-02")))
		}
		name := m.Name
		if name == "" {
			name = "Unknown"
		}
		fmt.Printf("%-10d %-25s %s\n", m.ID, name, strings.Join(loans, ";  "))
	}
}

func handleCatalog(ledger *library.Ledger) {
	items := ledger.Items()
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	fmt.Printf("%-6s %-40s %-25s %-6s %-8s %-7s %-6s %s\n",
		"ID", "Title", "Author", "Year", "Format", "Copies", "Avail", "Ratings")
	for _, it := range items {
		author := it.Author
		if author == "" {
			author = "Unknown"
		}
		fmt.Printf("%-6d %-40s %-25s %-6d %-8s %-7d %-6d %d\n",
			it.ID, truncateString(it.Title, 40), truncateString(author, 25),
			it.Year, it.Format, it.Copies, it.AvailCopies, it.Ratings)
	}
}

// promptID reads one line and parses it as an unsigned id.
func promptID(sc *bufio.Scanner, prompt string) (uint32, error) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return 0, fmt.Errorf("%w: empty input", library.ErrInvalidInput)
	}
	raw := strings.TrimSpace(sc.Text())
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a numeric id", library.ErrInvalidInput, raw)
	}
	return uint32(id), nil
}

// splitName treats the last word as the last name; a single word is a first
// name only.
func splitName(full string) (string, string) {
	fields := strings.Fields(full)
	if len(fields) < 2 {
		return full, ""
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
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
