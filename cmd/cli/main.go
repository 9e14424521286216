package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ebolat/ekstre/internal/accounts"
	"github.com/ebolat/ekstre/internal/archive"
	"github.com/ebolat/ekstre/internal/config"
	"github.com/ebolat/ekstre/internal/export"
	infraFS "github.com/ebolat/ekstre/internal/infra/firestore"
	"github.com/ebolat/ekstre/internal/ingest"
	"github.com/ebolat/ekstre/internal/logger"
	"github.com/ebolat/ekstre/internal/notionsync"
	"github.com/ebolat/ekstre/internal/parser"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		runIngest(log)
	case "accounts":
		runAccounts(log)
	case "export":
		runExport(log)
	case "sync-notion":
		runSyncNotion(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Ekstre CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  ingest       Parse a pasted statement file and write the transactions")
	fmt.Println("  accounts     Manage bank accounts (create, list, delete)")
	fmt.Println("  export       Export an account's transactions to BigQuery")
	fmt.Println("  sync-notion  Sync an account's transactions to a Notion database")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// newStore loads the configuration and opens the Firestore-backed store.
func newStore(ctx context.Context, log zerolog.Logger) (*config.Config, *infraFS.Store, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	client, err := infraFS.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}

	return cfg, infraFS.NewStore(client), func() { client.Close() }
}

func runIngest(log zerolog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	accountID := fs.String("account", "", "Account ID the statement belongs to")
	bank := fs.String("bank", "", "Bank grammar (bank-a, bank-b, bank-c, bank-d)")
	file := fs.String("file", "", "Path to the pasted statement text (defaults to stdin)")
	userID := fs.String("user", "", "User ID")
	fs.Parse(os.Args[2:])

	if *accountID == "" || *bank == "" {
		log.Fatal().Msg("Usage: cli ingest -account ID -bank TYPE [-file PATH]")
	}

	bankType, err := parser.ParseBankType(*bank)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid bank type")
	}

	rawText, err := readInput(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read statement text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, store, closeStore := newStore(ctx, log)
	defer closeStore()

	var archiver ingest.RawArchiver
	if cfg.Archive.Bucket != "" {
		archiver = archive.NewGCSArchiver(cfg.Archive.Bucket, nil)
	}

	svc := ingest.NewService(store, archiver, nil)

	result, err := svc.Ingest(ctx, *userID, *accountID, bankType, rawText)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	fmt.Printf("Parsed %d records, wrote %d transactions.\n", result.Parsed, result.Written)
	if result.ArchiveURI != "" {
		fmt.Printf("Raw paste archived at %s\n", result.ArchiveURI)
	}
}

func runAccounts(log zerolog.Logger) {
	fs := flag.NewFlagSet("accounts", flag.ExitOnError)
	create := fs.Bool("create", false, "Create a new account")
	list := fs.Bool("list", false, "List accounts for a user")
	del := fs.Bool("delete", false, "Delete an account and its transactions")
	userID := fs.String("user", "", "User ID")
	accountID := fs.String("id", "", "Account ID (for -delete)")
	bankName := fs.String("bank-name", "", "Bank name (for -create)")
	accountName := fs.String("name", "", "Account display name (for -create)")
	iban := fs.String("iban", "", "TR IBAN (for -create, optional)")
	currency := fs.String("currency", "", "Currency code (for -create, defaults to TRY)")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	_, store, closeStore := newStore(ctx, log)
	defer closeStore()

	registry := accounts.NewRegistry(store, nil)

	switch {
	case *create:
		account, err := registry.Create(ctx, accounts.CreateParams{
			UserID:      *userID,
			BankName:    *bankName,
			AccountName: *accountName,
			IBAN:        *iban,
			Currency:    *currency,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create account")
		}
		fmt.Printf("Created account %s (%s)\n", account.ID, account.BankName)

	case *list:
		if *userID == "" {
			log.Fatal().Msg("Error: -user is required for -list")
		}
		accs, err := registry.List(ctx, *userID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list accounts")
		}
		for _, a := range accs {
			fmt.Printf("%s  %-20s  %-20s  %s\n", a.ID, a.BankName, a.AccountName, a.IBAN)
		}
		fmt.Printf("%d account(s)\n", len(accs))

	case *del:
		if *accountID == "" {
			log.Fatal().Msg("Error: -id is required for -delete")
		}
		deleted, err := registry.Delete(ctx, *accountID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to delete account")
		}
		fmt.Printf("Deleted account %s and %d transaction(s)\n", *accountID, deleted)

	default:
		log.Fatal().Msg("Usage: cli accounts -create|-list|-delete [options]")
	}
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	accountID := fs.String("account", "", "Account ID to export")
	dataset := fs.String("dataset", "", "BigQuery dataset (defaults to BQ_DATASET)")
	table := fs.String("table", "", "BigQuery table (defaults to BQ_TABLE)")
	fs.Parse(os.Args[2:])

	if *accountID == "" {
		log.Fatal().Msg("Error: -account is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, store, closeStore := newStore(ctx, log)
	defer closeStore()

	if *dataset == "" {
		*dataset = cfg.Export.Dataset
	}
	if *table == "" {
		*table = cfg.Export.Table
	}

	txs, err := store.ListTransactionsByAccount(ctx, *accountID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}

	client, err := export.NewClient(ctx, cfg.Firestore.ProjectID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery client")
	}
	defer client.Close()

	exported, err := export.ExportTransactions(ctx, client, *dataset, *table, txs)
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Printf("Exported %d transaction(s) to %s.%s\n", exported, *dataset, *table)
}

func runSyncNotion(log zerolog.Logger) {
	fs := flag.NewFlagSet("sync-notion", flag.ExitOnError)
	accountID := fs.String("account", "", "Account ID to sync")
	notionToken := fs.String("notion-token", "", "Notion API token (defaults to NOTION_TOKEN)")
	notionDBID := fs.String("notion-db-id", "", "Notion database ID (defaults to NOTION_DATABASE_ID)")
	dryRun := fs.Bool("dry-run", false, "Preview changes without writing pages")
	fs.Parse(os.Args[2:])

	if *accountID == "" {
		log.Fatal().Msg("Error: -account is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, store, closeStore := newStore(ctx, log)
	defer closeStore()

	if *notionToken == "" {
		*notionToken = cfg.Notion.Token
	}
	if *notionDBID == "" {
		*notionDBID = cfg.Notion.DatabaseID
	}
	if *notionToken == "" || *notionDBID == "" {
		log.Fatal().Msg("Error: Notion token and database ID are required")
	}

	notionClient := notionsync.NewNotionClient(*notionToken)

	if err := notionsync.SyncAccount(ctx, store, notionClient, *notionDBID, *accountID, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Println("Sync completed successfully.")
}

// readInput reads the pasted statement from path, or stdin when path is
// empty.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("readInput: reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("readInput: %w", err)
	}
	return string(data), nil
}
