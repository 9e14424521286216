package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ebolat/ekstre/internal/archive"
	"github.com/ebolat/ekstre/internal/config"
	infraFS "github.com/ebolat/ekstre/internal/infra/firestore"
	"github.com/ebolat/ekstre/internal/ingest"
	"github.com/ebolat/ekstre/internal/logger"
	"github.com/ebolat/ekstre/internal/parser"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	accountID := flag.String("account", "", "Account ID the statement belongs to")
	bank := flag.String("bank", "", "Bank grammar (bank-a, bank-b, bank-c, bank-d)")
	file := flag.String("file", "", "Path to the pasted statement text (defaults to stdin)")
	userID := flag.String("user", "", "User ID")
	flag.Parse()

	if *accountID == "" {
		log.Fatal().Msg("Error: --account is required")
	}
	if *bank == "" {
		log.Fatal().Msg("Error: --bank is required")
	}

	bankType, err := parser.ParseBankType(*bank)
	if err != nil {
		log.Fatal().Err(err).Msg("Error: invalid bank type")
	}

	var rawText string
	if *file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
		rawText = string(data)
	} else {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read statement file")
		}
		rawText = string(data)
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	client, err := infraFS.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer client.Close()

	store := infraFS.NewStore(client)

	var archiver ingest.RawArchiver
	if cfg.Archive.Bucket != "" {
		archiver = archive.NewGCSArchiver(cfg.Archive.Bucket, nil)
	}

	svc := ingest.NewService(store, archiver, nil)

	log.Info().
		Str("account_id", *accountID).
		Str("bank_type", string(bankType)).
		Msg("Starting ingestion")

	result, err := svc.Ingest(ctx, *userID, *accountID, bankType, rawText)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	fmt.Printf("Parsed %d records, wrote %d transactions.\n", result.Parsed, result.Written)
}
