package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/ebolat/ekstre/internal/ledger"
	"github.com/ebolat/ekstre/internal/logger"
)

// TransactionLister is the read side of the transaction store the sync
// pulls from.
type TransactionLister interface {
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]*ledger.Transaction, error)
}

// SyncAccount pushes one account's transactions into a Notion database.
// The content-addressed transaction ID is written to a "Transaction ID"
// rich-text property and used for idempotency: pages that already carry an
// ID are left alone, so re-running the sync only creates missing pages.
func SyncAccount(ctx context.Context, store TransactionLister, notion NotionService, databaseID, accountID string, dryRun bool) error {
	log := logger.FromContext(ctx)

	txs, err := store.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("SyncAccount: listing transactions: %w", err)
	}

	log.Info().
		Str("account_id", accountID).
		Int("transaction_count", len(txs)).
		Bool("dry_run", dryRun).
		Msg("Starting Notion sync")

	existing, err := existingTransactionIDs(ctx, notion, databaseID)
	if err != nil {
		return fmt.Errorf("SyncAccount: querying existing pages: %w", err)
	}

	var created, skipped int
	for _, tx := range txs {
		if existing[tx.ID] {
			skipped++
			continue
		}

		if dryRun {
			log.Info().Str("transaction_id", tx.ID).Msg("Would create Notion page")
			created++
			continue
		}

		if _, err := notion.CreatePage(ctx, databaseID, pageProperties(tx)); err != nil {
			return fmt.Errorf("SyncAccount: creating page for %s: %w", tx.ID, err)
		}
		created++
	}

	log.Info().
		Int("created", created).
		Int("skipped", skipped).
		Msg("Notion sync finished")

	return nil
}

// existingTransactionIDs pages through the database and collects the
// transaction IDs already present.
func existingTransactionIDs(ctx context.Context, notion NotionService, databaseID string) (map[string]bool, error) {
	ids := make(map[string]bool)
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{PageSize: 100}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notion.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, err
		}

		for _, page := range resp.Results {
			if id := extractTransactionID(&page); id != "" {
				ids[id] = true
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return ids, nil
}

func extractTransactionID(page *notionapi.Page) string {
	prop, ok := page.Properties["Transaction ID"]
	if !ok {
		return ""
	}
	rich, ok := prop.(*notionapi.RichTextProperty)
	if !ok || len(rich.RichText) == 0 {
		return ""
	}
	return rich.RichText[0].PlainText
}

func pageProperties(tx *ledger.Transaction) notionapi.Properties {
	amount, _ := tx.Amount.Float64()
	if tx.Direction == ledger.DirectionDebit {
		amount = -amount
	}

	title := tx.Description
	if title == "" {
		title = string(tx.Source)
	}

	return notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: title}},
			},
		},
		"Transaction ID": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: tx.ID}},
			},
		},
		"Date": notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: (*notionapi.Date)(&tx.Date),
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: amount,
		},
		"Currency": notionapi.SelectProperty{
			Select: notionapi.Option{Name: tx.Currency},
		},
	}
}
