package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ebolat/ekstre/internal/ledger"
	"github.com/ebolat/ekstre/internal/parser"
)

// fakeWriter stores transactions by ID, mimicking the document store's
// upsert semantics.
type fakeWriter struct {
	docs    map[string]*ledger.Transaction
	saveErr error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{docs: make(map[string]*ledger.Transaction)}
}

func (w *fakeWriter) SaveTransactions(ctx context.Context, txs []*ledger.Transaction) (int, error) {
	if w.saveErr != nil {
		return 0, w.saveErr
	}
	seen := make(map[string]bool)
	for _, tx := range txs {
		w.docs[tx.ID] = tx
		seen[tx.ID] = true
	}
	return len(seen), nil
}

type fakeArchiver struct {
	uri string
	err error
}

func (a *fakeArchiver) ArchiveRaw(ctx context.Context, accountID string, bankType parser.BankType, rawText string) (string, error) {
	return a.uri, a.err
}

func testClock() time.Time {
	return time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
}

func TestIngest(t *testing.T) {
	writer := newFakeWriter()
	svc := NewService(writer, nil, testClock)

	input := "16.10.2025 K.Kartı Ödemesi -79,52 TL 0,00 TL\n17.10.2025 Havale 1.500,00 TL 1.420,48 TL"

	result, err := svc.Ingest(context.Background(), "user-1", "acc-1", parser.BankTypeB, input)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if result.Parsed != 2 {
		t.Errorf("Parsed = %d, want 2", result.Parsed)
	}
	if result.Written != 2 {
		t.Errorf("Written = %d, want 2", result.Written)
	}
	if len(result.IDs) != 2 {
		t.Errorf("IDs = %v, want 2 entries", result.IDs)
	}
	if len(writer.docs) != 2 {
		t.Errorf("store holds %d documents, want 2", len(writer.docs))
	}

	for _, tx := range writer.docs {
		if tx.UserID != "user-1" || tx.AccountID != "acc-1" {
			t.Errorf("transaction carries wrong ownership: %s/%s", tx.UserID, tx.AccountID)
		}
		if tx.Amount.IsNegative() {
			t.Errorf("canonical amount must be a magnitude, got %s", tx.Amount)
		}
	}
}

// Re-ingesting the same paste, or an overlapping one, must not grow the
// store: identical records hash to identical document IDs.
func TestIngestIdempotent(t *testing.T) {
	inputs := map[parser.BankType]string{
		parser.BankTypeA: "11/10/2025 00:41:43 POS HARCAMA -750,00 TL 0,00 TL",
		parser.BankTypeB: "16.10.2025 Kart Ödemesi -79,52 TL 0,00 TL",
		parser.BankTypeC: "2025-10-14-09.12.45.000123\t-1.250,00 TL\t8.403,17 TL\tPOS HARCAMA",
		parser.BankTypeD: "142 03/10/2025 HAVALE GELEN 2.500,00 14.903,17",
	}

	for bankType, input := range inputs {
		t.Run(string(bankType), func(t *testing.T) {
			writer := newFakeWriter()
			svc := NewService(writer, nil, testClock)

			first, err := svc.Ingest(context.Background(), "user-1", "acc-1", bankType, input)
			if err != nil {
				t.Fatalf("first Ingest failed: %v", err)
			}
			second, err := svc.Ingest(context.Background(), "user-1", "acc-1", bankType, input)
			if err != nil {
				t.Fatalf("second Ingest failed: %v", err)
			}

			if len(writer.docs) != first.Parsed {
				t.Errorf("store grew to %d documents after re-ingest, want %d", len(writer.docs), first.Parsed)
			}
			if len(first.IDs) != len(second.IDs) {
				t.Errorf("ID sets differ across ingests: %v vs %v", first.IDs, second.IDs)
			}
			for i := range first.IDs {
				if first.IDs[i] != second.IDs[i] {
					t.Errorf("ID %d changed across ingests: %s vs %s", i, first.IDs[i], second.IDs[i])
				}
			}
		})
	}
}

func TestIngestRepeatedLineCollapses(t *testing.T) {
	writer := newFakeWriter()
	svc := NewService(writer, nil, testClock)

	line := "16.10.2025 Kart Ödemesi -79,52 TL 0,00 TL"
	result, err := svc.Ingest(context.Background(), "user-1", "acc-1", parser.BankTypeB, line+"\n"+line)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if result.Parsed != 2 {
		t.Errorf("Parsed = %d, want 2", result.Parsed)
	}
	if result.Written != 1 {
		t.Errorf("Written = %d, want 1: identical lines share an ID", result.Written)
	}
	if len(result.IDs) != 1 {
		t.Errorf("IDs = %v, want a single entry", result.IDs)
	}
}

func TestIngestNoTransactions(t *testing.T) {
	writer := newFakeWriter()
	svc := NewService(writer, nil, testClock)

	_, err := svc.Ingest(context.Background(), "user-1", "acc-1", parser.BankTypeB, "başlık satırı\nhiç kayıt yok")
	if !errors.Is(err, ErrNoTransactions) {
		t.Fatalf("err = %v, want ErrNoTransactions", err)
	}
	if len(writer.docs) != 0 {
		t.Error("nothing should be written for an empty parse")
	}
}

func TestIngestUnknownBankType(t *testing.T) {
	svc := NewService(newFakeWriter(), nil, testClock)

	if _, err := svc.Ingest(context.Background(), "user-1", "acc-1", "bank-x", "metin"); err == nil {
		t.Fatal("Ingest should reject an unknown bank type")
	}
}

func TestIngestWriterError(t *testing.T) {
	writer := newFakeWriter()
	writer.saveErr = errors.New("store unavailable")
	svc := NewService(writer, nil, testClock)

	_, err := svc.Ingest(context.Background(), "user-1", "acc-1", parser.BankTypeB, "16.10.2025 Kart -79,52 TL 0,00 TL")
	if err == nil || !errors.Is(err, writer.saveErr) {
		t.Fatalf("err = %v, want wrapped writer error", err)
	}
}

func TestIngestArchiveFailureIsNonFatal(t *testing.T) {
	writer := newFakeWriter()
	archiver := &fakeArchiver{err: errors.New("bucket gone")}
	svc := NewService(writer, archiver, testClock)

	result, err := svc.Ingest(context.Background(), "user-1", "acc-1", parser.BankTypeB, "16.10.2025 Kart -79,52 TL 0,00 TL")
	if err != nil {
		t.Fatalf("Ingest failed on archive error: %v", err)
	}
	if result.ArchiveURI != "" {
		t.Errorf("ArchiveURI = %q, want empty after failed archive", result.ArchiveURI)
	}
	if result.Written != 1 {
		t.Errorf("Written = %d, want 1", result.Written)
	}
}

func TestIngestArchiveURIReported(t *testing.T) {
	writer := newFakeWriter()
	archiver := &fakeArchiver{uri: "gs://pastes/acc-1/obj.txt"}
	svc := NewService(writer, archiver, testClock)

	result, err := svc.Ingest(context.Background(), "user-1", "acc-1", parser.BankTypeB, "16.10.2025 Kart -79,52 TL 0,00 TL")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.ArchiveURI != "gs://pastes/acc-1/obj.txt" {
		t.Errorf("ArchiveURI = %q", result.ArchiveURI)
	}
}
