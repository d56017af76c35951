package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/api-sage/payments-engine/src/internal/domain"
	"github.com/api-sage/payments-engine/src/internal/usecase/services"
)

// mixedStream builds a workload of many clients with deposits, overdraft
// attempts, disputes and one chargeback per fourth client.
func mixedStream(clients int) []domain.Transaction {
	var txs []domain.Transaction
	txID := uint32(1)
	for c := 1; c <= clients; c++ {
		client := uint16(c)
		depositID := txID
		txs = append(txs,
			domain.Transaction{Kind: domain.TransactionKindDeposit, ClientID: client, TxID: txID, Amount: amount("100.0001")},
			domain.Transaction{Kind: domain.TransactionKindWithdrawal, ClientID: client, TxID: txID + 1, Amount: amount("40.50")},
			domain.Transaction{Kind: domain.TransactionKindWithdrawal, ClientID: client, TxID: txID + 2, Amount: amount("999999")},
		)
		txID += 3

		if c%2 == 0 {
			txs = append(txs, domain.Transaction{Kind: domain.TransactionKindDispute, ClientID: client, TxID: depositID})
		}
		if c%4 == 0 {
			txs = append(txs, domain.Transaction{Kind: domain.TransactionKindChargeback, ClientID: client, TxID: depositID})
		}
	}
	return txs
}

func runProcessor(t *testing.T, shards int, txs []domain.Transaction) ([]domain.AccountSummary, services.Stats) {
	t.Helper()

	processor, err := services.NewProcessor(shards, nil)
	if err != nil {
		t.Fatalf("expected processor with %d shards, got %v", shards, err)
	}
	processor.Start()
	for _, tx := range txs {
		processor.Submit(tx)
	}

	summaries, stats, err := processor.Wait()
	if err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}
	return summaries, stats
}

func TestProcessorRejectsZeroShards(t *testing.T) {
	if _, err := services.NewProcessor(0, nil); err == nil {
		t.Fatal("expected error for zero shards")
	}
}

func TestProcessorSingleShardMatchesSequentialLedger(t *testing.T) {
	txs := mixedStream(25)

	ledger := services.NewLedgerService()
	for _, tx := range txs {
		ledger.Apply(tx)
	}
	want := ledger.Snapshot()

	got, _ := runProcessor(t, 1, txs)
	assertSameSummaries(t, want, got)
}

func TestProcessorShardCountDoesNotChangeReport(t *testing.T) {
	txs := mixedStream(40)
	want, wantStats := runProcessor(t, 1, txs)

	for _, shards := range []int{2, 3, 8} {
		got, gotStats := runProcessor(t, shards, txs)
		assertSameSummaries(t, want, got)
		if gotStats != wantStats {
			t.Fatalf("shards=%d: expected stats %+v, got %+v", shards, wantStats, gotStats)
		}
	}
}

func TestProcessorSnapshotOrderedByClientID(t *testing.T) {
	summaries, _ := runProcessor(t, 4, mixedStream(17))

	for i := 1; i < len(summaries); i++ {
		if summaries[i-1].ClientID >= summaries[i].ClientID {
			t.Fatalf("snapshot out of order at %d: %d then %d", i, summaries[i-1].ClientID, summaries[i].ClientID)
		}
	}
}

func TestProcessorHookSeesEveryRecord(t *testing.T) {
	txs := mixedStream(12)

	var seen atomic.Uint64
	processor, err := services.NewProcessor(3, func(domain.Transaction, domain.Outcome) {
		seen.Add(1)
	})
	if err != nil {
		t.Fatalf("expected processor, got %v", err)
	}
	processor.Start()
	for _, tx := range txs {
		processor.Submit(tx)
	}
	if _, _, err := processor.Wait(); err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}

	if seen.Load() != uint64(len(txs)) {
		t.Fatalf("expected hook to see %d records, got %d", len(txs), seen.Load())
	}
}

func assertSameSummaries(t *testing.T, want, got []domain.AccountSummary) {
	t.Helper()

	if len(want) != len(got) {
		t.Fatalf("expected %d accounts, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.ClientID != g.ClientID || w.Locked != g.Locked ||
			!w.Available.Equal(g.Available) || !w.Held.Equal(g.Held) || !w.Total.Equal(g.Total) {
			t.Fatalf("account %d differs:\nwant %s\ngot  %s", w.ClientID, formatSummary(w), formatSummary(g))
		}
	}
}

func formatSummary(s domain.AccountSummary) string {
	return fmt.Sprintf("client=%d available=%s held=%s total=%s locked=%v",
		s.ClientID, s.Available, s.Held, s.Total, s.Locked)
}
