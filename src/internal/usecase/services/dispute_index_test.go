package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/payments-engine/src/internal/domain"
	"github.com/api-sage/payments-engine/src/internal/usecase/services"
)

func TestDisputeIndexInsertAndGet(t *testing.T) {
	index := services.NewDisputeIndex()

	err := index.Insert(domain.DisputableEntry{
		TxID:     1,
		ClientID: 9,
		Kind:     domain.TransactionKindDeposit,
		Amount:   decimal.RequireFromString("4.25"),
		Status:   domain.DisputeStatusPosted,
	})
	if err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}

	entry, ok := index.Get(1)
	if !ok {
		t.Fatal("expected entry for tx 1")
	}
	if entry.ClientID != 9 || !entry.Amount.Equal(decimal.RequireFromString("4.25")) {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestDisputeIndexRejectsDuplicateTxID(t *testing.T) {
	index := services.NewDisputeIndex()

	entry := domain.DisputableEntry{TxID: 1, ClientID: 1, Status: domain.DisputeStatusPosted}
	if err := index.Insert(entry); err != nil {
		t.Fatalf("expected first insert to succeed, got %v", err)
	}

	err := index.Insert(entry)
	if !errors.Is(err, domain.ErrDuplicateTransactionID) {
		t.Fatalf("expected ErrDuplicateTransactionID, got %v", err)
	}
}

func TestDisputeIndexGetMissing(t *testing.T) {
	index := services.NewDisputeIndex()

	if _, ok := index.Get(404); ok {
		t.Fatal("expected no entry for unknown tx id")
	}
	if index.Contains(404) {
		t.Fatal("expected Contains to report false for unknown tx id")
	}
}

func TestDisputeIndexMutateInPlace(t *testing.T) {
	index := services.NewDisputeIndex()

	_ = index.Insert(domain.DisputableEntry{TxID: 1, Status: domain.DisputeStatusPosted})

	entry, _ := index.Get(1)
	if err := entry.OpenDispute(); err != nil {
		t.Fatalf("expected dispute to open, got %v", err)
	}

	again, _ := index.Get(1)
	if again.Status != domain.DisputeStatusDisputed {
		t.Fatalf("expected status %s, got %s", domain.DisputeStatusDisputed, again.Status)
	}
}
