package services

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/payments-engine/src/internal/domain"
)

// OutcomeHook observes the verdict of every applied record. Hooks run on
// shard goroutines and must be safe for concurrent use when the processor
// runs with more than one shard.
type OutcomeHook func(tx domain.Transaction, outcome domain.Outcome)

// Processor fans a record stream out to per-shard ledgers. Records are
// routed by client id, so every record of a given client lands on the same
// shard and is applied in arrival order by that shard's single goroutine.
// Shards share nothing; the merged snapshot is sorted by client id, which
// makes the report identical for any shard count.
type Processor struct {
	ledgers []*LedgerService
	inputs  []chan domain.Transaction
	group   errgroup.Group
	hook    OutcomeHook
	started bool
}

const shardBuffer = 256

func NewProcessor(shards int, hook OutcomeHook) (*Processor, error) {
	if shards < 1 {
		return nil, fmt.Errorf("processor: shard count must be at least 1, got %d", shards)
	}

	p := &Processor{
		ledgers: make([]*LedgerService, shards),
		inputs:  make([]chan domain.Transaction, shards),
		hook:    hook,
	}
	for i := range p.ledgers {
		p.ledgers[i] = NewLedgerService()
		p.inputs[i] = make(chan domain.Transaction, shardBuffer)
	}
	return p, nil
}

// Start launches one worker per shard. Each worker owns its ledger
// exclusively until Wait returns.
func (p *Processor) Start() {
	if p.started {
		return
	}
	p.started = true

	for i := range p.ledgers {
		ledger := p.ledgers[i]
		input := p.inputs[i]
		p.group.Go(func() error {
			for tx := range input {
				outcome := ledger.Apply(tx)
				if p.hook != nil {
					p.hook(tx, outcome)
				}
			}
			return nil
		})
	}
}

// Submit routes one record to its owning shard. Must not be called after
// Wait.
func (p *Processor) Submit(tx domain.Transaction) {
	p.inputs[int(tx.ClientID)%len(p.inputs)] <- tx
}

// Wait closes the input channels, waits for every shard to drain, and
// returns the merged snapshot ordered by ascending client id together with
// the aggregated verdict counters.
func (p *Processor) Wait() ([]domain.AccountSummary, Stats, error) {
	for _, input := range p.inputs {
		close(input)
	}
	if err := p.group.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("processor: shard failed: %w", err)
	}

	var merged []domain.AccountSummary
	var stats Stats
	for _, ledger := range p.ledgers {
		merged = append(merged, ledger.Snapshot()...)
		stats.Add(ledger.Stats())
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ClientID < merged[j].ClientID
	})

	return merged, stats, nil
}
