package csvio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/api-sage/payments-engine/src/internal/adapter/csvio"
	"github.com/api-sage/payments-engine/src/internal/usecase/services"
)

// runPipeline streams a CSV input through a sharded processor and renders
// the final report, the same path the command line entry point takes.
func runPipeline(t *testing.T, input string, shards int) string {
	t.Helper()

	reader, err := csvio.NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected reader, got %v", err)
	}

	processor, err := services.NewProcessor(shards, nil)
	if err != nil {
		t.Fatalf("expected processor, got %v", err)
	}
	processor.Start()

	for {
		tx, err := reader.Next()
		if err == io.EOF {
			break
		}
		var rowErr *csvio.RowError
		if errors.As(err, &rowErr) {
			continue
		}
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		processor.Submit(tx)
	}

	summaries, _, err := processor.Wait()
	if err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}

	var buf bytes.Buffer
	if err := csvio.WriteSummaries(&buf, summaries, 4); err != nil {
		t.Fatalf("expected report, got %v", err)
	}
	return buf.String()
}

func TestPipelineDepositDisputeChargeback(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,5.00\n" +
		"dispute,1,1,\n" +
		"chargeback,1,1,\n" +
		"deposit,1,2,10.00\n" +
		"deposit,2,3,2.5\n"

	want := "client,available,held,total,locked\n" +
		"1,0.0000,0.0000,0.0000,true\n" +
		"2,2.5000,0.0000,2.5000,false\n"

	if got := runPipeline(t, input, 1); got != want {
		t.Fatalf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPipelineShardCountInvisibleInReport(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,3,1,10.00\n" +
		"deposit,1,2,7.77\n" +
		"withdrawal,3,3,4.25\n" +
		"deposit,2,4,1.0001\n" +
		"dispute,1,2,\n" +
		"resolve,1,2,\n" +
		"withdrawal,2,5,99.00\n"

	sequential := runPipeline(t, input, 1)
	for _, shards := range []int{2, 5} {
		if got := runPipeline(t, input, shards); got != sequential {
			t.Fatalf("shards=%d: report differs\nsequential:\n%s\nsharded:\n%s", shards, sequential, got)
		}
	}
}
