package main

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/api-sage/payments-engine/src/internal/adapter/csvio"
	"github.com/api-sage/payments-engine/src/internal/config"
	"github.com/api-sage/payments-engine/src/internal/domain"
	"github.com/api-sage/payments-engine/src/internal/logger"
	"github.com/api-sage/payments-engine/src/internal/usecase/services"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <transactions.csv>", os.Args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	runID := uuid.NewString()

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer file.Close()

	reader, err := csvio.NewReader(file)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	hook := func(tx domain.Transaction, outcome domain.Outcome) {
		if outcome.Code != domain.OutcomeMalformed {
			return
		}
		logger.Warn("skipping malformed record", logger.Fields{
			"runId":  runID,
			"client": tx.ClientID,
			"tx":     tx.TxID,
			"kind":   tx.Kind,
			"reason": outcome.Err.Error(),
		})
	}

	processor, err := services.NewProcessor(cfg.Shards, hook)
	if err != nil {
		log.Fatalf("init processor: %v", err)
	}
	processor.Start()

	var undecodableRows uint64
	for {
		tx, err := reader.Next()
		if err == io.EOF {
			break
		}

		var rowErr *csvio.RowError
		if errors.As(err, &rowErr) {
			undecodableRows++
			logger.Warn("skipping undecodable row", logger.Fields{
				"runId": runID,
				"row":   rowErr.Line,
				"error": rowErr.Err.Error(),
			})
			continue
		}
		if err != nil {
			log.Fatalf("read input: %v", err)
		}

		processor.Submit(tx)
	}

	summaries, stats, err := processor.Wait()
	if err != nil {
		log.Fatalf("process transactions: %v", err)
	}

	if err := csvio.WriteSummaries(os.Stdout, summaries, int32(cfg.DisplayPrecision)); err != nil {
		log.Fatalf("write report: %v", err)
	}

	logger.Info("run complete", logger.Fields{
		"runId":           runID,
		"shards":          cfg.Shards,
		"clients":         len(summaries),
		"accepted":        stats.Accepted,
		"rejected":        stats.Rejected,
		"malformed":       stats.Malformed,
		"undecodableRows": undecodableRows,
	})
}
