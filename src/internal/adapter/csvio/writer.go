package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/api-sage/payments-engine/src/internal/domain"
)

// WriteSummaries renders the final report as CSV in the order given.
// Amounts are displayed with a fixed number of fractional digits; the
// underlying values keep their full precision.
func WriteSummaries(w io.Writer, summaries []domain.AccountSummary, precision int32) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}

	for _, summary := range summaries {
		row := []string{
			strconv.FormatUint(uint64(summary.ClientID), 10),
			summary.Available.StringFixed(precision),
			summary.Held.StringFixed(precision),
			summary.Total.StringFixed(precision),
			strconv.FormatBool(summary.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write client %d: %w", summary.ClientID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}
	return nil
}
