package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/payments-engine/src/internal/domain"
)

// RowError reports a single undecodable row. Callers skip the row and keep
// reading; only I/O-level failures end the stream.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader streams transaction records from CSV input. The first row must be
// a header naming at least type, client and tx; the amount column is
// optional and rows for dispute, resolve and chargeback may omit the cell
// entirely, so rows are not required to have a fixed width.
type Reader struct {
	csv       *csv.Reader
	line      int
	kindCol   int
	clientCol int
	txCol     int
	amountCol int
}

func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csvio: input is empty, a header row is required")
		}
		return nil, fmt.Errorf("csvio: read header: %w", err)
	}

	reader := &Reader{csv: cr, line: 1, kindCol: -1, clientCol: -1, txCol: -1, amountCol: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			reader.kindCol = i
		case "client":
			reader.clientCol = i
		case "tx":
			reader.txCol = i
		case "amount":
			reader.amountCol = i
		}
	}
	if reader.kindCol < 0 || reader.clientCol < 0 || reader.txCol < 0 {
		return nil, fmt.Errorf("csvio: header must name type, client and tx columns, got %q", strings.Join(header, ","))
	}

	return reader, nil
}

// Next decodes the next row. It returns io.EOF when the input is finished
// and a *RowError for rows that do not decode; after a *RowError the caller
// may keep calling Next.
func (r *Reader) Next() (domain.Transaction, error) {
	row, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return domain.Transaction{}, io.EOF
		}
		return domain.Transaction{}, fmt.Errorf("csvio: read row: %w", err)
	}
	r.line++

	tx, err := r.decode(row)
	if err != nil {
		return domain.Transaction{}, &RowError{Line: r.line, Err: err}
	}
	return tx, nil
}

func (r *Reader) decode(row []string) (domain.Transaction, error) {
	if r.kindCol >= len(row) || r.clientCol >= len(row) || r.txCol >= len(row) {
		return domain.Transaction{}, fmt.Errorf("row has %d cells, type/client/tx are required", len(row))
	}

	kind, err := domain.ParseTransactionKind(row[r.kindCol])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("type %q: %w", row[r.kindCol], err)
	}

	clientID, err := strconv.ParseUint(strings.TrimSpace(row[r.clientCol]), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("client %q: %w", row[r.clientCol], err)
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(row[r.txCol]), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("tx %q: %w", row[r.txCol], err)
	}

	tx := domain.Transaction{
		Kind:     kind,
		ClientID: uint16(clientID),
		TxID:     uint32(txID),
	}

	// An absent or empty amount cell decodes as no amount, not as zero.
	if r.amountCol >= 0 && r.amountCol < len(row) {
		cell := strings.TrimSpace(row[r.amountCol])
		if cell != "" {
			amount, err := decimal.NewFromString(cell)
			if err != nil {
				return domain.Transaction{}, fmt.Errorf("amount %q: %w", row[r.amountCol], err)
			}
			tx.Amount = &amount
		}
	}

	return tx, nil
}
