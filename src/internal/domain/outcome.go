package domain

type OutcomeCode string

const (
	// OutcomeAccepted means the record mutated an account.
	OutcomeAccepted OutcomeCode = "ACCEPTED"
	// OutcomeMalformed means the record itself was invalid input: missing
	// or non-positive amount, duplicate transaction id, unknown kind.
	OutcomeMalformed OutcomeCode = "MALFORMED"
	// OutcomeRejected means a well-formed record was dropped by a business
	// rule: insufficient funds, a dispute reference that does not check
	// out, or a locked account.
	OutcomeRejected OutcomeCode = "REJECTED"
)

// Outcome is the per-record verdict of the ledger. Neither malformed nor
// rejected records ever stop the stream.
type Outcome struct {
	Code OutcomeCode
	Err  error
}

func Accepted() Outcome {
	return Outcome{Code: OutcomeAccepted}
}

func Malformed(err error) Outcome {
	return Outcome{Code: OutcomeMalformed, Err: err}
}

func Rejected(err error) Outcome {
	return Outcome{Code: OutcomeRejected, Err: err}
}
