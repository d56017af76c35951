package domain

import "errors"

var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrAccountLocked = errors.New("Account is locked")
var ErrAmountRequired = errors.New("Amount is required")
var ErrAmountNotPositive = errors.New("Amount must be greater than zero")
var ErrDuplicateTransactionID = errors.New("Transaction id already posted")
var ErrUnknownTransaction = errors.New("Transaction id not found")
var ErrClientMismatch = errors.New("Transaction belongs to a different client")
var ErrAlreadyDisputed = errors.New("Transaction is already under dispute")
var ErrNotDisputed = errors.New("Transaction is not under dispute")
var ErrDisputeClosed = errors.New("Dispute already settled for this transaction")
var ErrUnknownTransactionKind = errors.New("Unknown transaction kind")
