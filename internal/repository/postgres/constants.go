package postgres

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Marshaling
const (
	ErrMsgFailedToMarshalRecord   = "failed to marshal record"
	ErrMsgFailedToUnmarshalRecord = "failed to unmarshal record"
)
