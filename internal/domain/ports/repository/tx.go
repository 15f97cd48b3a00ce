package repository

// Tx is a pass-through transaction handle. The concrete type is infra-defined
// (pgx.Tx for Postgres); repositories must accept nil for the
// non-transactional path.
type Tx interface{}

// NoTX is passed by callers that do not run inside a transaction.
var NoTX Tx
