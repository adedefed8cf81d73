package history

// Record is one append-only ledger entry.
type Record struct {
	ID          int64  `db:"id" json:"id"`
	Description string `db:"description" json:"description"`
}
