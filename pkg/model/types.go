// Package model defines the data types shared across sealog components.
package model

// HashValue is a SHA-256 digest stored as a lowercase hex string.
type HashValue string

// Genesis is the reserved previous-hash sentinel for the first ledger entry.
// It is concatenated into the chaining rule as literal text and never hashed
// specially; no real digest can collide with it (digests are 64 hex chars).
const Genesis HashValue = "GENESIS"

// VerificationStatus is the outcome of a chain verification run.
type VerificationStatus string

const (
	StatusValid  VerificationStatus = "VALID"
	StatusBroken VerificationStatus = "BROKEN"
)

// StoreType identifies the ledger storage backend.
type StoreType string

const (
	StoreFile   StoreType = "file"
	StoreSQLite StoreType = "sqlite"
)

// DocumentSource is one element of an ordered document set. A source is
// either a single file or a directory expanded recursively in lexicographic
// path order. The order of sources is part of the seal contract: reordering
// them changes the resulting hash.
type DocumentSource struct {
	Path string `json:"path" yaml:"path"`
	Dir  bool   `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// SealResult holds the two hashes produced by sealing a document set.
type SealResult struct {
	ContentHash HashValue `json:"content_hash"`
	ChainHash   HashValue `json:"chain_hash"`
}
