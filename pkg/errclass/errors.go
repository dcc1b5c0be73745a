// Package errclass defines stable, machine-readable error classes for sealog.
package errclass

import "fmt"

// SealogError is a stable, machine-readable error class.
type SealogError struct {
	Code    string
	Message string
}

func (e *SealogError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SealogError) Is(target error) bool {
	t, ok := target.(*SealogError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new SealogError with the same Code but a specific message.
func (e *SealogError) WithMessage(msg string) *SealogError {
	return &SealogError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new SealogError with a formatted message.
func (e *SealogError) WithMessagef(format string, args ...any) *SealogError {
	return &SealogError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
//
// A broken chain is deliberately not an error class: chain verification
// reports BROKEN as a normal outcome, not as a failure of the verifier.
var (
	ErrRead              = &SealogError{Code: "E_READ"}
	ErrParse             = &SealogError{Code: "E_PARSE"}
	ErrNameInvalid       = &SealogError{Code: "E_NAME_INVALID"}
	ErrPathEscape        = &SealogError{Code: "E_PATH_ESCAPE"}
	ErrEntryMalformed    = &SealogError{Code: "E_ENTRY_MALFORMED"}
	ErrLedgerCorrupt     = &SealogError{Code: "E_LEDGER_CORRUPT"}
	ErrSealConflict      = &SealogError{Code: "E_SEAL_CONFLICT"}
	ErrStoreUnsupported  = &SealogError{Code: "E_STORE_UNSUPPORTED"}
	ErrFormatUnsupported = &SealogError{Code: "E_FORMAT_UNSUPPORTED"}
)
