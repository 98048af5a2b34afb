package pharmacy

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMedicationNotFound = errors.New("medication not found")
)

// Directory is the read-only port onto the pharmacy backing store. An
// unresolved key is reported as ErrUserNotFound / ErrMedicationNotFound,
// never as a panic or a partial record. Implementations must be safe for
// concurrent use and must not expose any write operation.
type Directory interface {
	// User fetches a user record by exact id.
	User(ctx context.Context, userID string) (User, error)

	// MedicationByName fetches a medication by exact, case-insensitive name.
	MedicationByName(ctx context.Context, name string) (Medication, error)

	// Stock reports the current quantity for a medication by exact,
	// case-insensitive name.
	Stock(ctx context.Context, name string) (StockRecord, error)

	// MedicationNames lists the canonical names known to the store. It is
	// the vocabulary used for entity-ambiguity detection and never counts
	// as a tool invocation.
	MedicationNames(ctx context.Context) ([]string, error)
}
