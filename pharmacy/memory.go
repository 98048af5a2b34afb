package pharmacy

import (
	"context"
	"strings"
)

// MemoryDirectory serves directory reads from an in-process dataset. It is
// the default store when no database is configured and the fixture store
// used by tests. All state is set at construction; reads never mutate it.
type MemoryDirectory struct {
	fold  Normalizer
	users map[string]User
	meds  []Medication
	stock map[string]int
	names []string
}

// MemoryOption customizes a MemoryDirectory.
type MemoryOption func(*MemoryDirectory)

// WithNormalizer replaces the default name normalizer.
func WithNormalizer(fold Normalizer) MemoryOption {
	return func(d *MemoryDirectory) {
		if fold != nil {
			d.fold = fold
		}
	}
}

// NewMemoryDirectory builds a read-only in-memory directory from the given
// rows. Stock quantities are keyed by folded medication name.
func NewMemoryDirectory(users []User, meds []StockedMedication, opts ...MemoryOption) *MemoryDirectory {
	d := &MemoryDirectory{
		fold:  FoldName,
		users: make(map[string]User, len(users)),
		stock: make(map[string]int, len(meds)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	for _, u := range users {
		d.users[u.ID] = u
	}
	for _, m := range meds {
		d.meds = append(d.meds, m.Medication)
		d.stock[d.fold(m.Name)] = m.Quantity
		d.names = append(d.names, m.Name)
	}
	return d
}

func (d *MemoryDirectory) User(_ context.Context, userID string) (User, error) {
	u, ok := d.users[strings.TrimSpace(userID)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (d *MemoryDirectory) MedicationByName(_ context.Context, name string) (Medication, error) {
	folded := d.fold(name)
	if folded == "" {
		return Medication{}, ErrMedicationNotFound
	}
	for _, m := range d.meds {
		if d.fold(m.Name) == folded {
			return m, nil
		}
	}
	return Medication{}, ErrMedicationNotFound
}

func (d *MemoryDirectory) Stock(ctx context.Context, name string) (StockRecord, error) {
	med, err := d.MedicationByName(ctx, name)
	if err != nil {
		return StockRecord{}, err
	}
	return StockRecord{
		MedicationName: med.Name,
		Quantity:       d.stock[d.fold(med.Name)],
	}, nil
}

func (d *MemoryDirectory) MedicationNames(_ context.Context) ([]string, error) {
	return append([]string(nil), d.names...), nil
}
