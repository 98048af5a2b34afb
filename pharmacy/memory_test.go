package pharmacy

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestFoldName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Paracetamol", "paracetamol"},
		{"  paracetamol  ", "paracetamol"},
		{"PARACETAMOL", "paracetamol"},
		{"  Vitamin   D  ", "vitamin d"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := FoldName(tc.in); got != tc.want {
			t.Fatalf("FoldName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatchNameExact(t *testing.T) {
	t.Parallel()

	vocabulary := []string{"Paracetamol", "Ibuprofen", "Amoxicillin"}

	m := MatchName(vocabulary, "  PARACETAMOL ", nil)
	if m.Canonical != "Paracetamol" {
		t.Fatalf("expected canonical Paracetamol, got %q", m.Canonical)
	}
	if len(m.Candidates) != 1 {
		t.Fatalf("expected one candidate, got %v", m.Candidates)
	}
}

func TestMatchNameSinglePrefix(t *testing.T) {
	t.Parallel()

	vocabulary := []string{"Paracetamol", "Ibuprofen", "Amoxicillin"}

	m := MatchName(vocabulary, "parac", nil)
	if m.Canonical != "Paracetamol" {
		t.Fatalf("expected canonical Paracetamol, got %q", m.Canonical)
	}
}

func TestMatchNameAmbiguousPrefix(t *testing.T) {
	t.Parallel()

	vocabulary := []string{"Ibuprofen 200", "Ibuprofen 400", "Paracetamol"}

	m := MatchName(vocabulary, "ibuprofen", nil)
	if m.Canonical != "" {
		t.Fatalf("expected no canonical for ambiguous prefix, got %q", m.Canonical)
	}
	want := []string{"Ibuprofen 200", "Ibuprofen 400"}
	if !reflect.DeepEqual(m.Candidates, want) {
		t.Fatalf("unexpected candidates: %v", m.Candidates)
	}
}

func TestMatchNameNoMatch(t *testing.T) {
	t.Parallel()

	m := MatchName([]string{"Paracetamol"}, "Aspirin", nil)
	if m.Canonical != "" || len(m.Candidates) != 0 {
		t.Fatalf("expected empty match, got %+v", m)
	}

	empty := MatchName([]string{"Paracetamol"}, "   ", nil)
	if empty.Canonical != "" || len(empty.Candidates) != 0 {
		t.Fatalf("expected empty match for blank input, got %+v", empty)
	}
}

func TestMemoryDirectoryUserLookup(t *testing.T) {
	t.Parallel()

	d := SeedDirectory()

	u, err := d.User(context.Background(), "  u001  ")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if u.Name != "Einat Shvartz" {
		t.Fatalf("unexpected user: %+v", u)
	}

	_, err = d.User(context.Background(), "u999")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryDirectoryMedicationLookup(t *testing.T) {
	t.Parallel()

	d := SeedDirectory()

	med, err := d.MedicationByName(context.Background(), "  paracetamol ")
	if err != nil {
		t.Fatalf("MedicationByName() error = %v", err)
	}
	if med.Name != "Paracetamol" {
		t.Fatalf("unexpected medication: %+v", med)
	}
	if med.RequiresPrescription {
		t.Fatalf("Paracetamol must be over the counter")
	}

	_, err = d.MedicationByName(context.Background(), "Aspirin")
	if !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound, got %v", err)
	}

	_, err = d.MedicationByName(context.Background(), "   ")
	if !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound for blank name, got %v", err)
	}
}

func TestMemoryDirectoryStock(t *testing.T) {
	t.Parallel()

	d := SeedDirectory()

	stock, err := d.Stock(context.Background(), "CETIRIZINE")
	if err != nil {
		t.Fatalf("Stock() error = %v", err)
	}
	if stock.MedicationName != "Cetirizine" {
		t.Fatalf("unexpected canonical name: %q", stock.MedicationName)
	}
	if stock.Quantity != 0 {
		t.Fatalf("Cetirizine must report quantity zero, got %d", stock.Quantity)
	}

	_, err = d.Stock(context.Background(), "Aspirin")
	if !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound, got %v", err)
	}
}

func TestMemoryDirectoryMedicationNames(t *testing.T) {
	t.Parallel()

	d := SeedDirectory()

	names, err := d.MedicationNames(context.Background())
	if err != nil {
		t.Fatalf("MedicationNames() error = %v", err)
	}
	if len(names) != 5 {
		t.Fatalf("expected five medications, got %v", names)
	}

	names[0] = "mutated"
	again, err := d.MedicationNames(context.Background())
	if err != nil {
		t.Fatalf("MedicationNames() error = %v", err)
	}
	if again[0] == "mutated" {
		t.Fatalf("MedicationNames must return a copy")
	}
}
