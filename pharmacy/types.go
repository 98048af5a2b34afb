package pharmacy

// User is one registered pharmacy customer. Prescriptions holds the
// medication names the user has an active prescription for.
type User struct {
	ID            string   `json:"user_id"`
	Name          string   `json:"name"`
	Prescriptions []string `json:"prescriptions"`
}

// DosageInstruction is label-style, non-personalized dosing guidance.
type DosageInstruction struct {
	DoseAmount string `json:"dose_amount"`
	Frequency  string `json:"frequency"`
	MaxDaily   string `json:"max_daily"`
}

// Medication is a single factual record from the internal database.
// It is immutable for the duration of a request.
type Medication struct {
	Name                 string            `json:"name"`
	ActiveIngredient     string            `json:"active_ingredient"`
	RequiresPrescription bool              `json:"requires_prescription"`
	DosageInstruction    DosageInstruction `json:"dosage_instruction"`
	UsageInstructions    string            `json:"usage_instructions"`
	SafetyInstructions   string            `json:"safety_instructions"`
}

// StockRecord reports the on-hand quantity for a medication.
// Quantity zero is a valid state, distinct from the medication not existing.
type StockRecord struct {
	MedicationName string `json:"medication_name"`
	Quantity       int    `json:"quantity"`
}

// PrescriptionStatus is derived per request by joining a medication's
// prescription requirement with the user's prescription list. It is never
// stored.
type PrescriptionStatus struct {
	MedicationName       string `json:"medication_name"`
	RequiresPrescription bool   `json:"requires_prescription"`
	UserHasPrescription  bool   `json:"user_has_prescription"`
}

// StockedMedication pairs a medication record with its current quantity,
// matching the shape of one backing-store row.
type StockedMedication struct {
	Medication
	Quantity int `json:"quantity"`
}
