package pharmacy

// SeedUsers returns the registered customer fixture used when the service
// runs without a database.
func SeedUsers() []User {
	return []User{
		{ID: "u001", Name: "Einat Shvartz", Prescriptions: []string{"Amoxicillin", "Metformin"}},
		{ID: "u002", Name: "Guy Lurya", Prescriptions: []string{}},
		{ID: "u003", Name: "Noa Kasher", Prescriptions: []string{"Amoxicillin"}},
		{ID: "u004", Name: "Amit Wiez", Prescriptions: []string{}},
		{ID: "u005", Name: "Lea London", Prescriptions: []string{"Metformin"}},
		{ID: "u006", Name: "Maya Rubin", Prescriptions: []string{}},
		{ID: "u007", Name: "Tamar Levi", Prescriptions: []string{"Amoxicillin"}},
		{ID: "u008", Name: "Tair Cohen", Prescriptions: []string{}},
		{ID: "u009", Name: "Nicole Kaplan", Prescriptions: []string{"Metformin"}},
		{ID: "u010", Name: "Omri Paz", Prescriptions: []string{}},
	}
}

// SeedMedications returns the medication fixture. Cetirizine is deliberately
// out of stock so the quantity-zero state stays covered.
func SeedMedications() []StockedMedication {
	return []StockedMedication{
		{
			Medication: Medication{
				Name:                 "Paracetamol",
				ActiveIngredient:     "Acetaminophen",
				RequiresPrescription: false,
				DosageInstruction: DosageInstruction{
					DoseAmount: "500 mg",
					Frequency:  "every 4-6 hours",
					MaxDaily:   "Do not exceed 4,000 mg in 24 hours (label guidance).",
				},
				UsageInstructions: "Take with water. Follow the package directions.",
				SafetyInstructions: "Do not use if you are allergic to acetaminophen. " +
					"Avoid combining with other products containing acetaminophen. " +
					"Follow the label and consult a healthcare professional for personal medical advice.",
			},
			Quantity: 42,
		},
		{
			Medication: Medication{
				Name:                 "Ibuprofen",
				ActiveIngredient:     "Ibuprofen",
				RequiresPrescription: false,
				DosageInstruction: DosageInstruction{
					DoseAmount: "200-400 mg",
					Frequency:  "every 6-8 hours",
					MaxDaily:   "Do not exceed 1,200 mg in 24 hours unless directed by a clinician (label guidance).",
				},
				UsageInstructions: "Take with food or milk to reduce stomach upset. Follow the package directions.",
				SafetyInstructions: "Do not use if you are allergic to ibuprofen/NSAIDs. " +
					"May increase risk of stomach bleeding; follow label warnings. " +
					"Consult a healthcare professional for pregnancy/medical conditions or personal medical advice.",
			},
			Quantity: 18,
		},
		{
			Medication: Medication{
				Name:                 "Amoxicillin",
				ActiveIngredient:     "Amoxicillin",
				RequiresPrescription: true,
				DosageInstruction: DosageInstruction{
					DoseAmount: "As prescribed",
					Frequency:  "As prescribed",
					MaxDaily:   "As prescribed",
				},
				UsageInstructions: "Prescription-only. Take exactly as prescribed. Complete the full course if instructed.",
				SafetyInstructions: "Do not use if you have a penicillin allergy. " +
					"Follow the prescriber's directions and consult a healthcare professional for side effects or concerns.",
			},
			Quantity: 10,
		},
		{
			Medication: Medication{
				Name:                 "Cetirizine",
				ActiveIngredient:     "Cetirizine",
				RequiresPrescription: false,
				DosageInstruction: DosageInstruction{
					DoseAmount: "10 mg",
					Frequency:  "once daily",
					MaxDaily:   "Do not exceed 10 mg in 24 hours (label guidance).",
				},
				UsageInstructions: "May be taken with or without food. Follow the package directions.",
				SafetyInstructions: "Do not use if you are allergic to cetirizine. " +
					"May cause drowsiness in some people; follow label warnings. " +
					"Consult a healthcare professional for pregnancy/breastfeeding or personal medical advice.",
			},
			Quantity: 0,
		},
		{
			Medication: Medication{
				Name:                 "Metformin",
				ActiveIngredient:     "Metformin",
				RequiresPrescription: true,
				DosageInstruction: DosageInstruction{
					DoseAmount: "As prescribed",
					Frequency:  "As prescribed",
					MaxDaily:   "As prescribed",
				},
				UsageInstructions: "Prescription-only. Take with meals as prescribed to reduce stomach upset.",
				SafetyInstructions: "Do not use if you are allergic to metformin. " +
					"Follow the prescriber's directions and consult a healthcare professional for side effects or concerns.",
			},
			Quantity: 6,
		},
	}
}

// SeedDirectory builds the default in-memory directory from the fixtures.
func SeedDirectory(opts ...MemoryOption) *MemoryDirectory {
	return NewMemoryDirectory(SeedUsers(), SeedMedications(), opts...)
}
