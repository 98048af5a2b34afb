package pharmacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type userRow struct {
	bun.BaseModel `bun:"table:pharmacy_users,alias:u"`

	UserID        string   `bun:"user_id,pk"`
	Name          string   `bun:"name"`
	Prescriptions []string `bun:"prescriptions,array"`
}

type medicationRow struct {
	bun.BaseModel `bun:"table:medications,alias:m"`

	Name                 string `bun:"name,pk"`
	ActiveIngredient     string `bun:"active_ingredient"`
	RequiresPrescription bool   `bun:"requires_prescription"`
	DoseAmount           string `bun:"dose_amount"`
	Frequency            string `bun:"frequency"`
	MaxDaily             string `bun:"max_daily"`
	UsageInstructions    string `bun:"usage_instructions"`
	SafetyInstructions   string `bun:"safety_instructions"`
	Quantity             int    `bun:"quantity"`
}

// PostgresDirectory serves directory reads from Postgres through bun. It
// issues only SELECTs; the table lifecycle is owned elsewhere.
type PostgresDirectory struct {
	db *bun.DB
}

// NewPostgresDirectory opens a pgdriver connection for the given DSN.
func NewPostgresDirectory(dsn string) (*PostgresDirectory, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &PostgresDirectory{db: db}, nil
}

// Ping verifies the connection during startup.
func (d *PostgresDirectory) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *PostgresDirectory) Close() error {
	return d.db.Close()
}

func (d *PostgresDirectory) User(ctx context.Context, userID string) (User, error) {
	var row userRow
	err := d.db.NewSelect().
		Model(&row).
		Where("u.user_id = ?", strings.TrimSpace(userID)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("select user: %w", err)
	}
	return User{
		ID:            row.UserID,
		Name:          row.Name,
		Prescriptions: row.Prescriptions,
	}, nil
}

func (d *PostgresDirectory) MedicationByName(ctx context.Context, name string) (Medication, error) {
	row, err := d.medicationRow(ctx, name)
	if err != nil {
		return Medication{}, err
	}
	return row.toMedication(), nil
}

func (d *PostgresDirectory) Stock(ctx context.Context, name string) (StockRecord, error) {
	row, err := d.medicationRow(ctx, name)
	if err != nil {
		return StockRecord{}, err
	}
	return StockRecord{MedicationName: row.Name, Quantity: row.Quantity}, nil
}

func (d *PostgresDirectory) MedicationNames(ctx context.Context) ([]string, error) {
	var names []string
	err := d.db.NewSelect().
		Model((*medicationRow)(nil)).
		Column("m.name").
		Order("m.name ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("select medication names: %w", err)
	}
	return names, nil
}

// ListUsers loads every user row. Used by the snapshot refresher only.
func (d *PostgresDirectory) ListUsers(ctx context.Context) ([]User, error) {
	var rows []userRow
	if err := d.db.NewSelect().Model(&rows).Order("user_id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	users := make([]User, 0, len(rows))
	for _, r := range rows {
		users = append(users, User{ID: r.UserID, Name: r.Name, Prescriptions: r.Prescriptions})
	}
	return users, nil
}

// ListMedications loads every medication row with its quantity. Used by the
// snapshot refresher only.
func (d *PostgresDirectory) ListMedications(ctx context.Context) ([]StockedMedication, error) {
	var rows []medicationRow
	if err := d.db.NewSelect().Model(&rows).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select medications: %w", err)
	}
	meds := make([]StockedMedication, 0, len(rows))
	for _, r := range rows {
		meds = append(meds, StockedMedication{Medication: r.toMedication(), Quantity: r.Quantity})
	}
	return meds, nil
}

func (d *PostgresDirectory) medicationRow(ctx context.Context, name string) (medicationRow, error) {
	var row medicationRow
	err := d.db.NewSelect().
		Model(&row).
		Where("lower(m.name) = lower(?)", strings.TrimSpace(name)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return medicationRow{}, ErrMedicationNotFound
	}
	if err != nil {
		return medicationRow{}, fmt.Errorf("select medication: %w", err)
	}
	return row, nil
}

func (r medicationRow) toMedication() Medication {
	return Medication{
		Name:                 r.Name,
		ActiveIngredient:     r.ActiveIngredient,
		RequiresPrescription: r.RequiresPrescription,
		DosageInstruction: DosageInstruction{
			DoseAmount: r.DoseAmount,
			Frequency:  r.Frequency,
			MaxDaily:   r.MaxDaily,
		},
		UsageInstructions:  r.UsageInstructions,
		SafetyInstructions: r.SafetyInstructions,
	}
}
