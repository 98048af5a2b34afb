// Package tool implements the Lookup Gateway: the four read-only
// operations the flow orchestrator may invoke against the pharmacy
// directory. Every call is recorded on the per-request FlowResult so the
// flow trace can prove the exact invocation sequence.
package tool

import (
	"context"
	"errors"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	"github.com/eshvartz/pharmacy-agent/pharmacy"
)

// Tool names as they appear in flow traces.
const (
	ToolGetUser             = "get_user"
	ToolGetMedicationByName = "get_medication_by_name"
	ToolCheckStock          = "check_stock"
	ToolCheckPrescription   = "check_prescription"
)

// Gateway wraps a pharmacy.Directory with invocation recording. It has no
// state of its own beyond the injected collaborators and performs no
// writes.
type Gateway struct {
	directory pharmacy.Directory
	fold      pharmacy.Normalizer
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithNormalizer replaces the default medication-name normalizer.
func WithNormalizer(fold pharmacy.Normalizer) Option {
	return func(g *Gateway) {
		if fold != nil {
			g.fold = fold
		}
	}
}

func NewGateway(directory pharmacy.Directory, opts ...Option) (*Gateway, error) {
	if directory == nil {
		return nil, errors.New("pharmacy directory is required")
	}
	g := &Gateway{
		directory: directory,
		fold:      pharmacy.FoldName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// GetUser fetches a user record and records the invocation.
func (g *Gateway) GetUser(ctx context.Context, res *contractx.FlowResult, userID string) (pharmacy.User, error) {
	user, err := g.directory.User(ctx, userID)
	record(res, ToolGetUser, map[string]any{"user_id": userID}, err)
	return user, err
}

// GetMedicationByName fetches a full medication record and records the
// invocation.
func (g *Gateway) GetMedicationByName(ctx context.Context, res *contractx.FlowResult, name string) (pharmacy.Medication, error) {
	med, err := g.directory.MedicationByName(ctx, name)
	record(res, ToolGetMedicationByName, map[string]any{"name": name}, err)
	return med, err
}

// CheckStock reports the current quantity for a medication and records the
// invocation.
func (g *Gateway) CheckStock(ctx context.Context, res *contractx.FlowResult, name string) (pharmacy.StockRecord, error) {
	stock, err := g.directory.Stock(ctx, name)
	record(res, ToolCheckStock, map[string]any{"name": name}, err)
	return stock, err
}

// CheckPrescription joins the medication's prescription requirement with
// the user's prescription list and records the single combined invocation.
func (g *Gateway) CheckPrescription(ctx context.Context, res *contractx.FlowResult, userID, name string) (pharmacy.PrescriptionStatus, error) {
	status, err := g.checkPrescription(ctx, userID, name)
	record(res, ToolCheckPrescription, map[string]any{"user_id": userID, "name": name}, err)
	return status, err
}

func (g *Gateway) checkPrescription(ctx context.Context, userID, name string) (pharmacy.PrescriptionStatus, error) {
	user, err := g.directory.User(ctx, userID)
	if err != nil {
		return pharmacy.PrescriptionStatus{}, err
	}
	med, err := g.directory.MedicationByName(ctx, name)
	if err != nil {
		return pharmacy.PrescriptionStatus{}, err
	}

	has := false
	for _, p := range user.Prescriptions {
		if g.fold(p) == g.fold(med.Name) {
			has = true
			break
		}
	}

	return pharmacy.PrescriptionStatus{
		MedicationName:       med.Name,
		RequiresPrescription: med.RequiresPrescription,
		UserHasPrescription:  has,
	}, nil
}

// Vocabulary lists the canonical medication names. This is not one of the
// four tools and is never recorded in the flow trace.
func (g *Gateway) Vocabulary(ctx context.Context) ([]string, error) {
	return g.directory.MedicationNames(ctx)
}

// Normalizer exposes the gateway's name normalizer for entity resolution.
func (g *Gateway) Normalizer() pharmacy.Normalizer {
	return g.fold
}

func record(res *contractx.FlowResult, tool string, args map[string]any, err error) {
	if res == nil {
		return
	}
	outcome := contractx.OutcomeOK
	switch {
	case errors.Is(err, pharmacy.ErrUserNotFound):
		outcome = contractx.OutcomeUserNotFound
	case errors.Is(err, pharmacy.ErrMedicationNotFound):
		outcome = contractx.OutcomeMedicationNotFound
	case err != nil:
		outcome = contractx.OutcomeError
	}
	res.Invocations = append(res.Invocations, contractx.ToolInvocation{
		Tool:    tool,
		Args:    args,
		Outcome: outcome,
	})
}
