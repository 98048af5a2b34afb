package nodes

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/eshvartz/pharmacy-agent/agent/contract"
	toolx "github.com/eshvartz/pharmacy-agent/agent/tool"
	"github.com/eshvartz/pharmacy-agent/pharmacy"
)

// ExecuteTools runs the lookup sequence prescribed for the classified flow
// kind. A NotFound outcome is an expected terminal state, reported
// deterministically and never retried.
func ExecuteTools(ctx context.Context, in *GraphState, gateway *toolx.Gateway) (*GraphState, error) {
	if in.Result.Terminated() {
		return in, nil
	}

	switch in.Result.Kind {
	case contractx.FlowMedicationFacts:
		if err := executeMedicationFacts(ctx, in, gateway); err != nil {
			return nil, err
		}
	case contractx.FlowPrescriptionEligibility:
		if err := executePrescriptionEligibility(ctx, in, gateway); err != nil {
			return nil, err
		}
	case contractx.FlowInventoryAndPrescription:
		if err := executeInventoryAndPrescription(ctx, in, gateway); err != nil {
			return nil, err
		}
	case contractx.FlowAdviceRequest, contractx.FlowOther:
		// No tool calls. The policy filter handles the refusal or the
		// capability-limits message.
	default:
		return nil, fmt.Errorf("%w: unknown flow kind %q", contractx.ErrValidation, in.Result.Kind)
	}

	if !in.Result.Terminated() {
		in.Result.Termination = contractx.TerminationCompleted
	}
	return in, nil
}

// executeMedicationFacts resolves the four informational attributes only
// (no stock, no prescription fields).
func executeMedicationFacts(ctx context.Context, in *GraphState, gateway *toolx.Gateway) error {
	med, err := gateway.GetMedicationByName(ctx, in.Result, in.MedicationName)
	if errors.Is(err, pharmacy.ErrMedicationNotFound) {
		in.Result.Termination = contractx.TerminationMedicationNotFound
		return nil
	}
	if err != nil {
		return fmt.Errorf("get medication: %w", err)
	}

	in.Result.Fields = map[string]any{
		contractx.FieldMedicationName:     med.Name,
		contractx.FieldActiveIngredient:   med.ActiveIngredient,
		contractx.FieldDoseAmount:         med.DosageInstruction.DoseAmount,
		contractx.FieldFrequency:          med.DosageInstruction.Frequency,
		contractx.FieldMaxDaily:           med.DosageInstruction.MaxDaily,
		contractx.FieldUsageInstructions:  med.UsageInstructions,
		contractx.FieldSafetyInstructions: med.SafetyInstructions,
	}
	return nil
}

func executePrescriptionEligibility(ctx context.Context, in *GraphState, gateway *toolx.Gateway) error {
	status, err := gateway.CheckPrescription(ctx, in.Result, in.Result.Request.UserID, in.MedicationName)
	if errors.Is(err, pharmacy.ErrMedicationNotFound) {
		in.Result.Termination = contractx.TerminationMedicationNotFound
		return nil
	}
	if errors.Is(err, pharmacy.ErrUserNotFound) {
		in.Result.Termination = contractx.TerminationUserNotFound
		return nil
	}
	if err != nil {
		return fmt.Errorf("check prescription: %w", err)
	}

	in.Result.Fields = map[string]any{
		contractx.FieldMedicationName:       status.MedicationName,
		contractx.FieldRequiresPrescription: status.RequiresPrescription,
		contractx.FieldUserHasPrescription:  status.UserHasPrescription,
	}
	return nil
}

// executeInventoryAndPrescription runs check_stock strictly before
// check_prescription. The order carries no data dependency; it is the
// logging determinism contract.
func executeInventoryAndPrescription(ctx context.Context, in *GraphState, gateway *toolx.Gateway) error {
	stock, err := gateway.CheckStock(ctx, in.Result, in.MedicationName)
	if errors.Is(err, pharmacy.ErrMedicationNotFound) {
		in.Result.Termination = contractx.TerminationMedicationNotFound
		return nil
	}
	if err != nil {
		return fmt.Errorf("check stock: %w", err)
	}

	status, err := gateway.CheckPrescription(ctx, in.Result, in.Result.Request.UserID, in.MedicationName)
	if errors.Is(err, pharmacy.ErrMedicationNotFound) {
		in.Result.Termination = contractx.TerminationMedicationNotFound
		return nil
	}
	if errors.Is(err, pharmacy.ErrUserNotFound) {
		in.Result.Termination = contractx.TerminationUserNotFound
		return nil
	}
	if err != nil {
		return fmt.Errorf("check prescription: %w", err)
	}

	in.Result.Fields = map[string]any{
		contractx.FieldQuantity:             stock.Quantity,
		contractx.FieldRequiresPrescription: status.RequiresPrescription,
		contractx.FieldUserHasPrescription:  status.UserHasPrescription,
	}
	return nil
}
