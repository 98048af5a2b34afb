package contract

// FlowKind is the classified category of a request. It determines which
// lookup sequence runs.
type FlowKind string

const (
	FlowMedicationFacts          FlowKind = "medication_facts"
	FlowPrescriptionEligibility  FlowKind = "prescription_eligibility"
	FlowInventoryAndPrescription FlowKind = "inventory_and_prescription"
	FlowAdviceRequest            FlowKind = "advice_request"
	FlowAmbiguous                FlowKind = "ambiguous"
	FlowOther                    FlowKind = "other"
)

// Language is the detected language of the incoming message.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHebrew  Language = "he"
)

// Termination names how a flow ended.
type Termination string

const (
	TerminationCompleted          Termination = "completed"
	TerminationUserNotFound       Termination = "user_not_found"
	TerminationMedicationNotFound Termination = "medication_not_found"
	TerminationAmbiguousEntity    Termination = "ambiguous_entity"
)

// Structured field keys. structured_fields carries only the fields a flow
// actually resolved, so presence of a key is meaningful.
const (
	FieldMedicationName       = "medication_name"
	FieldActiveIngredient     = "active_ingredient"
	FieldDoseAmount           = "dose_amount"
	FieldFrequency            = "frequency"
	FieldMaxDaily             = "max_daily"
	FieldUsageInstructions    = "usage_instructions"
	FieldSafetyInstructions   = "safety_instructions"
	FieldQuantity             = "quantity"
	FieldRequiresPrescription = "requires_prescription"
	FieldUserHasPrescription  = "user_has_prescription"
)

// FlowRequest is constructed once per incoming request and never reused.
type FlowRequest struct {
	RequestID        string   `json:"request_id"`
	UserID           string   `json:"user_id"`
	RawMessage       string   `json:"raw_message"`
	DetectedLanguage Language `json:"detected_language"`
}

// ToolInvocation records one Lookup Gateway call in execution order.
type ToolInvocation struct {
	Tool    string         `json:"tool"`
	Args    map[string]any `json:"args,omitempty"`
	Outcome string         `json:"outcome"`
}

// Invocation outcomes.
const (
	OutcomeOK                 = "ok"
	OutcomeUserNotFound       = "user_not_found"
	OutcomeMedicationNotFound = "medication_not_found"
	OutcomeError              = "error"
)

// FlowResult is the per-request output of the orchestrator, consumed by the
// policy filter and then discarded.
type FlowResult struct {
	Request       FlowRequest      `json:"request"`
	Kind          FlowKind         `json:"flow_kind"`
	Invocations   []ToolInvocation `json:"tool_invocations"`
	Fields        map[string]any   `json:"structured_fields,omitempty"`
	Termination   Termination      `json:"termination_reason"`
	Clarification string           `json:"clarification,omitempty"`
}

// ToolsUsed returns the invoked tool names in execution order.
func (r *FlowResult) ToolsUsed() []string {
	tools := make([]string, 0, len(r.Invocations))
	for _, inv := range r.Invocations {
		tools = append(tools, inv.Tool)
	}
	return tools
}

// Terminated reports whether the flow hit an early-exit terminal state and
// no further tool calls are permitted.
func (r *FlowResult) Terminated() bool {
	return r.Termination != "" && r.Termination != TerminationCompleted
}

// ContentMode tags how the policy filter classified the outgoing content.
type ContentMode string

const (
	ModeDeterministic ContentMode = "deterministic_message"
	ModeRefusal       ContentMode = "refusal"
	ModeFactual       ContentMode = "factual"
)

// ApprovedContent is the policy-filtered, fact-bounded payload handed to
// response rendering. Text is set for deterministic and refusal modes;
// Fields plus FieldOrder drive factual rendering.
type ApprovedContent struct {
	Mode       ContentMode    `json:"mode"`
	Language   Language       `json:"language"`
	Text       string         `json:"text,omitempty"`
	Fields     map[string]any `json:"fields,omitempty"`
	FieldOrder []string       `json:"field_order,omitempty"`
}
