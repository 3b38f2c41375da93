// Package command defines the write-side request record and the validation
// error taxonomy returned by command handlers.
package command

import (
	"errors"
	"fmt"
)

// Command kinds accepted by the engine.
const (
	KindSetPrice              = "SET_PRICE"
	KindBuyEquipment          = "BUY_EQUIPMENT"
	KindSellEquipment         = "SELL_EQUIPMENT"
	KindPerformMaintenance    = "PERFORM_MAINTENANCE"
	KindFixMachine            = "FIX_MACHINE"
	KindBuySupplies           = "BUY_SUPPLIES"
	KindHireStaff             = "HIRE_STAFF"
	KindFireStaff             = "FIRE_STAFF"
	KindAdjustStaffWage       = "ADJUST_STAFF_WAGE"
	KindProvideBenefits       = "PROVIDE_BENEFITS"
	KindTakeLoan              = "TAKE_LOAN"
	KindMakeDebtPayment       = "MAKE_DEBT_PAYMENT"
	KindInvestInMarketing     = "INVEST_IN_MARKETING"
	KindSubscribeLoyalty      = "SUBSCRIBE_LOYALTY_PROGRAM"
	KindOpenLocation          = "OPEN_NEW_LOCATION"
	KindCloseLocation         = "CLOSE_LOCATION"
	KindNegotiateVendorDeal   = "NEGOTIATE_VENDOR_DEAL"
	KindSignExclusiveContract = "SIGN_EXCLUSIVE_CONTRACT"
	KindCancelVendorContract  = "CANCEL_VENDOR_CONTRACT"
	KindInitiateCharity       = "INITIATE_CHARITY"
	KindResolveScandal        = "RESOLVE_SCANDAL"
	KindMakeEthicalChoice     = "MAKE_ETHICAL_CHOICE"
	KindFileRegulatoryReport  = "FILE_REGULATORY_REPORT"
	KindPayFine               = "PAY_FINE"
	KindFileAppeal            = "FILE_APPEAL"
	KindCommunicateToAgent    = "COMMUNICATE_TO_AGENT"
	KindEnterAlliance         = "ENTER_ALLIANCE"
	KindProposeBuyout         = "PROPOSE_BUYOUT"
	KindAcceptBuyoutOffer     = "ACCEPT_BUYOUT_OFFER"
	KindSaveEndOfTurnNotes    = "SAVE_END_OF_TURN_NOTES"
	KindInjectWorldEvent      = "INJECT_WORLD_EVENT"
)

// Command is a request to change state. Payload is schemaless on purpose:
// each handler pulls and validates the fields it needs via the typed
// accessors below.
type Command struct {
	CommandID string                 `json:"command_id"`
	Kind      string                 `json:"command_kind"`
	AgentID   string                 `json:"agent_id"`
	Payload   map[string]interface{} `json:"payload"`
	Source    string                 `json:"source,omitempty"` // AGENT, GM, JUDGE
}

// Error kinds carried by ValidationError. These are the machine-readable
// rejection reasons surfaced through the engine result.
const (
	ErrInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrInvalidState      = "INVALID_STATE"
	ErrCreditError       = "CREDIT_ERROR"
	ErrLocationNotFound  = "LOCATION_NOT_FOUND"
	ErrMachineNotFound   = "MACHINE_NOT_FOUND"
	ErrVendorNotFound    = "VENDOR_NOT_FOUND"
	ErrStaffNotFound     = "STAFF_NOT_FOUND"
	ErrContractViolation = "CONTRACT_VIOLATION"
	ErrUnknownCommand    = "UNKNOWN_COMMAND"
)

// ValidationError is a command rejection. It carries no state mutation:
// a rejected command appends nothing to the journal.
type ValidationError struct {
	ErrKind string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

// Reject builds a ValidationError with a formatted message.
func Reject(kind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// String returns a required string payload field.
func (c *Command) String(key string) (string, error) {
	v, ok := c.Payload[key]
	if !ok {
		return "", Reject(ErrInvalidState, "missing required field %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", Reject(ErrInvalidState, "field %q must be a non-empty string", key)
	}
	return s, nil
}

// OptString returns a string payload field or the fallback when absent.
func (c *Command) OptString(key, fallback string) string {
	if v, ok := c.Payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Float returns a required numeric payload field. JSON numbers decode as
// float64; int is accepted for payloads built in Go code.
func (c *Command) Float(key string) (float64, error) {
	v, ok := c.Payload[key]
	if !ok {
		return 0, Reject(ErrInvalidState, "missing required field %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, Reject(ErrInvalidState, "field %q must be a number", key)
	}
}

// Int returns a required whole-number payload field.
func (c *Command) Int(key string) (int, error) {
	f, err := c.Float(key)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, Reject(ErrInvalidState, "field %q must be a whole number", key)
	}
	return n, nil
}

// OptInt returns a whole-number payload field or the fallback when absent
// or malformed.
func (c *Command) OptInt(key string, fallback int) int {
	f, err := c.Float(key)
	if err != nil {
		return fallback
	}
	return int(f)
}

// Bool returns a boolean payload field; absent means false.
func (c *Command) Bool(key string) bool {
	if v, ok := c.Payload[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
