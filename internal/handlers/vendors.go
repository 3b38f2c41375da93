package handlers

import (
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func requireVendor(loc *domain.LocationState, cmd *command.Command) (*domain.VendorRelationship, error) {
	vendorID, err := cmd.String("vendor_id")
	if err != nil {
		return nil, err
	}
	v := loc.Vendors[vendorID]
	if v == nil {
		return nil, command.Reject(command.ErrVendorNotFound,
			"no relationship with vendor %s at %s", vendorID, loc.LocationID)
	}
	return v, nil
}

// negotiationScore rates the relationship: tier carries the most weight,
// tenure and payment history fill in the rest.
func negotiationScore(v *domain.VendorRelationship) float64 {
	score := float64(v.Tier) * 2
	weeks := v.WeeksAtTier
	if weeks > 10 {
		weeks = 10
	}
	score += float64(weeks) * 0.5
	for _, rec := range v.PaymentHistory {
		switch rec {
		case domain.PaymentOnTime:
			score++
		case domain.PaymentLate:
			score--
		case domain.PaymentDefault:
			score -= 3
		}
	}
	return score
}

func handleNegotiateVendorDeal(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	v, err := requireVendor(loc, cmd)
	if err != nil {
		return nil, err
	}
	requested, err := cmd.Float("requested_discount")
	if err != nil {
		return nil, err
	}
	if requested < 0 || requested > 0.5 {
		return nil, command.Reject(command.ErrInvalidState,
			"requested discount %.2f outside [0, 0.5]", requested)
	}

	// Deterministic outcome: the relationship score sets how much discount
	// the vendor will tolerate.
	score := negotiationScore(v)
	var (
		outcome string
		granted float64
	)
	switch {
	case requested <= 0.05*score:
		outcome, granted = "ACCEPTED", requested
	case requested <= 0.10*score:
		outcome, granted = "COUNTERED", requested/2
	default:
		outcome, granted = "REJECTED", 0
	}

	out := []Emission{
		emit(&event.VendorNegotiationInitiated{
			LocationID:        loc.LocationID,
			VendorID:          v.VendorID,
			RequestedDiscount: requested,
		}),
		emit(&event.VendorNegotiationResult{
			LocationID:      loc.LocationID,
			VendorID:        v.VendorID,
			Outcome:         outcome,
			GrantedDiscount: granted,
		}),
	}
	if granted > 0 {
		out = append(out, emit(&event.VendorTermsUpdated{
			LocationID:   loc.LocationID,
			VendorID:     v.VendorID,
			NewUnitPrice: v.UnitPrice * (1 - granted),
		}))
	}
	return out, nil
}

const (
	exclusiveDiscountRate = 0.15
	earlyCancelPenalty    = 250.0
)

func handleSignExclusiveContract(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	v, err := requireVendor(loc, cmd)
	if err != nil {
		return nil, err
	}
	if v.ExclusiveContract {
		return nil, command.Reject(command.ErrContractViolation,
			"vendor %s already holds an exclusive contract", v.VendorID)
	}
	for _, other := range loc.Vendors {
		if other.VendorID != v.VendorID && other.ExclusiveContract {
			return nil, command.Reject(command.ErrContractViolation,
				"location %s already bound exclusively to %s", loc.LocationID, other.VendorID)
		}
	}
	duration := cmd.OptInt("duration_weeks", 12)
	if duration < 4 {
		return nil, command.Reject(command.ErrInvalidState,
			"exclusive contracts run at least 4 weeks")
	}

	return []Emission{emit(&event.ExclusiveContractSigned{
		LocationID:    loc.LocationID,
		VendorID:      v.VendorID,
		DurationWeeks: duration,
		DiscountRate:  exclusiveDiscountRate,
	})}, nil
}

func handleCancelVendorContract(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	v, err := requireVendor(loc, cmd)
	if err != nil {
		return nil, err
	}
	if !v.ExclusiveContract {
		return nil, command.Reject(command.ErrContractViolation,
			"vendor %s has no exclusive contract to cancel", v.VendorID)
	}

	early := s.Week < v.ExclusiveEndWeek
	out := []Emission{emit(&event.VendorContractCancelled{
		LocationID:       loc.LocationID,
		VendorID:         v.VendorID,
		EarlyTermination: early,
		PenaltyAmount:    0,
	})}
	if early {
		if err := requireFunds(s, earlyCancelPenalty, "early termination penalty"); err != nil {
			return nil, err
		}
		out[0].Payload.(*event.VendorContractCancelled).PenaltyAmount = earlyCancelPenalty
		out = append(out, emit(&event.FundsTransferred{
			Amount:          earlyCancelPenalty,
			TransactionType: event.TxnPenalty,
			Description:     "Early termination penalty, vendor " + v.VendorID,
		}))
	}
	return out, nil
}
