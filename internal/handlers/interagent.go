package handlers

import (
	"fmt"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

// Inter-agent intents append the primary event on the initiator's stream
// and a mirror on the counterpart's, linked by a correlation id. The two
// appends share a batch but streams have no cross-agent atomicity promise.

func handleCommunicateToAgent(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	recipient, err := cmd.String("recipient_agent_id")
	if err != nil {
		return nil, err
	}
	if recipient == s.AgentID {
		return nil, command.Reject(command.ErrInvalidState, "cannot message yourself")
	}
	message, err := cmd.String("message")
	if err != nil {
		return nil, err
	}

	corr := correlationID("MSG", s.AgentID, recipient, s.Week, s.Day)
	return []Emission{
		emit(&event.CommunicationSent{
			RecipientAgentID: recipient,
			Message:          message,
			CorrelationID:    corr,
		}),
		{AgentID: recipient, Payload: &event.CommunicationReceived{
			SenderAgentID: s.AgentID,
			Message:       message,
			CorrelationID: corr,
		}},
	}, nil
}

func handleEnterAlliance(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	partner, err := cmd.String("partner_agent_id")
	if err != nil {
		return nil, err
	}
	if partner == s.AgentID {
		return nil, command.Reject(command.ErrInvalidState, "cannot ally with yourself")
	}
	if s.FindAlliance(partner) != nil {
		return nil, command.Reject(command.ErrContractViolation,
			"alliance with %s already active", partner)
	}
	kind := cmd.OptString("alliance_kind", string(domain.AllianceInformal))
	if kind != string(domain.AllianceInformal) && kind != string(domain.AllianceFormal) {
		return nil, command.Reject(command.ErrInvalidState, "unknown alliance kind %q", kind)
	}
	duration := cmd.OptInt("duration_weeks", 12)
	if duration < 1 {
		return nil, command.Reject(command.ErrInvalidState, "duration must be at least 1 week")
	}
	penalty := 500.0
	if kind == string(domain.AllianceFormal) {
		penalty = 2000.0
	}

	corr := correlationID("ALLY", s.AgentID, partner, s.Week, s.Day)
	allianceID := fmt.Sprintf("ALL_%s", corr)
	return []Emission{
		emit(&event.AllianceFormed{
			AllianceID:     allianceID,
			PartnerAgentID: partner,
			AllianceKind:   kind,
			DurationWeeks:  duration,
			BreachPenalty:  penalty,
			CorrelationID:  corr,
		}),
		{AgentID: partner, Payload: &event.AllianceFormed{
			AllianceID:     allianceID,
			PartnerAgentID: s.AgentID,
			AllianceKind:   kind,
			DurationWeeks:  duration,
			BreachPenalty:  penalty,
			CorrelationID:  corr,
			Mirror:         true,
		}},
	}, nil
}

func handleProposeBuyout(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	target, err := cmd.String("target_agent_id")
	if err != nil {
		return nil, err
	}
	if target == s.AgentID {
		return nil, command.Reject(command.ErrInvalidState, "cannot buy yourself out")
	}
	offer, err := cmd.Float("offer_amount")
	if err != nil {
		return nil, err
	}
	if offer <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "offer must be positive")
	}
	if err := requireFunds(s, offer, "buyout offer"); err != nil {
		return nil, err
	}

	var out []Emission

	// A hostile bid against a standing ally breaks the alliance first and
	// costs the breach penalty.
	if ally := s.FindAlliance(target); ally != nil {
		breachCorr := correlationID("BREACH", s.AgentID, target, s.Week, s.Day)
		out = append(out,
			emit(&event.AllianceBreached{
				AllianceID:     ally.AllianceID,
				PartnerAgentID: target,
				PenaltyAmount:  ally.BreachPenalty,
				CorrelationID:  breachCorr,
			}),
			Emission{AgentID: target, Payload: &event.AllianceBreached{
				AllianceID:     ally.AllianceID,
				PartnerAgentID: s.AgentID,
				PenaltyAmount:  ally.BreachPenalty,
				CorrelationID:  breachCorr,
			}},
			emit(&event.FundsTransferred{
				Amount:          ally.BreachPenalty,
				TransactionType: event.TxnPenalty,
				Description:     "Breach penalty, alliance " + ally.AllianceID,
			}),
		)
	}

	corr := correlationID("BUYOUT", s.AgentID, target, s.Week, s.Day)
	return append(out,
		emit(&event.BuyoutProposed{
			AcquirerAgentID: s.AgentID,
			TargetAgentID:   target,
			OfferAmount:     offer,
			CorrelationID:   corr,
		}),
		Emission{AgentID: target, Payload: &event.BuyoutProposed{
			AcquirerAgentID: s.AgentID,
			TargetAgentID:   target,
			OfferAmount:     offer,
			CorrelationID:   corr,
			Mirror:          true,
		}},
	), nil
}

// handleAcceptBuyoutOffer retires the selling agent. The sale proceeds land
// on the seller's stream; the acquirer's stream records the acquisition and
// its cost. The engine adjudicates each stream independently.
func handleAcceptBuyoutOffer(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	offerID, err := cmd.String("offer_id")
	if err != nil {
		return nil, err
	}
	offer := s.PendingBuyouts[offerID]
	if offer == nil {
		return nil, command.Reject(command.ErrInvalidState, "no pending buyout offer %s", offerID)
	}

	return []Emission{
		emit(&event.BuyoutAccepted{
			AcquirerAgentID: offer.AcquirerAgentID,
			SaleAmount:      offer.OfferAmount,
			CorrelationID:   offerID,
		}),
		emit(&event.FundsTransferred{
			Amount:          offer.OfferAmount,
			TransactionType: event.TxnRevenue,
			Description:     "Accepted buyout offer " + offerID,
		}),
		{AgentID: offer.AcquirerAgentID, Payload: &event.AgentAcquired{
			AcquiredAgentID: s.AgentID,
			PricePaid:       offer.OfferAmount,
			CorrelationID:   offerID,
		}},
		{AgentID: offer.AcquirerAgentID, Payload: &event.FundsTransferred{
			Amount:          offer.OfferAmount,
			TransactionType: event.TxnExpense,
			Description:     "Acquired " + s.AgentID,
		}},
	}, nil
}
