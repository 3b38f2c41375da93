package projection

import (
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerCompetition(r *Registry) {
	r.Register(event.KindAllianceFormed, reduceAllianceFormed)
	r.Register(event.KindAllianceBreached, reduceAllianceBreached)
	r.Register(event.KindBuyoutProposed, reduceBuyoutProposed)
	r.Register(event.KindBuyoutAccepted, reduceBuyoutAccepted)
	r.Register(event.KindAgentAcquired, noop)
	r.Register(event.KindCompetitorPriceChanged, reduceCompetitorPrice)
	r.Register(event.KindCompetitorExitedMarket, noop)
	r.Register(event.KindCommunicationSent, noop)
	r.Register(event.KindCommunicationReceived, noop)
}

func reduceAllianceFormed(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.AllianceFormed)
	if !ok {
		return payloadError(ev)
	}
	s.ActiveAlliances = append(s.ActiveAlliances, &domain.Alliance{
		AllianceID:     p.AllianceID,
		PartnerAgentID: p.PartnerAgentID,
		Kind:           domain.AllianceKind(p.AllianceKind),
		StartWeek:      ev.Week,
		DurationWeeks:  p.DurationWeeks,
		BreachPenalty:  p.BreachPenalty,
	})
	return nil
}

func reduceAllianceBreached(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.AllianceBreached)
	if !ok {
		return payloadError(ev)
	}
	kept := s.ActiveAlliances[:0]
	for _, a := range s.ActiveAlliances {
		if a.AllianceID != p.AllianceID {
			kept = append(kept, a)
		}
	}
	s.ActiveAlliances = kept
	return nil
}

// reduceBuyoutProposed records the offer on the target's stream only; the
// mirror flag distinguishes it from the initiator's own record.
func reduceBuyoutProposed(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.BuyoutProposed)
	if !ok {
		return payloadError(ev)
	}
	if !p.Mirror {
		return nil
	}
	s.PendingBuyouts[p.CorrelationID] = &domain.BuyoutOffer{
		OfferID:         p.CorrelationID,
		AcquirerAgentID: p.AcquirerAgentID,
		OfferAmount:     p.OfferAmount,
		OfferedWeek:     ev.Week,
	}
	return nil
}

// reduceBuyoutAccepted lands on the selling agent's stream; the sale
// proceeds ride on the paired FundsTransferred.
func reduceBuyoutAccepted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.BuyoutAccepted)
	if !ok {
		return payloadError(ev)
	}
	delete(s.PendingBuyouts, p.CorrelationID)
	s.Retired = true
	return nil
}

func reduceCompetitorPrice(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.CompetitorPriceChanged)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	if loc.CompetitorPrices == nil {
		loc.CompetitorPrices = make(map[string]float64)
	}
	loc.CompetitorPrices[p.ServiceType] = p.NewPrice
	return nil
}
