package projection

import (
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerVendors(r *Registry) {
	r.Register(event.KindVendorTierPromoted, reduceVendorTierPromoted)
	r.Register(event.KindVendorTierDemoted, reduceVendorTierDemoted)
	r.Register(event.KindVendorPriceFluctuated, reduceVendorPriceFluctuated)
	r.Register(event.KindVendorNegotiationInitiated, noop)
	r.Register(event.KindVendorNegotiationResult, noop)
	r.Register(event.KindVendorTermsUpdated, reduceVendorTermsUpdated)
	r.Register(event.KindExclusiveContractSigned, reduceExclusiveSigned)
	r.Register(event.KindVendorContractCancelled, reduceContractCancelled)
	r.Register(event.KindDeliveryDisruptionStarted, reduceDisruptionStarted)
	r.Register(event.KindDeliveryDisruptionEnded, reduceDisruptionEnded)
}

func reduceVendorTierPromoted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.VendorTierPromoted)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.Tier = p.NewTier
	v.WeeksAtTier = 0
	return nil
}

func reduceVendorTierDemoted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.VendorTierDemoted)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.Tier = p.NewTier
	v.WeeksAtTier = 0
	return nil
}

func reduceVendorPriceFluctuated(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.VendorPriceFluctuated)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.UnitPrice = p.NewUnitPrice
	return nil
}

func reduceVendorTermsUpdated(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.VendorTermsUpdated)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.UnitPrice = p.NewUnitPrice
	return nil
}

func reduceExclusiveSigned(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.ExclusiveContractSigned)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.ExclusiveContract = true
	v.ExclusiveEndWeek = ev.Week + p.DurationWeeks
	v.UnitPrice = v.UnitPrice * (1 - p.DiscountRate)
	return nil
}

func reduceContractCancelled(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.VendorContractCancelled)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.ExclusiveContract = false
	v.ExclusiveEndWeek = 0
	return nil
}

func reduceDisruptionStarted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DeliveryDisruptionStarted)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.Disrupted = true
	return nil
}

func reduceDisruptionEnded(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DeliveryDisruptionEnded)
	if !ok {
		return payloadError(ev)
	}
	v, err := vendor(s, p.LocationID, p.VendorID)
	if err != nil {
		return err
	}
	v.Disrupted = false
	return nil
}
