package projection

import (
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerLifecycle(r *Registry) {
	r.Register(event.KindAgentCreated, reduceAgentCreated)
	r.Register(event.KindAgentRetired, reduceAgentRetired)
	r.Register(event.KindLocationOpened, reduceLocationOpened)
	r.Register(event.KindLocationClosed, reduceLocationClosed)
	r.Register(event.KindLocationListingAdded, reduceListingAdded)
	r.Register(event.KindLocationListingRemoved, reduceListingRemoved)
}

// reduceAgentCreated seeds the starting balance sheet and the first
// location with one operational washer and the default service menu.
func reduceAgentCreated(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.AgentCreated)
	if !ok {
		return payloadError(ev)
	}

	s.Cash = p.StartingCash
	if p.CreditLimit > 0 {
		s.CreditLimit = p.CreditLimit
	}
	loc := newLocation(p.LocationID, p.Zone, p.MonthlyRent)
	loc.Equipment[p.FirstMachineID] = &domain.MachineState{
		MachineID: p.FirstMachineID,
		Kind:      domain.MachineWasher,
		Condition: 100,
		Status:    domain.MachineOperational,
	}
	s.Locations[p.LocationID] = loc
	s.MachineSeq = 1
	s.LocationSeq = 1
	s.CreatedAt = ev.Timestamp
	return nil
}

func reduceAgentRetired(s *domain.AgentState, ev *event.Event) error {
	if _, ok := ev.Payload.(*event.AgentRetired); !ok {
		return payloadError(ev)
	}
	s.Retired = true
	return nil
}

func reduceLocationOpened(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.LocationOpened)
	if !ok {
		return payloadError(ev)
	}
	s.Locations[p.LocationID] = newLocation(p.LocationID, p.Zone, p.MonthlyRent)
	s.LocationSeq++
	delete(s.Listings, p.ListingID)
	return nil
}

func reduceLocationClosed(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.LocationClosed)
	if !ok {
		return payloadError(ev)
	}
	delete(s.Locations, p.LocationID)
	return nil
}

func reduceListingAdded(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.LocationListingAdded)
	if !ok {
		return payloadError(ev)
	}
	s.Listings[p.ListingID] = &domain.Listing{
		ListingID:   p.ListingID,
		Zone:        p.Zone,
		MonthlyRent: p.MonthlyRent,
		SetupCost:   p.SetupCost,
		Description: p.Description,
	}
	return nil
}

func reduceListingRemoved(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.LocationListingRemoved)
	if !ok {
		return payloadError(ev)
	}
	delete(s.Listings, p.ListingID)
	return nil
}
