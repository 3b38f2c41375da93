package projection

import (
	"fmt"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerStaffing(r *Registry) {
	r.Register(event.KindStaffHired, reduceStaffHired)
	r.Register(event.KindStaffFired, reduceStaffFired)
	r.Register(event.KindStaffQuit, reduceStaffQuit)
	r.Register(event.KindWageAdjusted, reduceWageAdjusted)
	r.Register(event.KindBenefitImplemented, reduceBenefitImplemented)
	r.Register(event.KindStaffMoraleChanged, reduceStaffMorale)
}

func staff(s *domain.AgentState, locID, staffID string) (*domain.StaffMember, error) {
	loc, err := location(s, locID)
	if err != nil {
		return nil, err
	}
	st := loc.Staff[staffID]
	if st == nil {
		return nil, fmt.Errorf("staff %s not at location %s", staffID, locID)
	}
	return st, nil
}

func reduceStaffHired(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.StaffHired)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.Staff[p.StaffID] = &domain.StaffMember{
		StaffID:    p.StaffID,
		Name:       p.StaffName,
		Role:       domain.StaffRole(p.Role),
		HourlyRate: p.HourlyRate,
		Morale:     70,
		HiredWeek:  ev.Week,
	}
	s.StaffSeq++
	return nil
}

func reduceStaffFired(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.StaffFired)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	delete(loc.Staff, p.StaffID)
	return nil
}

func reduceStaffQuit(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.StaffQuit)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	delete(loc.Staff, p.StaffID)
	return nil
}

func reduceWageAdjusted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.WageAdjusted)
	if !ok {
		return payloadError(ev)
	}
	st, err := staff(s, p.LocationID, p.StaffID)
	if err != nil {
		return err
	}
	st.HourlyRate = p.NewRate
	// Raises lift morale, cuts depress it.
	switch {
	case p.NewRate > p.OldRate:
		st.Morale = domain.Clamp(st.Morale+5, 0, 100)
	case p.NewRate < p.OldRate:
		st.Morale = domain.Clamp(st.Morale-10, 0, 100)
	}
	return nil
}

func reduceBenefitImplemented(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.BenefitImplemented)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	for _, st := range loc.Staff {
		st.Morale = domain.Clamp(st.Morale+p.MoraleBoost, 0, 100)
		st.Benefits = append(st.Benefits, p.BenefitType)
	}
	return nil
}

func reduceStaffMorale(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.StaffMoraleChanged)
	if !ok {
		return payloadError(ev)
	}
	st, err := staff(s, p.LocationID, p.StaffID)
	if err != nil {
		return err
	}
	st.Morale = domain.Clamp(p.NewMorale, 0, 100)
	return nil
}
