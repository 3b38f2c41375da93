package projection

import (
	"fmt"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

// registerCore wires every event kind the simulation emits to its reducer.
func registerCore(r *Registry) {
	registerLifecycle(r)
	registerTime(r)
	registerFinance(r)
	registerEquipment(r)
	registerStaffing(r)
	registerVendors(r)
	registerSocial(r)
	registerRegulatory(r)
	registerCompetition(r)
}

// noop acknowledges events that are pure facts with no state projection
// (the regulator and game master read them straight from the journal).
func noop(_ *domain.AgentState, _ *event.Event) error { return nil }

func location(s *domain.AgentState, id string) (*domain.LocationState, error) {
	loc := s.Locations[id]
	if loc == nil {
		return nil, fmt.Errorf("location %s not in state", id)
	}
	return loc, nil
}

func machine(s *domain.AgentState, locID, machineID string) (*domain.MachineState, error) {
	loc, err := location(s, locID)
	if err != nil {
		return nil, err
	}
	m := loc.Equipment[machineID]
	if m == nil {
		return nil, fmt.Errorf("machine %s not at location %s", machineID, locID)
	}
	return m, nil
}

func vendor(s *domain.AgentState, locID, vendorID string) (*domain.VendorRelationship, error) {
	loc, err := location(s, locID)
	if err != nil {
		return nil, err
	}
	v := loc.Vendors[vendorID]
	if v == nil {
		return nil, fmt.Errorf("vendor %s not at location %s", vendorID, locID)
	}
	return v, nil
}

// defaultPricing is the menu every new location opens with.
func defaultPricing() map[string]float64 {
	return map[string]float64{
		domain.ServiceStandardWash: 3.50,
		domain.ServicePremiumWash:  5.00,
		domain.ServiceDry:          2.00,
		domain.ServiceVendingItems: 1.50,
	}
}

func newLocation(id, zone string, monthlyRent float64) *domain.LocationState {
	return &domain.LocationState{
		LocationID:         id,
		Zone:               zone,
		MonthlyRent:        monthlyRent,
		Cleanliness:        80,
		Equipment:          make(map[string]*domain.MachineState),
		InventoryDetergent: 1000,
		InventorySoftener:  500,
		Staff:              make(map[string]*domain.StaffMember),
		ActivePricing:      defaultPricing(),
		Vendors:            make(map[string]*domain.VendorRelationship),
	}
}
