package projection

import (
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerEquipment(r *Registry) {
	r.Register(event.KindEquipmentPurchased, reduceEquipmentPurchased)
	r.Register(event.KindEquipmentSold, reduceEquipmentSold)
	r.Register(event.KindEquipmentRepaired, reduceEquipmentRepaired)
	r.Register(event.KindMachineWearUpdated, reduceMachineWear)
	r.Register(event.KindMachineStatusChanged, reduceMachineStatus)
	r.Register(event.KindSuppliesAcquired, reduceSuppliesAcquired)
	r.Register(event.KindStockoutStarted, noop)
	r.Register(event.KindStockoutEnded, noop)
}

func reduceEquipmentPurchased(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.EquipmentPurchased)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.Equipment[p.MachineID] = &domain.MachineState{
		MachineID:           p.MachineID,
		Kind:                domain.MachineKind(p.MachineKind),
		Condition:           100,
		Status:              domain.MachineOperational,
		LastMaintenanceWeek: ev.Week,
	}
	s.MachineSeq++
	return nil
}

func reduceEquipmentSold(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.EquipmentSold)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	delete(loc.Equipment, p.MachineID)
	return nil
}

func reduceEquipmentRepaired(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.EquipmentRepaired)
	if !ok {
		return payloadError(ev)
	}
	m, err := machine(s, p.LocationID, p.MachineID)
	if err != nil {
		return err
	}
	m.Condition = domain.Clamp(p.NewCondition, 0, 100)
	m.Status = domain.MachineOperational
	m.LastMaintenanceWeek = ev.Week
	m.LoadsSinceService = 0
	return nil
}

// reduceMachineWear applies the declared condition; status transitions ride
// on a separate MachineStatusChanged fact.
func reduceMachineWear(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.MachineWearUpdated)
	if !ok {
		return payloadError(ev)
	}
	m, err := machine(s, p.LocationID, p.MachineID)
	if err != nil {
		return err
	}
	m.Condition = domain.Clamp(p.NewCondition, 0, 100)
	m.LoadsSinceService += p.LoadsProcessed
	return nil
}

func reduceMachineStatus(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.MachineStatusChanged)
	if !ok {
		return payloadError(ev)
	}
	m, err := machine(s, p.LocationID, p.MachineID)
	if err != nil {
		return err
	}
	m.Status = domain.MachineStatus(p.NewStatus)
	return nil
}

func reduceSuppliesAcquired(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.SuppliesAcquired)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.InventoryDetergent += p.DetergentLoads
	loc.InventorySoftener += p.SoftenerLoads

	// First purchase from a vendor establishes the relationship.
	if _, known := loc.Vendors[p.VendorID]; !known {
		loc.Vendors[p.VendorID] = &domain.VendorRelationship{
			VendorID:  p.VendorID,
			Tier:      1,
			UnitPrice: 0.50,
		}
	}
	v := loc.Vendors[p.VendorID]
	v.PaymentHistory = append(v.PaymentHistory, domain.PaymentOnTime)
	if len(v.PaymentHistory) > 12 {
		v.PaymentHistory = v.PaymentHistory[len(v.PaymentHistory)-12:]
	}
	return nil
}
