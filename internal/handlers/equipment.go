package handlers

import (
	"fmt"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func handleBuyEquipment(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	machineKind, err := cmd.String("machine_kind")
	if err != nil {
		return nil, err
	}
	unitCost, ok := deps.Econ.EquipmentPrices[machineKind]
	if !ok {
		return nil, command.Reject(command.ErrInvalidState, "unknown machine kind %q", machineKind)
	}
	quantity := cmd.OptInt("quantity", 1)
	if quantity < 1 {
		return nil, command.Reject(command.ErrInvalidState, "quantity must be at least 1")
	}

	total := unitCost * float64(quantity)
	if err := requireFunds(s, total, "equipment purchase"); err != nil {
		return nil, err
	}

	// One purchase event per unit, each carrying its own fresh machine id.
	out := make([]Emission, 0, quantity+1)
	for i := 0; i < quantity; i++ {
		out = append(out, emit(&event.EquipmentPurchased{
			LocationID:  loc.LocationID,
			MachineID:   nextMachineID(s, i),
			MachineKind: machineKind,
			UnitCost:    unitCost,
		}))
	}
	return append(out, emit(&event.FundsTransferred{
		Amount:          total,
		TransactionType: event.TxnExpense,
		Description:     fmt.Sprintf("Purchased %d x %s", quantity, machineKind),
	})), nil
}

// Emergency repair puts a machine back in service at the price quoted by
// the field technician. Unlike scheduled maintenance it is cash-only and
// restores no condition.
func handleFixMachine(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	machineID, err := cmd.String("machine_id")
	if err != nil {
		return nil, err
	}
	m := loc.Equipment[machineID]
	if m == nil {
		return nil, command.Reject(command.ErrMachineNotFound,
			"machine %s not at location %s", machineID, loc.LocationID)
	}
	cost, err := cmd.Float("maintenance_cost")
	if err != nil {
		return nil, err
	}
	if cost <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "repair cost must be positive")
	}
	if cost > s.Cash {
		return nil, command.Reject(command.ErrInsufficientFunds,
			"emergency repair %.2f exceeds cash %.2f", cost, s.Cash)
	}

	return []Emission{
		emit(&event.MachineStatusChanged{
			LocationID: loc.LocationID,
			MachineID:  machineID,
			NewStatus:  string(domain.MachineOperational),
			Reason:     "Emergency repair completed",
		}),
		emit(&event.FundsTransferred{
			Amount:          cost,
			TransactionType: event.TxnExpense,
			Description:     fmt.Sprintf("Emergency repair: %s at %s", machineID, loc.LocationID),
		}),
	}, nil
}

// Resale recovers half of list price, scaled by remaining condition.
func handleSellEquipment(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	machineID, err := cmd.String("machine_id")
	if err != nil {
		return nil, err
	}
	m := loc.Equipment[machineID]
	if m == nil {
		return nil, command.Reject(command.ErrMachineNotFound,
			"machine %s not at location %s", machineID, loc.LocationID)
	}

	listPrice := deps.Econ.EquipmentPrices[string(m.Kind)]
	salePrice := listPrice * 0.5 * (m.Condition / 100)

	return []Emission{
		emit(&event.EquipmentSold{
			LocationID:  loc.LocationID,
			MachineID:   machineID,
			MachineKind: string(m.Kind),
			SalePrice:   salePrice,
		}),
		emit(&event.FundsTransferred{
			Amount:          salePrice,
			TransactionType: event.TxnRefund,
			Description:     "Sold " + machineID,
		}),
	}, nil
}

func handlePerformMaintenance(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	machineID, err := cmd.String("machine_id")
	if err != nil {
		return nil, err
	}
	m := loc.Equipment[machineID]
	if m == nil {
		return nil, command.Reject(command.ErrMachineNotFound,
			"machine %s not at location %s", machineID, loc.LocationID)
	}
	if m.Status == domain.MachineInRepair {
		return nil, command.Reject(command.ErrInvalidState,
			"machine %s is already in repair", machineID)
	}

	maintenanceType, err := cmd.String("maintenance_type")
	if err != nil {
		return nil, err
	}

	var cost, newCondition float64
	switch maintenanceType {
	case "ROUTINE":
		cost = deps.Econ.MaintenanceRoutineCost
		newCondition = domain.Clamp(m.Condition+deps.Econ.MaintenanceRoutineGain, 0, 100)
	case "DEEP":
		cost = deps.Econ.MaintenanceDeepCost
		newCondition = domain.Clamp(m.Condition+deps.Econ.MaintenanceDeepGain, 0, 100)
	case "OVERHAUL":
		cost = deps.Econ.MaintenanceOverhaulCost
		newCondition = 100
	default:
		return nil, command.Reject(command.ErrInvalidState,
			"unknown maintenance type %q", maintenanceType)
	}
	if err := requireFunds(s, cost, "maintenance"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.EquipmentRepaired{
			LocationID:      loc.LocationID,
			MachineID:       machineID,
			MaintenanceType: maintenanceType,
			Cost:            cost,
			NewCondition:    newCondition,
		}),
		emit(&event.FundsTransferred{
			Amount:          cost,
			TransactionType: event.TxnExpense,
			Description:     maintenanceType + " maintenance on " + machineID,
		}),
	}, nil
}

func handleBuySupplies(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	vendorID, err := cmd.String("vendor_id")
	if err != nil {
		return nil, err
	}
	detergent := cmd.OptInt("detergent_loads", 0)
	softener := cmd.OptInt("softener_loads", 0)
	if detergent < 0 || softener < 0 {
		return nil, command.Reject(command.ErrInvalidState, "supply quantities must be non-negative")
	}
	if detergent+softener == 0 {
		return nil, command.Reject(command.ErrInvalidState, "order is empty")
	}

	// An unknown vendor sells at list; the relationship is established by
	// the purchase itself.
	unitPrice := 0.50
	if v := loc.Vendors[vendorID]; v != nil {
		if v.Disrupted {
			return nil, command.Reject(command.ErrVendorNotFound,
				"vendor %s deliveries are disrupted", vendorID)
		}
		unitPrice = v.UnitPrice
	}

	total := unitPrice * float64(detergent+softener)
	if err := requireFunds(s, total, "supply order"); err != nil {
		return nil, err
	}

	out := []Emission{
		emit(&event.SuppliesAcquired{
			LocationID:     loc.LocationID,
			VendorID:       vendorID,
			DetergentLoads: detergent,
			SoftenerLoads:  softener,
			TotalCost:      total,
		}),
		emit(&event.FundsTransferred{
			Amount:          total,
			TransactionType: event.TxnExpense,
			Description:     "Supply order from " + vendorID,
		}),
	}

	// Restocking an empty shelf closes the stockout opened by the ticker.
	if loc.InventoryDetergent <= 0 && detergent > 0 {
		out = append(out, emit(&event.StockoutEnded{
			LocationID: loc.LocationID,
			SupplyType: "DETERGENT",
		}))
	}
	return out, nil
}
