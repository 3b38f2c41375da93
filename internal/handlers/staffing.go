package handlers

import (
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

var validRoles = map[string]bool{
	string(domain.RoleAttendant):  true,
	string(domain.RoleTechnician): true,
	string(domain.RoleManager):    true,
}

// Hiring below the statutory wage floor is accepted here; the regulator
// issues the finding. Rejecting would hide the violation from the record.
func handleHireStaff(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	name, err := cmd.String("staff_name")
	if err != nil {
		return nil, err
	}
	role, err := cmd.String("role")
	if err != nil {
		return nil, err
	}
	if !validRoles[role] {
		return nil, command.Reject(command.ErrInvalidState, "unknown staff role %q", role)
	}
	rate, err := cmd.Float("hourly_rate")
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "hourly rate must be positive")
	}

	return []Emission{emit(&event.StaffHired{
		LocationID: loc.LocationID,
		StaffID:    nextStaffID(s),
		StaffName:  name,
		Role:       role,
		HourlyRate: rate,
	})}, nil
}

// Severance is two weeks of wages at 40 hours.
const severanceWeeks = 2

func handleFireStaff(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	staffID, err := cmd.String("staff_id")
	if err != nil {
		return nil, err
	}
	st := loc.Staff[staffID]
	if st == nil {
		return nil, command.Reject(command.ErrStaffNotFound,
			"staff %s not at location %s", staffID, loc.LocationID)
	}

	severance := st.HourlyRate * 40 * severanceWeeks
	if err := requireFunds(s, severance, "severance"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.StaffFired{
			LocationID: loc.LocationID,
			StaffID:    staffID,
			Severance:  severance,
		}),
		emit(&event.FundsTransferred{
			Amount:          severance,
			TransactionType: event.TxnExpense,
			Description:     "Severance for " + st.Name,
		}),
	}, nil
}

func handleAdjustStaffWage(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	staffID, err := cmd.String("staff_id")
	if err != nil {
		return nil, err
	}
	st := loc.Staff[staffID]
	if st == nil {
		return nil, command.Reject(command.ErrStaffNotFound,
			"staff %s not at location %s", staffID, loc.LocationID)
	}
	newRate, err := cmd.Float("new_rate")
	if err != nil {
		return nil, err
	}
	if newRate <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "hourly rate must be positive")
	}

	return []Emission{emit(&event.WageAdjusted{
		LocationID: loc.LocationID,
		StaffID:    staffID,
		OldRate:    st.HourlyRate,
		NewRate:    newRate,
	})}, nil
}

var benefitMenu = map[string]struct {
	weeklyCost  float64
	moraleBoost float64
}{
	"HEALTH_INSURANCE": {weeklyCost: 120, moraleBoost: 15},
	"PAID_LEAVE":       {weeklyCost: 60, moraleBoost: 10},
	"FREE_LAUNDRY":     {weeklyCost: 20, moraleBoost: 5},
}

func handleProvideBenefits(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	benefitType, err := cmd.String("benefit_type")
	if err != nil {
		return nil, err
	}
	b, ok := benefitMenu[benefitType]
	if !ok {
		return nil, command.Reject(command.ErrInvalidState, "unknown benefit type %q", benefitType)
	}
	if len(loc.Staff) == 0 {
		return nil, command.Reject(command.ErrInvalidState,
			"location %s has no staff to benefit", loc.LocationID)
	}
	if err := requireFunds(s, b.weeklyCost, "benefit rollout"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.BenefitImplemented{
			LocationID:  loc.LocationID,
			BenefitType: benefitType,
			WeeklyCost:  b.weeklyCost,
			MoraleBoost: b.moraleBoost,
		}),
		emit(&event.FundsTransferred{
			Amount:          b.weeklyCost,
			TransactionType: event.TxnExpense,
			Description:     "Benefit rollout: " + benefitType,
		}),
	}, nil
}
