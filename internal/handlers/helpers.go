package handlers

import (
	"fmt"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
)

// requireFunds enforces the spending rule: cash plus unused line-of-credit
// capacity must cover the amount. Cash exactly equal to the cost succeeds.
func requireFunds(s *domain.AgentState, amount float64, what string) error {
	if s.AvailableFunds() < amount {
		return command.Reject(command.ErrInsufficientFunds,
			"%s requires %.2f, available funds %.2f", what, amount, s.AvailableFunds())
	}
	return nil
}

// requireLocation resolves a location_id payload field.
func requireLocation(s *domain.AgentState, cmd *command.Command) (*domain.LocationState, error) {
	id, err := cmd.String("location_id")
	if err != nil {
		return nil, err
	}
	loc := s.Location(id)
	if loc == nil {
		return nil, command.Reject(command.ErrLocationNotFound, "location %s does not exist", id)
	}
	return loc, nil
}

// Entity ids derive from the monotonic sequence counters the reducers
// fold from the journal. Counters only ever grow, so an id is never
// reissued after the entity it named is sold, fired or retired.

func nextMachineID(s *domain.AgentState, offset int) string {
	return fmt.Sprintf("MCH_%03d", s.MachineSeq+offset+1)
}

func nextStaffID(s *domain.AgentState) string {
	return fmt.Sprintf("STF_W%d_%03d", s.Week, s.StaffSeq+1)
}

func nextLoanID(s *domain.AgentState) string {
	return fmt.Sprintf("LOAN_W%d_D%d_%03d", s.Week, s.Day, s.LoanSeq+1)
}

// correlationID ties the two halves of an inter-agent intent together.
// Derived from the participants and the simulation clock so replays agree.
func correlationID(kind, from, to string, week, day int) string {
	return fmt.Sprintf("%s:%s:%s:W%d:D%d", kind, from, to, week, day)
}
