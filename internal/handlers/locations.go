package handlers

import (
	"fmt"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func handleOpenLocation(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	listingID, err := cmd.String("listing_id")
	if err != nil {
		return nil, err
	}
	listing := s.Listings[listingID]
	if listing == nil {
		return nil, command.Reject(command.ErrInvalidState, "listing %s is not available", listingID)
	}
	if err := requireFunds(s, listing.SetupCost, "location setup"); err != nil {
		return nil, err
	}

	newID := nextLocationID(s)
	return []Emission{
		emit(&event.LocationOpened{
			LocationID:  newID,
			ListingID:   listingID,
			Zone:        listing.Zone,
			MonthlyRent: listing.MonthlyRent,
			SetupCost:   listing.SetupCost,
		}),
		emit(&event.FundsTransferred{
			Amount:          listing.SetupCost,
			TransactionType: event.TxnExpense,
			Description:     "Setup cost for " + newID + " (" + listing.Zone + ")",
		}),
	}, nil
}

func handleCloseLocation(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	if len(s.Locations) <= 1 {
		return nil, command.Reject(command.ErrInvalidState,
			"cannot close the last remaining location")
	}

	out := []Emission{emit(&event.LocationClosed{
		LocationID: loc.LocationID,
		Reason:     cmd.OptString("reason", "closed by operator"),
	})}

	// Staff at a closing location are let go with severance.
	var severance float64
	for _, st := range loc.Staff {
		severance += st.HourlyRate * 40 * severanceWeeks
	}
	if severance > 0 {
		if err := requireFunds(s, severance, "closure severance"); err != nil {
			return nil, err
		}
		out = append(out, emit(&event.FundsTransferred{
			Amount:          severance,
			TransactionType: event.TxnExpense,
			Description:     "Severance on closure of " + loc.LocationID,
		}))
	}
	return out, nil
}

// nextLocationID continues the LOC_001 numbering the starting location
// seeds. The counter never decreases, so closed locations keep their ids.
func nextLocationID(s *domain.AgentState) string {
	return fmt.Sprintf("LOC_%03d", s.LocationSeq+1)
}
