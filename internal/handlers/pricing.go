package handlers

import (
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

var validServices = map[string]bool{
	domain.ServiceStandardWash: true,
	domain.ServicePremiumWash:  true,
	domain.ServiceDry:          true,
	domain.ServiceVendingItems: true,
}

func handleSetPrice(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	service, err := cmd.String("service_type")
	if err != nil {
		return nil, err
	}
	if !validServices[service] {
		return nil, command.Reject(command.ErrInvalidState, "unknown service type %q", service)
	}
	price, err := cmd.Float("new_price")
	if err != nil {
		return nil, err
	}
	if price < 0.01 || price > 100 {
		return nil, command.Reject(command.ErrInvalidState,
			"price %.2f outside allowed range [0.01, 100.00]", price)
	}

	return []Emission{emit(&event.PriceSet{
		LocationID:  loc.LocationID,
		ServiceType: service,
		NewPrice:    price,
	})}, nil
}

// Campaign menu: type -> cost, attraction boost, duration.
type campaign struct {
	cost     float64
	boost    float64
	duration int
}

var campaigns = map[string]campaign{
	"FLYERS":          {cost: 200, boost: 0.10, duration: 2},
	"SOCIAL_MEDIA":    {cost: 500, boost: 0.20, duration: 4},
	"RADIO":           {cost: 1000, boost: 0.35, duration: 4},
	"GRAND_PROMOTION": {cost: 2000, boost: 0.50, duration: 6},
}

func handleInvestInMarketing(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	campaignType, err := cmd.String("campaign_type")
	if err != nil {
		return nil, err
	}
	c, ok := campaigns[campaignType]
	if !ok {
		return nil, command.Reject(command.ErrInvalidState, "unknown campaign type %q", campaignType)
	}
	if loc.Marketing != nil {
		return nil, command.Reject(command.ErrInvalidState,
			"location %s already has an active campaign", loc.LocationID)
	}
	if err := requireFunds(s, c.cost, "marketing campaign"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.MarketingBoostApplied{
			LocationID:              loc.LocationID,
			CampaignType:            campaignType,
			MarketingCost:           c.cost,
			CustomerAttractionBoost: c.boost,
			DurationWeeks:           c.duration,
		}),
		emit(&event.FundsTransferred{
			Amount:          c.cost,
			TransactionType: event.TxnExpense,
			Description:     "Marketing campaign: " + campaignType,
		}),
	}, nil
}

// Loyalty signup drive: a flat cost per registered member.
const loyaltySignupCost = 2.0

func handleSubscribeLoyalty(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loc, err := requireLocation(s, cmd)
	if err != nil {
		return nil, err
	}
	count, err := cmd.Int("count")
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, command.Reject(command.ErrInvalidState, "count must be at least 1")
	}
	cost := float64(count) * loyaltySignupCost
	if err := requireFunds(s, cost, "loyalty signup drive"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.LoyaltyMemberRegistered{
			LocationID: loc.LocationID,
			Count:      count,
			NewTotal:   s.LoyaltyMembers + count,
		}),
		emit(&event.FundsTransferred{
			Amount:          cost,
			TransactionType: event.TxnExpense,
			Description:     "Loyalty program signup drive",
		}),
	}, nil
}
