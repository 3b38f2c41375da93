package projection

import (
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerTime(r *Registry) {
	r.Register(event.KindTimeAdvanced, reduceTimeAdvanced)
	r.Register(event.KindDailyRevenueProcessed, reduceDailyRevenue)
	r.Register(event.KindWeeklyFixedCostsBilled, reduceWeeklyFixedCosts)
	r.Register(event.KindWeeklyWagesBilled, reduceWeeklyWages)
	r.Register(event.KindInterestAccrued, reduceInterestAccrued)
	r.Register(event.KindTaxLiabilityCalculated, reduceTaxLiability)
}

func reduceTimeAdvanced(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.TimeAdvanced)
	if !ok {
		return payloadError(ev)
	}
	s.Week = p.NewWeek
	s.Day = p.NewDay

	// Staff tenure and vendor standing age once per week rollover.
	if p.NewDay == 0 {
		for _, loc := range s.Locations {
			for _, st := range loc.Staff {
				st.TenureWeeks++
			}
			for _, v := range loc.Vendors {
				v.WeeksAtTier++
			}
			if loc.Marketing != nil {
				loc.Marketing.RemainingWeeks--
				if loc.Marketing.RemainingWeeks <= 0 {
					loc.Marketing = nil
				}
			}
		}
	}
	return nil
}

// reduceDailyRevenue updates the location accumulators and draws down
// supplies. Cash moves via the paired FundsTransferred(REVENUE).
func reduceDailyRevenue(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DailyRevenueProcessed)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}

	loc.WeekRevenue += p.GrossRevenue
	loc.WeekCOGS += p.SuppliesCost + p.UtilitiesCost

	loads := int(p.LoadsProcessed)
	loc.InventoryDetergent -= loads
	if loc.InventoryDetergent < 0 {
		loc.InventoryDetergent = 0
	}
	loc.InventorySoftener -= loads / 2
	if loc.InventorySoftener < 0 {
		loc.InventorySoftener = 0
	}

	s.MarketShareLoads += p.LoadsProcessed
	return nil
}

func reduceWeeklyFixedCosts(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.WeeklyFixedCostsBilled)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.WeekCOGS += p.TotalCost
	return nil
}

func reduceWeeklyWages(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.WeeklyWagesBilled)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.WeekCOGS += p.TotalWages
	return nil
}

func reduceInterestAccrued(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.InterestAccrued)
	if !ok {
		return payloadError(ev)
	}
	loan := s.FindLoan(p.LoanID)
	if loan == nil {
		return nil // loan retired between accrual and fold is impossible; tolerate
	}
	loan.Outstanding = p.NewOutstanding
	s.TotalDebt += p.InterestAmount
	return nil
}

// reduceTaxLiability books the monthly tax and resets the profit
// accumulators for the next period.
func reduceTaxLiability(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.TaxLiabilityCalculated)
	if !ok {
		return payloadError(ev)
	}
	s.TaxLiability += p.TaxAmount
	for _, loc := range s.Locations {
		loc.WeekRevenue = 0
		loc.WeekCOGS = 0
	}
	return nil
}
