// Package ticker advances simulation time. Advance is a pure function of
// (state, days): it derives every daily, weekly and monthly event from the
// state alone, with no randomness and no I/O, so replays always agree.
package ticker

import (
	"fmt"
	"sort"

	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
	"github.com/laundrosim/backend/internal/projection"
)

// Service split of daily loads.
const (
	shareStandard = 0.60
	sharePremium  = 0.15
	shareDry      = 0.20
	shareVending  = 0.05
)

// Wear factors by machine kind.
var wearFactors = map[domain.MachineKind]float64{
	domain.MachineWasher:  1.0,
	domain.MachineDryer:   0.7,
	domain.MachineVending: 0.3,
}

// brokenThreshold is the condition at or below which a machine breaks.
const brokenThreshold = 10.0

// quitThreshold is the morale below which staff walk out at week's end.
const quitThreshold = 20.0

// defaultRatingPenalty is the credit-rating hit for a missed loan term.
const defaultRatingPenalty = -15

// weeksPerMonth: interest and tax run every 4 weeks, 13 periods a year.
const (
	weeksPerMonth  = 4
	monthsPerYear  = 13
)

// Ticker computes autonomous time-advance events. It folds its own
// emissions through the reducer registry so each simulated day sees the
// effects of the previous one.
type Ticker struct {
	econ     config.EconomyConfig
	registry *projection.Registry
}

func New(econ config.EconomyConfig, registry *projection.Registry) *Ticker {
	return &Ticker{econ: econ, registry: registry}
}

// Advance produces the events for the given number of days starting from
// state. The input state is not mutated. Events carry the simulation clock
// of the day they describe; event ids and timestamps are stamped later by
// the engine.
func (t *Ticker) Advance(s *domain.AgentState, days int) ([]*event.Event, error) {
	if days < 1 {
		return nil, fmt.Errorf("ticker: days must be at least 1, got %d", days)
	}

	cur := s.Clone()
	var out []*event.Event

	for i := 0; i < days; i++ {
		dayEvents := t.tickDay(cur)
		out = append(out, dayEvents...)

		for _, ev := range dayEvents {
			next, err := t.registry.Apply(cur, ev)
			if err != nil {
				return nil, fmt.Errorf("ticker: folding own emission: %w", err)
			}
			cur = next
		}
	}
	return out, nil
}

// tickDay derives one day of events from the current state.
func (t *Ticker) tickDay(s *domain.AgentState) []*event.Event {
	week, day := s.Week, s.Day+1
	if day >= 7 {
		week, day = week+1, 0
	}

	mk := func(p event.Payload) *event.Event {
		return event.New(s.AgentID, week, day, p)
	}

	out := []*event.Event{mk(&event.TimeAdvanced{NewWeek: week, NewDay: day})}

	for _, locID := range sortedLocationIDs(s) {
		loc := s.Locations[locID]
		loads := t.dailyLoads(s, loc)
		out = append(out, t.dailyRevenue(loc, loads, mk)...)
		out = append(out, t.dailyWear(loc, loads, mk)...)
	}

	if day == 0 {
		out = append(out, t.weekly(s, mk)...)
		if week > 0 && week%weeksPerMonth == 0 {
			out = append(out, t.monthly(s, week, mk)...)
		}
	}
	return out
}

// dailyLoads computes customer demand at a location from machine capacity,
// cleanliness, marketing, loyalty, scandals and price competitiveness.
func (t *Ticker) dailyLoads(s *domain.AgentState, loc *domain.LocationState) float64 {
	operational := 0
	for _, m := range loc.Equipment {
		if m.Status == domain.MachineOperational {
			operational++
		}
	}
	if operational == 0 {
		return 0
	}

	marketing := 0.0
	if loc.Marketing != nil {
		marketing = loc.Marketing.Boost
	}
	base := float64(operational) * 8 * (0.5 + loc.Cleanliness/200) * (1 + marketing)

	members := s.LoyaltyMembers
	if members > 500 {
		members = 500
	}
	loyalty := 1 + float64(members)/1000

	scandal := 1 - 0.5*s.TotalScandalSeverity()
	if scandal < 0 {
		scandal = 0
	}

	ref := t.econ.ReferencePrice
	if avg := competitorAverage(loc); avg > 0 {
		ref = avg
	}
	own := loc.ActivePricing[domain.ServiceStandardWash]
	competitiveness := 1.0
	if own > 0 {
		competitiveness = domain.Clamp(ref/own, 0.6, 1.4)
	}

	loads := base * loyalty * scandal * competitiveness

	// A detergent stockout turns away half the customers.
	if loc.InventoryDetergent <= 0 {
		loads *= 0.5
	}
	return loads
}

func competitorAverage(loc *domain.LocationState) float64 {
	if len(loc.CompetitorPrices) == 0 {
		return 0
	}
	var sum float64
	for _, p := range loc.CompetitorPrices {
		sum += p
	}
	return sum / float64(len(loc.CompetitorPrices))
}

func (t *Ticker) dailyRevenue(loc *domain.LocationState, loads float64, mk func(event.Payload) *event.Event) []*event.Event {
	byService := map[string]float64{
		domain.ServiceStandardWash: loads * shareStandard,
		domain.ServicePremiumWash:  loads * sharePremium,
		domain.ServiceDry:          loads * shareDry,
		domain.ServiceVendingItems: loads * shareVending,
	}

	var gross float64
	for service, serviceLoads := range byService {
		gross += serviceLoads * loc.ActivePricing[service]
	}
	supplies := loads * t.econ.SuppliesCostLoad
	utilities := loads * t.econ.UtilitiesCostLoad
	net := gross - supplies - utilities

	out := []*event.Event{
		mk(&event.DailyRevenueProcessed{
			LocationID:     loc.LocationID,
			LoadsProcessed: loads,
			LoadsByService: byService,
			GrossRevenue:   gross,
			SuppliesCost:   supplies,
			UtilitiesCost:  utilities,
			NetRevenue:     net,
		}),
		mk(&event.FundsTransferred{
			Amount:          net,
			TransactionType: event.TxnRevenue,
			Description:     "Daily revenue, " + loc.LocationID,
		}),
	}

	// Crossing into stockout is worth recording once.
	if loc.InventoryDetergent > 0 && loc.InventoryDetergent-int(loads) <= 0 {
		out = append(out, mk(&event.StockoutStarted{
			LocationID: loc.LocationID,
			SupplyType: "DETERGENT",
		}))
	}
	return out
}

func (t *Ticker) dailyWear(loc *domain.LocationState, loads float64, mk func(event.Payload) *event.Event) []*event.Event {
	var machineIDs []string
	operational := 0
	for id, m := range loc.Equipment {
		if m.Status == domain.MachineOperational {
			machineIDs = append(machineIDs, id)
			operational++
		}
	}
	sort.Strings(machineIDs)
	if operational == 0 {
		return nil
	}

	// The day's loads spread evenly across operational machines; wear has
	// a flat idle component plus a per-load component scaled by kind.
	loadsPerMachine := loads / float64(operational)

	var out []*event.Event
	for _, id := range machineIDs {
		m := loc.Equipment[id]
		wear := wearFactors[m.Kind] * (0.6 + loadsPerMachine*0.05)
		newCondition := m.Condition - wear
		if newCondition < 0 {
			newCondition = 0
		}
		out = append(out, mk(&event.MachineWearUpdated{
			LocationID:     loc.LocationID,
			MachineID:      id,
			NewCondition:   newCondition,
			LoadsProcessed: int(loadsPerMachine),
		}))
		if m.Condition > brokenThreshold && newCondition <= brokenThreshold {
			out = append(out, mk(&event.MachineStatusChanged{
				LocationID: loc.LocationID,
				MachineID:  id,
				NewStatus:  string(domain.MachineBroken),
				Reason:     "condition fell below service threshold",
			}))
		}
	}
	return out
}

func (t *Ticker) weekly(s *domain.AgentState, mk func(event.Payload) *event.Event) []*event.Event {
	var out []*event.Event
	var totalExpense float64

	for _, locID := range sortedLocationIDs(s) {
		loc := s.Locations[locID]

		rent := loc.MonthlyRent / 4
		fixed := rent + t.econ.InsuranceWeekly + t.econ.OtherCostsWeekly
		out = append(out, mk(&event.WeeklyFixedCostsBilled{
			LocationID:    locID,
			RentPortion:   rent,
			InsuranceCost: t.econ.InsuranceWeekly,
			OtherCosts:    t.econ.OtherCostsWeekly,
			TotalCost:     fixed,
		}))
		totalExpense += fixed

		if len(loc.Staff) > 0 {
			var wages float64
			for _, st := range loc.Staff {
				wages += st.HourlyRate * 40
			}
			out = append(out, mk(&event.WeeklyWagesBilled{
				LocationID: locID,
				StaffCount: len(loc.Staff),
				TotalWages: wages,
			}))
			totalExpense += wages
		}

		// Demoralized staff walk out at the end of the week.
		for _, staffID := range sortedStaffIDs(loc) {
			if loc.Staff[staffID].Morale < quitThreshold {
				out = append(out, mk(&event.StaffQuit{
					LocationID: locID,
					StaffID:    staffID,
					Reason:     "morale collapsed",
				}))
			}
		}
	}

	out = append(out, mk(&event.FundsTransferred{
		Amount:          totalExpense,
		TransactionType: event.TxnExpense,
		Description:     "Weekly fixed costs and wages",
	}))

	for _, sc := range s.ActiveScandals {
		newSeverity := sc.Severity - sc.DecayRate
		out = append(out, mk(&event.ScandalMarkerDecayed{
			ScandalID:   sc.ScandalID,
			NewSeverity: newSeverity,
			Expired:     newSeverity <= 0,
		}))
	}
	return out
}

func (t *Ticker) monthly(s *domain.AgentState, week int, mk func(event.Payload) *event.Event) []*event.Event {
	var out []*event.Event

	for _, loan := range s.Loans {
		interest := loan.Outstanding * loan.AnnualRate / monthsPerYear
		out = append(out, mk(&event.InterestAccrued{
			LoanID:         loan.LoanID,
			InterestAmount: interest,
			NewOutstanding: loan.Outstanding + interest,
		}))

		// A term loan past maturity with a balance outstanding defaults
		// once; the flag on the loan stops repeated downgrades.
		if loan.TermWeeks > 0 && !loan.Defaulted &&
			week >= loan.TakenWeek+loan.TermWeeks && loan.Outstanding > 0 {
			out = append(out, mk(&event.DefaultRecorded{
				LoanID:            loan.LoanID,
				CreditRatingDelta: defaultRatingPenalty,
				Reason:            "term expired with balance outstanding",
			}))
		}
	}

	var profit float64
	for _, loc := range s.Locations {
		profit += loc.WeekRevenue - loc.WeekCOGS
	}
	if profit > 0 {
		out = append(out, mk(&event.TaxLiabilityCalculated{
			TaxableProfit: profit,
			TaxRate:       t.econ.TaxRate,
			TaxAmount:     profit * t.econ.TaxRate,
		}))
	}

	out = append(out, mk(&event.AuditSnapshotRecorded{
		SnapshotLabel: fmt.Sprintf("Monthly close, week %d", week),
		CashOnRecord:  s.Cash,
		EventCount:    s.AuditEntriesCount + 1,
	}))
	return out
}

func sortedStaffIDs(loc *domain.LocationState) []string {
	ids := make([]string, 0, len(loc.Staff))
	for id := range loc.Staff {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedLocationIDs(s *domain.AgentState) []string {
	ids := make([]string, 0, len(s.Locations))
	for id := range s.Locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
