package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
	"github.com/laundrosim/backend/internal/projection"
)

func seedState(t *testing.T, r *projection.Registry) *domain.AgentState {
	t.Helper()
	ev := event.New("a1", 0, 0, &event.AgentCreated{
		AgentName:      "Suds",
		StartingCash:   10000,
		LocationID:     "LOC_001",
		Zone:           "DOWNTOWN",
		MonthlyRent:    1200,
		FirstMachineID: "MCH_001",
	})
	ev.EventID = "evt-seed"
	ev.Timestamp = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	s, err := r.Fold("a1", []*event.Event{ev})
	require.NoError(t, err)
	return s
}

func kinds(evs []*event.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.EventKind
	}
	return out
}

func TestAdvanceOneDayShape(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		event.KindTimeAdvanced,
		event.KindDailyRevenueProcessed,
		event.KindFundsTransferred,
		event.KindMachineWearUpdated,
	}, kinds(evs))

	ta := evs[0].Payload.(*event.TimeAdvanced)
	assert.Equal(t, 0, ta.NewWeek)
	assert.Equal(t, 1, ta.NewDay)

	// One operational washer at cleanliness 80, no modifiers:
	// 1 * 8 * (0.5 + 80/200) = 7.2 loads.
	rev := evs[1].Payload.(*event.DailyRevenueProcessed)
	assert.InDelta(t, 7.2, rev.LoadsProcessed, 1e-9)
	assert.InDelta(t, 7.2*0.60, rev.LoadsByService[domain.ServiceStandardWash], 1e-9)
	assert.InDelta(t, 7.2*0.50, rev.SuppliesCost, 1e-9)
	assert.InDelta(t, 7.2*0.25, rev.UtilitiesCost, 1e-9)
	assert.InDelta(t, rev.GrossRevenue-rev.SuppliesCost-rev.UtilitiesCost, rev.NetRevenue, 1e-9)

	transfer := evs[2].Payload.(*event.FundsTransferred)
	assert.Equal(t, event.TxnRevenue, transfer.TransactionType)
	assert.InDelta(t, rev.NetRevenue, transfer.Amount, 1e-9)

	// Washer wear at 7.2 loads on one machine: 1.0 * (0.6 + 7.2*0.05) = 0.96.
	wear := evs[3].Payload.(*event.MachineWearUpdated)
	assert.InDelta(t, 99.04, wear.NewCondition, 1e-9)
}

func TestWearScalesWithProcessedLoads(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)

	// A stocked-out day halves demand to 3.6 loads, so the washer wears
	// 1.0 * (0.6 + 3.6*0.05) = 0.78 instead of the full-traffic 0.96.
	s.Locations["LOC_001"].InventoryDetergent = 0
	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	var wear *event.MachineWearUpdated
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.MachineWearUpdated); ok {
			wear = p
		}
	}
	require.NotNil(t, wear)
	assert.InDelta(t, 99.22, wear.NewCondition, 1e-9)
}

func TestAdvanceIsDeterministic(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)

	a, err := tk.Advance(s, 14)
	require.NoError(t, err)
	b, err := tk.Advance(s, 14)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].EventKind, b[i].EventKind, "event %d", i)
		assert.Equal(t, a[i].Payload, b[i].Payload, "event %d", i)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)

	before := s.Locations["LOC_001"].Equipment["MCH_001"].Condition
	_, err := tk.Advance(s, 7)
	require.NoError(t, err)
	assert.Equal(t, before, s.Locations["LOC_001"].Equipment["MCH_001"].Condition)
	assert.Equal(t, 0, s.Week)
}

func TestWeekRolloverBillsFixedCosts(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Day = 6

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	ta := evs[0].Payload.(*event.TimeAdvanced)
	assert.Equal(t, 1, ta.NewWeek)
	assert.Equal(t, 0, ta.NewDay)

	var fixed *event.WeeklyFixedCostsBilled
	var expense *event.FundsTransferred
	sawWages := false
	for _, ev := range evs {
		switch p := ev.Payload.(type) {
		case *event.WeeklyFixedCostsBilled:
			fixed = p
		case *event.WeeklyWagesBilled:
			sawWages = true
		case *event.FundsTransferred:
			if p.TransactionType == event.TxnExpense {
				expense = p
			}
		}
	}

	require.NotNil(t, fixed)
	assert.Equal(t, 300.0, fixed.RentPortion) // 1200 / 4
	assert.Equal(t, 500.0, fixed.TotalCost)   // rent + insurance 150 + other 50
	require.NotNil(t, expense)
	assert.Equal(t, 500.0, expense.Amount)
	assert.False(t, sawWages, "no staff, no wages event")
}

func TestWagesBilledOnlyWithStaff(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Day = 6
	s.Locations["LOC_001"].Staff["STF_W0_001"] = &domain.StaffMember{
		StaffID: "STF_W0_001", Name: "Dana", HourlyRate: 15,
	}

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	var wages *event.WeeklyWagesBilled
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.WeeklyWagesBilled); ok {
			wages = p
		}
	}
	require.NotNil(t, wages)
	assert.Equal(t, 600.0, wages.TotalWages) // 15 * 40
	assert.Equal(t, 1, wages.StaffCount)
}

func TestMonthlyInterestAndTax(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Week, s.Day = 3, 6 // rolls into week 4, a month boundary
	s.Loans = []*domain.Loan{{
		LoanID: "LOAN_W0_D0_001", Kind: domain.LoanEquipment,
		Principal: 1300, Outstanding: 1300, AnnualRate: 0.06,
	}}
	s.Locations["LOC_001"].WeekRevenue = 2000
	s.Locations["LOC_001"].WeekCOGS = 1500

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	var interest *event.InterestAccrued
	var tax *event.TaxLiabilityCalculated
	for _, ev := range evs {
		switch p := ev.Payload.(type) {
		case *event.InterestAccrued:
			interest = p
		case *event.TaxLiabilityCalculated:
			tax = p
		}
	}

	require.NotNil(t, interest)
	assert.InDelta(t, 1300*0.06/13, interest.InterestAmount, 1e-9)

	require.NotNil(t, tax)
	// The rollover day adds its own revenue before the monthly close, so
	// taxable profit is at least the accumulated 500.
	assert.GreaterOrEqual(t, tax.TaxableProfit, 500.0)
	assert.InDelta(t, tax.TaxableProfit*0.21, tax.TaxAmount, 1e-9)
}

func TestDemoralizedStaffQuitAtWeekEnd(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Day = 6
	s.Locations["LOC_001"].Staff["STF_W0_001"] = &domain.StaffMember{
		StaffID: "STF_W0_001", Name: "Dana", HourlyRate: 15, Morale: 10,
	}
	s.Locations["LOC_001"].Staff["STF_W0_002"] = &domain.StaffMember{
		StaffID: "STF_W0_002", Name: "Lee", HourlyRate: 15, Morale: 70,
	}

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	var quits []*event.StaffQuit
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.StaffQuit); ok {
			quits = append(quits, p)
		}
	}
	require.Len(t, quits, 1, "only the demoralized hire walks")
	assert.Equal(t, "STF_W0_001", quits[0].StaffID)
}

func TestMonthlyCloseRecordsAuditSnapshot(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Week, s.Day = 3, 6

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	var snap *event.AuditSnapshotRecorded
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.AuditSnapshotRecorded); ok {
			snap = p
		}
	}
	require.NotNil(t, snap)
	assert.Contains(t, snap.SnapshotLabel, "week 4")
}

func TestExpiredTermLoanDefaultsOnce(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Week, s.Day = 3, 6
	s.Loans = []*domain.Loan{{
		LoanID: "LOAN_W0_D0_001", Kind: domain.LoanEquipment,
		Principal: 1300, Outstanding: 1300, AnnualRate: 0.06,
		TakenWeek: 0, TermWeeks: 2,
	}}

	// Two month boundaries: weeks 4 and 8.
	evs, err := tk.Advance(s, 29)
	require.NoError(t, err)

	var defaults []*event.DefaultRecorded
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.DefaultRecorded); ok {
			defaults = append(defaults, p)
		}
	}
	require.Len(t, defaults, 1, "the default flag stops repeated downgrades")
	assert.Equal(t, "LOAN_W0_D0_001", defaults[0].LoanID)
	assert.Equal(t, -15, defaults[0].CreditRatingDelta)
}

func TestNoTaxEventOnLoss(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Week, s.Day = 3, 6
	s.Locations["LOC_001"].WeekRevenue = 100
	s.Locations["LOC_001"].WeekCOGS = 5000

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)
	for _, ev := range evs {
		_, isTax := ev.Payload.(*event.TaxLiabilityCalculated)
		assert.False(t, isTax, "losses carry forward, no tax event")
	}
}

func TestStockoutHalvesDemandAndEmitsMarker(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)

	// Crossing into stockout: inventory smaller than the day's loads.
	s.Locations["LOC_001"].InventoryDetergent = 3
	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	sawStockout := false
	for _, ev := range evs {
		if _, ok := ev.Payload.(*event.StockoutStarted); ok {
			sawStockout = true
		}
	}
	assert.True(t, sawStockout)

	// Already stocked out: demand halves.
	s.Locations["LOC_001"].InventoryDetergent = 0
	evs, err = tk.Advance(s, 1)
	require.NoError(t, err)
	rev := evs[1].Payload.(*event.DailyRevenueProcessed)
	assert.InDelta(t, 3.6, rev.LoadsProcessed, 1e-9)
}

func TestBrokenMachinesProduceNothing(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Locations["LOC_001"].Equipment["MCH_001"].Status = domain.MachineBroken

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)
	rev := evs[1].Payload.(*event.DailyRevenueProcessed)
	assert.Zero(t, rev.LoadsProcessed)
	for _, ev := range evs {
		_, isWear := ev.Payload.(*event.MachineWearUpdated)
		assert.False(t, isWear, "broken machines do not wear")
	}
}

func TestWearCrossingThresholdBreaksMachine(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.Locations["LOC_001"].Equipment["MCH_001"].Condition = 10.5

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)

	var status *event.MachineStatusChanged
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.MachineStatusChanged); ok {
			status = p
		}
	}
	require.NotNil(t, status)
	assert.Equal(t, string(domain.MachineBroken), status.NewStatus)
}

func TestCompetitivenessClamps(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)

	// Gouging: own price far above reference clamps demand at 0.6x.
	s.Locations["LOC_001"].ActivePricing[domain.ServiceStandardWash] = 50
	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)
	rev := evs[1].Payload.(*event.DailyRevenueProcessed)
	assert.InDelta(t, 7.2*0.6, rev.LoadsProcessed, 1e-9)

	// Undercutting clamps at 1.4x.
	s.Locations["LOC_001"].ActivePricing[domain.ServiceStandardWash] = 0.10
	evs, err = tk.Advance(s, 1)
	require.NoError(t, err)
	rev = evs[1].Payload.(*event.DailyRevenueProcessed)
	assert.InDelta(t, 7.2*1.4, rev.LoadsProcessed, 1e-9)
}

func TestScandalSuppressesDemand(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	s := seedState(t, r)
	s.ActiveScandals = []*domain.ScandalMarker{
		{ScandalID: "SC1", Severity: 1.0},
		{ScandalID: "SC2", Severity: 1.0},
	}

	evs, err := tk.Advance(s, 1)
	require.NoError(t, err)
	rev := evs[1].Payload.(*event.DailyRevenueProcessed)
	assert.Zero(t, rev.LoadsProcessed, "severity sum >= 2 floors demand at zero")
}

func TestAdvanceRejectsNonPositiveDays(t *testing.T) {
	r := projection.NewRegistry()
	tk := New(config.Default().Economy, r)
	_, err := tk.Advance(seedState(t, r), 0)
	assert.Error(t, err)
}
