package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func ev(agentID string, week, day int, p event.Payload) *event.Event {
	e := event.New(agentID, week, day, p)
	e.EventID = "evt-" + p.Kind()
	e.Timestamp = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	return e
}

func created(agentID string) *event.Event {
	return ev(agentID, 0, 0, &event.AgentCreated{
		AgentName:      "Test Laundromat",
		StartingCash:   10000,
		LocationID:     "LOC_001",
		Zone:           "DOWNTOWN",
		MonthlyRent:    1200,
		FirstMachineID: "MCH_001",
	})
}

func TestAgentCreatedSeedsState(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{created("a1")})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, s.Cash)
	assert.Equal(t, 50.0, s.SocialScore)
	assert.Equal(t, domain.RegNormal, s.RegulatoryStatus)

	loc := s.Locations["LOC_001"]
	require.NotNil(t, loc)
	assert.Equal(t, "DOWNTOWN", loc.Zone)
	assert.Equal(t, 1200.0, loc.MonthlyRent)
	assert.Equal(t, 80.0, loc.Cleanliness)
	assert.Equal(t, 3.50, loc.ActivePricing[domain.ServiceStandardWash])

	m := loc.Equipment["MCH_001"]
	require.NotNil(t, m)
	assert.Equal(t, domain.MachineWasher, m.Kind)
	assert.Equal(t, 100.0, m.Condition)
	assert.Equal(t, domain.MachineOperational, m.Status)
}

func TestFundsTransferredSignConvention(t *testing.T) {
	r := NewRegistry()
	base, err := r.Fold("a1", []*event.Event{created("a1")})
	require.NoError(t, err)

	cases := []struct {
		txn  string
		want float64
	}{
		{event.TxnRevenue, 10100},
		{event.TxnLoan, 10100},
		{event.TxnRefund, 10100},
		{event.TxnExpense, 9900},
		{event.TxnPayment, 9900},
		{event.TxnFine, 9900},
		{event.TxnPenalty, 9900},
	}
	for _, tc := range cases {
		next, err := r.Apply(base, ev("a1", 0, 0, &event.FundsTransferred{
			Amount: 100, TransactionType: tc.txn, Description: "test",
		}))
		require.NoError(t, err, tc.txn)
		assert.Equal(t, tc.want, next.Cash, tc.txn)
	}

	_, err = r.Apply(base, ev("a1", 0, 0, &event.FundsTransferred{
		Amount: 100, TransactionType: "BARTER",
	}))
	require.Error(t, err)
}

func TestApplyNeverMutatesInput(t *testing.T) {
	r := NewRegistry()
	base, err := r.Fold("a1", []*event.Event{created("a1")})
	require.NoError(t, err)

	next, err := r.Apply(base, ev("a1", 0, 0, &event.PriceSet{
		LocationID:  "LOC_001",
		ServiceType: domain.ServiceStandardWash,
		NewPrice:    4.50,
	}))
	require.NoError(t, err)

	assert.Equal(t, 3.50, base.Locations["LOC_001"].ActivePricing[domain.ServiceStandardWash])
	assert.Equal(t, 4.50, next.Locations["LOC_001"].ActivePricing[domain.ServiceStandardWash])
}

func TestMissingReducerIsFatal(t *testing.T) {
	r := &Registry{reducers: map[string]Reducer{}}
	_, err := r.Apply(domain.NewAgentState("a1"), created("a1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reducer registered")
}

func TestMachineWearAndStatusChange(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 1, &event.MachineWearUpdated{
			LocationID: "LOC_001", MachineID: "MCH_001", NewCondition: 9.5, LoadsProcessed: 8,
		}),
		ev("a1", 0, 1, &event.MachineStatusChanged{
			LocationID: "LOC_001", MachineID: "MCH_001",
			NewStatus: string(domain.MachineBroken), Reason: "worn out",
		}),
	})
	require.NoError(t, err)

	m := s.Locations["LOC_001"].Equipment["MCH_001"]
	assert.Equal(t, 9.5, m.Condition)
	assert.Equal(t, domain.MachineBroken, m.Status)
}

func TestScandalLifecycle(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 1, 0, &event.ScandalStarted{
			ScandalID: "SC1", Description: "health code story", Severity: 0.8,
			DurationWeeks: 4, DecayRate: 0.2,
		}),
		ev("a1", 2, 0, &event.ScandalMarkerDecayed{ScandalID: "SC1", NewSeverity: 0.6}),
	})
	require.NoError(t, err)
	require.Len(t, s.ActiveScandals, 1)
	assert.Equal(t, 0.6, s.ActiveScandals[0].Severity)

	s, err = r.Apply(s, ev("a1", 3, 0, &event.ScandalMarkerDecayed{
		ScandalID: "SC1", NewSeverity: -0.1, Expired: true,
	}))
	require.NoError(t, err)
	assert.Empty(t, s.ActiveScandals)
}

func TestSeverityClampedOnScandalStart(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.ScandalStarted{ScandalID: "SC1", Severity: 3.0}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.ActiveScandals[0].Severity)
}

func TestSocialScoreClamps(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.CharityDonationMade{
			CauseName: "shelter", DonationAmount: 100000, SocialScoreBoost: 500,
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.SocialScore)

	s, err = r.Apply(s, ev("a1", 0, 0, &event.CustomerReviewSubmitted{
		LocationID: "LOC_001", Rating: 1, SocialImpact: -500,
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.SocialScore)
}

func TestSocialScoreAdjustedAppliesDeltaWithClamp(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.SocialScoreAdjusted{Delta: 10, Reason: "dilemma"}),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.SocialScore, "delta stacks on the prior score")

	s, err = r.Apply(s, ev("a1", 0, 0, &event.SocialScoreAdjusted{Delta: 75, Reason: "dilemma"}))
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.SocialScore)

	s, err = r.Apply(s, ev("a1", 0, 0, &event.SocialScoreAdjusted{Delta: -500, Reason: "dilemma"}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.SocialScore)
}

func TestMachineSequenceSurvivesSale(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.EquipmentPurchased{
			LocationID: "LOC_001", MachineID: "MCH_002", MachineKind: "DRYER", UnitCost: 1200,
		}),
		ev("a1", 0, 1, &event.EquipmentSold{
			LocationID: "LOC_001", MachineID: "MCH_002", MachineKind: "DRYER", SalePrice: 600,
		}),
	})
	require.NoError(t, err)

	// The counter keeps counting machines ever created, so a sale never
	// frees an id for reuse.
	assert.Equal(t, 2, s.MachineSeq)
	assert.Len(t, s.Locations["LOC_001"].Equipment, 1)
}

func TestEquipmentPurchasedInsertsSingleMachine(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 1, 2, &event.EquipmentPurchased{
			LocationID: "LOC_001", MachineID: "MCH_002", MachineKind: "DRYER", UnitCost: 1200,
		}),
	})
	require.NoError(t, err)

	m := s.Locations["LOC_001"].Equipment["MCH_002"]
	require.NotNil(t, m)
	assert.Equal(t, domain.MachineDryer, m.Kind)
	assert.Equal(t, 100.0, m.Condition)
	assert.Equal(t, domain.MachineOperational, m.Status)
	assert.Equal(t, 1, m.LastMaintenanceWeek)
}

func TestBuyoutOfferLifecycle(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 2, 0, &event.BuyoutProposed{
			AcquirerAgentID: "a2", TargetAgentID: "a1", OfferAmount: 12000,
			CorrelationID: "BUYOUT:a2:a1:W2:D0", Mirror: true,
		}),
	})
	require.NoError(t, err)

	offer := s.PendingBuyouts["BUYOUT:a2:a1:W2:D0"]
	require.NotNil(t, offer)
	assert.Equal(t, "a2", offer.AcquirerAgentID)
	assert.Equal(t, 12000.0, offer.OfferAmount)
	assert.Equal(t, 2, offer.OfferedWeek)

	s, err = r.Apply(s, ev("a1", 2, 1, &event.BuyoutAccepted{
		AcquirerAgentID: "a2", SaleAmount: 12000, CorrelationID: "BUYOUT:a2:a1:W2:D0",
	}))
	require.NoError(t, err)
	assert.Empty(t, s.PendingBuyouts)
	assert.True(t, s.Retired)
}

func TestBuyoutProposedOwnStreamRecordsNothing(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a2", []*event.Event{
		created("a2"),
		ev("a2", 2, 0, &event.BuyoutProposed{
			AcquirerAgentID: "a2", TargetAgentID: "a1", OfferAmount: 12000,
			CorrelationID: "BUYOUT:a2:a1:W2:D0",
		}),
	})
	require.NoError(t, err)
	assert.Empty(t, s.PendingBuyouts, "the offer is pending on the target, not the acquirer")
}

func TestDefaultRecordedMarksLoanAndDowngradesRating(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.LoanTaken{
			LoanID: "LOAN_W0_D0_001", LoanKind: "EQUIPMENT",
			Principal: 2000, InterestRate: 0.06, TermWeeks: 2,
		}),
	})
	require.NoError(t, err)
	before := s.CreditRating

	s, err = r.Apply(s, ev("a1", 4, 0, &event.DefaultRecorded{
		LoanID: "LOAN_W0_D0_001", CreditRatingDelta: -15, Reason: "term expired",
	}))
	require.NoError(t, err)
	assert.Equal(t, before-15, s.CreditRating)
	require.Len(t, s.Loans, 1)
	assert.True(t, s.Loans[0].Defaulted)
}

func TestLoanLifecycle(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.LoanTaken{
			LoanID: "LOAN_W0_D0_001", LoanKind: "LOC",
			Principal: 2000, InterestRate: 0.08,
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, s.TotalDebt)
	assert.Equal(t, 2000.0, s.CreditBalance)
	require.Len(t, s.Loans, 1)

	s, err = r.Apply(s, ev("a1", 1, 0, &event.DebtPaymentProcessed{
		LoanID: "LOAN_W0_D0_001", PaymentAmount: 2000, NewOutstanding: 0, LoanRetired: true,
	}))
	require.NoError(t, err)
	assert.Empty(t, s.Loans)
	assert.Equal(t, 0.0, s.TotalDebt)
	assert.Equal(t, 0.0, s.CreditBalance)
}

func TestTaxLiabilityResetsWeeklyAccumulators(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 1, 1, &event.DailyRevenueProcessed{
			LocationID: "LOC_001", LoadsProcessed: 40,
			GrossRevenue: 140, SuppliesCost: 20, UtilitiesCost: 10, NetRevenue: 110,
		}),
	})
	require.NoError(t, err)
	loc := s.Locations["LOC_001"]
	assert.Equal(t, 140.0, loc.WeekRevenue)
	assert.Equal(t, 30.0, loc.WeekCOGS)

	s, err = r.Apply(s, ev("a1", 4, 0, &event.TaxLiabilityCalculated{
		TaxableProfit: 110, TaxRate: 0.21, TaxAmount: 23.1,
	}))
	require.NoError(t, err)
	assert.InDelta(t, 23.1, s.TaxLiability, 1e-9)
	assert.Zero(t, s.Locations["LOC_001"].WeekRevenue)
	assert.Zero(t, s.Locations["LOC_001"].WeekCOGS)
}

func TestTimeAdvancedWeekRolloverAgesStaffAndMarketing(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 0, 0, &event.StaffHired{
			LocationID: "LOC_001", StaffID: "STF_W0_001",
			StaffName: "Dana", Role: "ATTENDANT", HourlyRate: 15,
		}),
		ev("a1", 0, 0, &event.MarketingBoostApplied{
			LocationID: "LOC_001", CampaignType: "FLYERS",
			MarketingCost: 200, CustomerAttractionBoost: 0.10, DurationWeeks: 1,
		}),
		ev("a1", 1, 0, &event.TimeAdvanced{NewWeek: 1, NewDay: 0}),
	})
	require.NoError(t, err)

	loc := s.Locations["LOC_001"]
	assert.Equal(t, 1, loc.Staff["STF_W0_001"].TenureWeeks)
	assert.Nil(t, loc.Marketing, "single-week campaign expires on rollover")
	assert.Equal(t, 1, s.Week)
	assert.Equal(t, 0, s.Day)
}

func TestRegulatoryFindingAndStatus(t *testing.T) {
	r := NewRegistry()
	s, err := r.Fold("a1", []*event.Event{
		created("a1"),
		ev("a1", 2, 3, &event.RegulatoryFinding{
			FineID: "FINE_X", ViolationType: "PREDATORY_PRICING",
			FineAmount: 500, DueWeek: 6, TriggerSignature: "SIG",
		}),
		ev("a1", 2, 3, &event.RegulatoryStatusUpdated{
			NewStatus: string(domain.RegWarning), Reason: "test", TriggerSignature: "SIG2",
		}),
	})
	require.NoError(t, err)

	require.Len(t, s.PendingFines, 1)
	f := s.PendingFines[0]
	assert.Equal(t, domain.FineOpen, f.Status)
	assert.Equal(t, 2, f.IssuedWeek)
	assert.Equal(t, 6, f.DueWeek)
	assert.Equal(t, domain.RegWarning, s.RegulatoryStatus)

	s, err = r.Apply(s, ev("a1", 3, 0, &event.FinePaidEvent{FineID: "FINE_X", AmountPaid: 500}))
	require.NoError(t, err)
	assert.Equal(t, domain.FinePaid, s.PendingFines[0].Status)
}

func TestFoldIsDeterministic(t *testing.T) {
	history := []*event.Event{
		created("a1"),
		ev("a1", 0, 1, &event.TimeAdvanced{NewWeek: 0, NewDay: 1}),
		ev("a1", 0, 1, &event.DailyRevenueProcessed{
			LocationID: "LOC_001", LoadsProcessed: 10,
			GrossRevenue: 35, SuppliesCost: 5, UtilitiesCost: 2.5, NetRevenue: 27.5,
		}),
		ev("a1", 0, 1, &event.FundsTransferred{
			Amount: 27.5, TransactionType: event.TxnRevenue, Description: "Daily revenue",
		}),
	}

	r := NewRegistry()
	first, err := r.Fold("a1", history)
	require.NoError(t, err)
	second, err := r.Fold("a1", history)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
