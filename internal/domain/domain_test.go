package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableFunds(t *testing.T) {
	s := NewAgentState("a1")
	s.Cash = 1000
	s.CreditLimit = 5000
	s.CreditBalance = 2000

	assert.Equal(t, 4000.0, s.AvailableFunds())
}

func TestCloneIsDeep(t *testing.T) {
	s := NewAgentState("a1")
	s.Cash = 500
	s.Loans = []*Loan{{LoanID: "LOAN_W0_D0_001", Outstanding: 100}}
	s.ActiveScandals = []*ScandalMarker{{ScandalID: "SC1", Severity: 0.5}}
	s.Locations["LOC_001"] = &LocationState{
		LocationID:    "LOC_001",
		Cleanliness:   80,
		Equipment:     map[string]*MachineState{"MCH_001": {MachineID: "MCH_001", Condition: 90}},
		Staff:         map[string]*StaffMember{"STF_W0_001": {StaffID: "STF_W0_001", HourlyRate: 15}},
		ActivePricing: map[string]float64{ServiceStandardWash: 3.50},
		Vendors:       map[string]*VendorRelationship{"CleanCo": {VendorID: "CleanCo", Tier: 1}},
	}

	clone := s.Clone()
	require.NotSame(t, s, clone)

	clone.Cash = 999
	clone.Loans[0].Outstanding = 1
	clone.ActiveScandals[0].Severity = 0.9
	loc := clone.Locations["LOC_001"]
	loc.Cleanliness = 10
	loc.Equipment["MCH_001"].Condition = 5
	loc.Staff["STF_W0_001"].HourlyRate = 9
	loc.ActivePricing[ServiceStandardWash] = 1.00
	loc.Vendors["CleanCo"].Tier = 3

	assert.Equal(t, 500.0, s.Cash)
	assert.Equal(t, 100.0, s.Loans[0].Outstanding)
	assert.Equal(t, 0.5, s.ActiveScandals[0].Severity)
	orig := s.Locations["LOC_001"]
	assert.Equal(t, 80.0, orig.Cleanliness)
	assert.Equal(t, 90.0, orig.Equipment["MCH_001"].Condition)
	assert.Equal(t, 15.0, orig.Staff["STF_W0_001"].HourlyRate)
	assert.Equal(t, 3.50, orig.ActivePricing[ServiceStandardWash])
	assert.Equal(t, 1, orig.Vendors["CleanCo"].Tier)
}

func TestTotalScandalSeverity(t *testing.T) {
	s := NewAgentState("a1")
	assert.Zero(t, s.TotalScandalSeverity())

	s.ActiveScandals = []*ScandalMarker{
		{ScandalID: "SC1", Severity: 0.4},
		{ScandalID: "SC2", Severity: 0.7},
	}
	assert.InDelta(t, 1.1, s.TotalScandalSeverity(), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(250, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}
