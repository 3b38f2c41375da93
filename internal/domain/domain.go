// Package domain holds the read-model entity structs and enums for the
// laundromat simulation. State values are only ever produced by the
// projection layer folding the event log; nothing else is allowed to
// construct or mutate them.
package domain

import "time"

// MachineKind classifies laundromat equipment.
type MachineKind string

const (
	MachineWasher  MachineKind = "WASHER"
	MachineDryer   MachineKind = "DRYER"
	MachineVending MachineKind = "VENDING"
)

// MachineStatus is the operational status of a machine.
type MachineStatus string

const (
	MachineOperational MachineStatus = "OPERATIONAL"
	MachineBroken      MachineStatus = "BROKEN"
	MachineInRepair    MachineStatus = "IN_REPAIR"
)

// RegulatoryStatus is the agent's standing with the regulator.
type RegulatoryStatus string

const (
	RegNormal             RegulatoryStatus = "NORMAL"
	RegWarning            RegulatoryStatus = "WARNING"
	RegUnderInvestigation RegulatoryStatus = "UNDER_INVESTIGATION"
	RegPenalized          RegulatoryStatus = "PENALIZED"
)

// StaffRole enumerates employee roles.
type StaffRole string

const (
	RoleAttendant  StaffRole = "ATTENDANT"
	RoleTechnician StaffRole = "TECHNICIAN"
	RoleManager    StaffRole = "MANAGER"
)

// FineStatus tracks the lifecycle of an issued fine.
type FineStatus string

const (
	FineOpen     FineStatus = "OPEN"
	FinePaid     FineStatus = "PAID"
	FineAppealed FineStatus = "APPEALED"
)

// LoanKind enumerates the loan products the bank offers.
type LoanKind string

const (
	LoanLOC       LoanKind = "LOC"
	LoanEquipment LoanKind = "EQUIPMENT"
	LoanExpansion LoanKind = "EXPANSION"
	LoanEmergency LoanKind = "EMERGENCY"
)

// AllianceKind distinguishes informal arrangements from formal partnerships.
type AllianceKind string

const (
	AllianceInformal AllianceKind = "INFORMAL"
	AllianceFormal   AllianceKind = "FORMAL"
)

// PaymentRecord is a single entry in a vendor payment history tail.
type PaymentRecord string

const (
	PaymentOnTime  PaymentRecord = "ON_TIME"
	PaymentLate    PaymentRecord = "LATE"
	PaymentDefault PaymentRecord = "DEFAULT"
)

// Service names recognised by pricing and the revenue model.
const (
	ServiceStandardWash = "StandardWash"
	ServicePremiumWash  = "PremiumWash"
	ServiceDry          = "Dry"
	ServiceVendingItems = "VendingItems"
)

// MachineState tracks a single physical machine at a location.
type MachineState struct {
	MachineID           string        `json:"machine_id"`
	Kind                MachineKind   `json:"kind"`
	Condition           float64       `json:"condition"` // 0-100
	Status              MachineStatus `json:"status"`
	LastMaintenanceWeek int           `json:"last_maintenance_week"`
	LoadsSinceService   int           `json:"loads_processed_since_service"`
}

// StaffMember is an employee at a location.
type StaffMember struct {
	StaffID     string    `json:"staff_id"`
	Name        string    `json:"name"`
	Role        StaffRole `json:"role"`
	HourlyRate  float64   `json:"hourly_rate"`
	Morale      float64   `json:"morale"` // 0-100
	TenureWeeks int       `json:"tenure_weeks"`
	HiredWeek   int       `json:"hired_week"`
	Benefits    []string  `json:"benefits,omitempty"`
}

// VendorRelationship tracks standing with a supplier at one location.
type VendorRelationship struct {
	VendorID          string          `json:"vendor_id"`
	Tier              int             `json:"tier"`
	WeeksAtTier       int             `json:"weeks_at_tier"`
	PaymentHistory    []PaymentRecord `json:"payment_history,omitempty"` // bounded tail
	ExclusiveContract bool            `json:"exclusive_contract"`
	ExclusiveEndWeek  int             `json:"exclusive_end_week,omitempty"`
	UnitPrice         float64         `json:"unit_price"`
	Disrupted         bool            `json:"disrupted"`
}

// ScandalMarker is a persistent reputational penalty on an agent.
type ScandalMarker struct {
	ScandalID     string  `json:"scandal_id"`
	Description   string  `json:"description"`
	Severity      float64 `json:"severity"` // 0-1
	StartWeek     int     `json:"start_week"`
	DurationWeeks int     `json:"duration_weeks"`
	DecayRate     float64 `json:"decay_rate"` // per-week severity decay
}

// Fine is a monetary penalty issued by the regulator.
type Fine struct {
	FineID      string     `json:"fine_id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	IssuedWeek  int        `json:"issued_week"`
	DueWeek     int        `json:"due_week"`
	Status      FineStatus `json:"status"`
}

// Alliance is a standing arrangement with another agent.
type Alliance struct {
	AllianceID     string       `json:"alliance_id"`
	PartnerAgentID string       `json:"partner_agent_id"`
	Kind           AllianceKind `json:"kind"`
	StartWeek      int          `json:"start_week"`
	DurationWeeks  int          `json:"duration_weeks"`
	BreachPenalty  float64      `json:"breach_penalty"`
}

// Loan is an outstanding debt obligation.
type Loan struct {
	LoanID      string   `json:"loan_id"`
	Kind        LoanKind `json:"kind"`
	Principal   float64  `json:"principal"`
	Outstanding float64  `json:"outstanding"`
	AnnualRate  float64  `json:"annual_rate"`
	TermWeeks   int      `json:"term_weeks"` // 0 = revolving
	TakenWeek   int      `json:"taken_week"`
	Defaulted   bool     `json:"defaulted,omitempty"`
}

// BuyoutOffer is an acquisition proposal awaiting the agent's decision.
type BuyoutOffer struct {
	OfferID         string  `json:"offer_id"`
	AcquirerAgentID string  `json:"acquirer_agent_id"`
	OfferAmount     float64 `json:"offer_amount"`
	OfferedWeek     int     `json:"offered_week"`
}

// Dilemma is an unresolved ethical choice presented to the agent.
type Dilemma struct {
	DilemmaID     string                    `json:"dilemma_id"`
	Description   string                    `json:"description"`
	Options       map[string]DilemmaOption  `json:"options"`
	TriggeredWeek int                       `json:"triggered_week"`
}

// DilemmaOption describes one branch of a dilemma.
type DilemmaOption struct {
	Description       string  `json:"description"`
	ImmediateCost     float64 `json:"immediate_cost"`
	SocialScoreImpact float64 `json:"social_score_impact"`
	RegulatoryRisk    string  `json:"regulatory_risk"`
}

// Investigation tracks an open regulatory inquiry.
type Investigation struct {
	InvestigationID string `json:"investigation_id"`
	Reason          string `json:"reason"`
	Severity        string `json:"severity"`
	Stage           string `json:"stage"`
	StartedWeek     int    `json:"started_week"`
}

// MarketingBoost is an active campaign effect at a location.
type MarketingBoost struct {
	CampaignType   string  `json:"campaign_type"`
	Boost          float64 `json:"boost"` // fractional load multiplier addition
	RemainingWeeks int     `json:"remaining_weeks"`
}

// Listing is an available real-estate listing the agent may open.
type Listing struct {
	ListingID   string  `json:"listing_id"`
	Zone        string  `json:"zone"`
	MonthlyRent float64 `json:"monthly_rent"`
	SetupCost   float64 `json:"setup_cost"`
	Description string  `json:"description"`
}

// LocationState tracks the physical assets and weekly economics of a single
// laundromat location.
type LocationState struct {
	LocationID         string                         `json:"location_id"`
	Zone               string                         `json:"zone"`
	MonthlyRent        float64                        `json:"monthly_rent"`
	Cleanliness        float64                        `json:"cleanliness"` // 0-100
	Equipment          map[string]*MachineState       `json:"equipment"`
	InventoryDetergent int                            `json:"inventory_detergent"` // loads worth
	InventorySoftener  int                            `json:"inventory_softener"`
	Staff              map[string]*StaffMember        `json:"staff"`
	ActivePricing      map[string]float64             `json:"active_pricing"`
	CompetitorPrices   map[string]float64             `json:"competitor_prices,omitempty"`
	Vendors            map[string]*VendorRelationship `json:"vendor_relationships"`
	Marketing          *MarketingBoost                `json:"marketing,omitempty"`
	WeekRevenue        float64                        `json:"accumulated_revenue_week"`
	WeekCOGS           float64                        `json:"accumulated_cogs_week"`
}

// AgentState is the full derived state of one agent. It is never stored;
// it is rebuilt from the agent's event stream on demand.
type AgentState struct {
	AgentID           string                    `json:"agent_id"`
	Week              int                       `json:"week"`
	Day               int                       `json:"day"`
	Cash              float64                   `json:"cash"`
	CreditBalance     float64                   `json:"line_of_credit_balance"`
	CreditLimit       float64                   `json:"line_of_credit_limit"`
	TotalDebt         float64                   `json:"total_debt"`
	Loans             []*Loan                   `json:"loans"`
	SocialScore       float64                   `json:"social_score"` // 0-100
	ActiveScandals    []*ScandalMarker          `json:"active_scandals"`
	ActiveDilemmas    map[string]*Dilemma       `json:"active_dilemmas"`
	LoyaltyMembers    int                       `json:"loyalty_members"`
	MarketShareLoads  float64                   `json:"market_share_loads"`
	TaxLiability      float64                   `json:"tax_liability"`
	RegulatoryStatus  RegulatoryStatus          `json:"regulatory_status"`
	Investigations    map[string]*Investigation `json:"active_investigations"`
	CreditRating      int                       `json:"credit_rating"` // 0-100
	ActiveAlliances   []*Alliance               `json:"active_alliances"`
	PendingBuyouts    map[string]*BuyoutOffer   `json:"pending_buyout_offers,omitempty"`
	PendingFines      []*Fine                   `json:"pending_fines"`
	Locations         map[string]*LocationState `json:"locations"`
	Listings          map[string]*Listing       `json:"available_listings"`
	PrivateNotes      []string                  `json:"private_notes"`
	AuditEntriesCount int                       `json:"audit_entries_count"`
	LastAuditEvent    string                    `json:"last_audit_event"`
	Retired           bool                      `json:"retired"`
	CreatedAt         time.Time                 `json:"created_at,omitempty"`

	// Monotonic sequence counters behind entity id derivation. They count
	// entities ever created, not entities alive, so ids are never reused.
	MachineSeq  int `json:"machine_seq"`
	StaffSeq    int `json:"staff_seq"`
	LoanSeq     int `json:"loan_seq"`
	LocationSeq int `json:"location_seq"`
}

// NewAgentState returns a zero state for an agent that has no events yet.
// All meaningful initial values (cash, starting location) arrive via the
// AgentCreated event, not here.
func NewAgentState(agentID string) *AgentState {
	return &AgentState{
		AgentID:          agentID,
		SocialScore:      50,
		CreditRating:     50,
		CreditLimit:      5000,
		RegulatoryStatus: RegNormal,
		ActiveDilemmas:   make(map[string]*Dilemma),
		Investigations:   make(map[string]*Investigation),
		PendingBuyouts:   make(map[string]*BuyoutOffer),
		Locations:        make(map[string]*LocationState),
		Listings:         make(map[string]*Listing),
	}
}

// AvailableFunds is cash plus unused line-of-credit capacity. Commands that
// spend money validate against this, not raw cash.
func (s *AgentState) AvailableFunds() float64 {
	return s.Cash + (s.CreditLimit - s.CreditBalance)
}

// Location returns the location or nil.
func (s *AgentState) Location(id string) *LocationState {
	return s.Locations[id]
}

// FindLoan returns the loan with the given id or nil.
func (s *AgentState) FindLoan(id string) *Loan {
	for _, l := range s.Loans {
		if l.LoanID == id {
			return l
		}
	}
	return nil
}

// FindScandal returns the active scandal with the given id or nil.
func (s *AgentState) FindScandal(id string) *ScandalMarker {
	for _, sc := range s.ActiveScandals {
		if sc.ScandalID == id {
			return sc
		}
	}
	return nil
}

// FindFine returns the pending fine with the given id or nil.
func (s *AgentState) FindFine(id string) *Fine {
	for _, f := range s.PendingFines {
		if f.FineID == id {
			return f
		}
	}
	return nil
}

// FindAlliance returns the alliance with the given partner or nil.
func (s *AgentState) FindAlliance(partnerID string) *Alliance {
	for _, a := range s.ActiveAlliances {
		if a.PartnerAgentID == partnerID {
			return a
		}
	}
	return nil
}

// TotalScandalSeverity sums the severity of all active scandals.
func (s *AgentState) TotalScandalSeverity() float64 {
	var total float64
	for _, sc := range s.ActiveScandals {
		total += sc.Severity
	}
	return total
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
