package event

// Kind constants for every event the simulation emits. Grouped by domain.
const (
	// Lifecycle
	KindAgentCreated          = "AgentCreated"
	KindAgentRetired          = "AgentRetired"
	KindLocationOpened        = "LocationOpened"
	KindLocationClosed        = "LocationClosed"
	KindLocationListingAdded  = "LocationListingAdded"
	KindLocationListingRemoved = "LocationListingRemoved"

	// Time
	KindTimeAdvanced           = "TimeAdvanced"
	KindDailyRevenueProcessed  = "DailyRevenueProcessed"
	KindWeeklyFixedCostsBilled = "WeeklyFixedCostsBilled"
	KindWeeklyWagesBilled      = "WeeklyWagesBilled"
	KindInterestAccrued        = "InterestAccrued"
	KindTaxLiabilityCalculated = "TaxLiabilityCalculated"

	// Finance
	KindFundsTransferred      = "FundsTransferred"
	KindLoanTaken             = "LoanTaken"
	KindDebtPaymentProcessed  = "DebtPaymentProcessed"
	KindDefaultRecorded       = "DefaultRecorded"
	KindPriceSet              = "PriceSet"
	KindMarketingBoostApplied = "MarketingBoostApplied"

	// Equipment and inventory
	KindEquipmentPurchased   = "EquipmentPurchased"
	KindEquipmentSold        = "EquipmentSold"
	KindEquipmentRepaired    = "EquipmentRepaired"
	KindMachineWearUpdated   = "MachineWearUpdated"
	KindMachineStatusChanged = "MachineStatusChanged"
	KindSuppliesAcquired     = "SuppliesAcquired"
	KindStockoutStarted      = "StockoutStarted"
	KindStockoutEnded        = "StockoutEnded"

	// Staffing
	KindStaffHired         = "StaffHired"
	KindStaffFired         = "StaffFired"
	KindStaffQuit          = "StaffQuit"
	KindWageAdjusted       = "WageAdjusted"
	KindBenefitImplemented = "BenefitImplemented"
	KindStaffMoraleChanged = "StaffMoraleChanged"

	// Vendors
	KindVendorTierPromoted         = "VendorTierPromoted"
	KindVendorTierDemoted          = "VendorTierDemoted"
	KindVendorPriceFluctuated      = "VendorPriceFluctuated"
	KindVendorNegotiationInitiated = "VendorNegotiationInitiated"
	KindVendorNegotiationResult    = "VendorNegotiationResult"
	KindVendorTermsUpdated         = "VendorTermsUpdated"
	KindExclusiveContractSigned    = "ExclusiveContractSigned"
	KindVendorContractCancelled    = "VendorContractCancelled"
	KindDeliveryDisruptionStarted  = "DeliveryDisruptionStarted"
	KindDeliveryDisruptionEnded    = "DeliveryDisruptionEnded"

	// Social and ethics
	KindSocialScoreAdjusted     = "SocialScoreAdjusted"
	KindScandalStarted          = "ScandalStarted"
	KindScandalMarkerDecayed    = "ScandalMarkerDecayed"
	KindDilemmaTriggered        = "DilemmaTriggered"
	KindDilemmaResolved         = "DilemmaResolved"
	KindCustomerReviewSubmitted = "CustomerReviewSubmitted"
	KindLoyaltyMemberRegistered = "LoyaltyMemberRegistered"
	KindCharityDonationMade     = "CharityDonationMade"
	KindEndOfTurnNotesSaved     = "EndOfTurnNotesSaved"
	KindAuditSnapshotRecorded   = "AuditSnapshotRecorded"

	// Regulatory
	KindRegulatoryFinding          = "RegulatoryFinding"
	KindRegulatoryStatusUpdated    = "RegulatoryStatusUpdated"
	KindFinePaid                   = "FinePaid"
	KindFineAppealed               = "FineAppealed"
	KindRegulatoryReportFiled      = "RegulatoryReportFiled"
	KindInvestigationStarted       = "InvestigationStarted"
	KindInvestigationStageAdvanced = "InvestigationStageAdvanced"

	// Competition and inter-agent
	KindAllianceFormed        = "AllianceFormed"
	KindAllianceBreached      = "AllianceBreached"
	KindBuyoutProposed        = "BuyoutProposed"
	KindBuyoutAccepted        = "BuyoutAccepted"
	KindAgentAcquired         = "AgentAcquired"
	KindCompetitorPriceChanged = "CompetitorPriceChanged"
	KindCompetitorExitedMarket = "CompetitorExitedMarket"
	KindCommunicationSent     = "CommunicationSent"
	KindCommunicationReceived = "CommunicationReceived"
)

// Transaction types carried by FundsTransferred. The sign convention lives
// in the reducer: REVENUE/LOAN/REFUND credit cash, EXPENSE/PAYMENT/FINE/
// PENALTY debit it.
const (
	TxnRevenue = "REVENUE"
	TxnExpense = "EXPENSE"
	TxnLoan    = "LOAN"
	TxnPayment = "PAYMENT"
	TxnRefund  = "REFUND"
	TxnFine    = "FINE"
	TxnPenalty = "PENALTY"
)

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

type AgentCreated struct {
	AgentName      string  `json:"agent_name"`
	StartingCash   float64 `json:"starting_cash"`
	CreditLimit    float64 `json:"credit_limit,omitempty"`
	LocationID     string  `json:"location_id"`
	Zone           string  `json:"zone"`
	MonthlyRent    float64 `json:"monthly_rent"`
	FirstMachineID string  `json:"first_machine_id"`
}

func (AgentCreated) Kind() string { return KindAgentCreated }

type AgentRetired struct {
	Reason    string  `json:"reason"`
	FinalCash float64 `json:"final_cash"`
}

func (AgentRetired) Kind() string { return KindAgentRetired }

type LocationOpened struct {
	LocationID  string  `json:"location_id"`
	ListingID   string  `json:"listing_id"`
	Zone        string  `json:"zone"`
	MonthlyRent float64 `json:"monthly_rent"`
	SetupCost   float64 `json:"setup_cost"`
}

func (LocationOpened) Kind() string { return KindLocationOpened }

type LocationClosed struct {
	LocationID string `json:"location_id"`
	Reason     string `json:"reason"`
}

func (LocationClosed) Kind() string { return KindLocationClosed }

type LocationListingAdded struct {
	ListingID   string  `json:"listing_id"`
	Zone        string  `json:"zone"`
	MonthlyRent float64 `json:"monthly_rent"`
	SetupCost   float64 `json:"setup_cost"`
	Description string  `json:"description"`
}

func (LocationListingAdded) Kind() string { return KindLocationListingAdded }

type LocationListingRemoved struct {
	ListingID string `json:"listing_id"`
	Reason    string `json:"reason"`
}

func (LocationListingRemoved) Kind() string { return KindLocationListingRemoved }

// ---------------------------------------------------------------------------
// Time
// ---------------------------------------------------------------------------

type TimeAdvanced struct {
	NewWeek int `json:"new_week"`
	NewDay  int `json:"new_day"`
}

func (TimeAdvanced) Kind() string { return KindTimeAdvanced }

// DailyRevenueProcessed carries the per-location daily breakdown. Cash
// movement rides on the paired FundsTransferred(REVENUE); this event only
// drives location accumulators and inventory draw-down.
type DailyRevenueProcessed struct {
	LocationID     string             `json:"location_id"`
	LoadsProcessed float64            `json:"loads_processed"`
	LoadsByService map[string]float64 `json:"loads_by_service"`
	GrossRevenue   float64            `json:"gross_revenue"`
	SuppliesCost   float64            `json:"supplies_cost"`
	UtilitiesCost  float64            `json:"utilities_cost"`
	NetRevenue     float64            `json:"net_revenue"`
}

func (DailyRevenueProcessed) Kind() string { return KindDailyRevenueProcessed }

type WeeklyFixedCostsBilled struct {
	LocationID    string  `json:"location_id"`
	RentPortion   float64 `json:"rent_portion"`
	InsuranceCost float64 `json:"insurance_cost"`
	OtherCosts    float64 `json:"other_costs"`
	TotalCost     float64 `json:"total_cost"`
}

func (WeeklyFixedCostsBilled) Kind() string { return KindWeeklyFixedCostsBilled }

type WeeklyWagesBilled struct {
	LocationID string  `json:"location_id"`
	StaffCount int     `json:"staff_count"`
	TotalWages float64 `json:"total_wages"`
}

func (WeeklyWagesBilled) Kind() string { return KindWeeklyWagesBilled }

type InterestAccrued struct {
	LoanID         string  `json:"loan_id"`
	InterestAmount float64 `json:"interest_amount"`
	NewOutstanding float64 `json:"new_outstanding"`
}

func (InterestAccrued) Kind() string { return KindInterestAccrued }

type TaxLiabilityCalculated struct {
	TaxableProfit float64 `json:"taxable_profit"`
	TaxRate       float64 `json:"tax_rate"`
	TaxAmount     float64 `json:"tax_amount"`
}

func (TaxLiabilityCalculated) Kind() string { return KindTaxLiabilityCalculated }

// ---------------------------------------------------------------------------
// Finance
// ---------------------------------------------------------------------------

type FundsTransferred struct {
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Description     string  `json:"description"`
}

func (FundsTransferred) Kind() string { return KindFundsTransferred }

type LoanTaken struct {
	LoanID       string  `json:"loan_id"`
	LoanKind     string  `json:"loan_kind"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	TermWeeks    int     `json:"term_weeks"`
}

func (LoanTaken) Kind() string { return KindLoanTaken }

type DebtPaymentProcessed struct {
	LoanID         string  `json:"loan_id"`
	PaymentAmount  float64 `json:"payment_amount"`
	NewOutstanding float64 `json:"new_outstanding"`
	LoanRetired    bool    `json:"loan_retired"`
}

func (DebtPaymentProcessed) Kind() string { return KindDebtPaymentProcessed }

type DefaultRecorded struct {
	LoanID            string `json:"loan_id"`
	CreditRatingDelta int    `json:"credit_rating_delta"`
	Reason            string `json:"reason"`
}

func (DefaultRecorded) Kind() string { return KindDefaultRecorded }

type PriceSet struct {
	LocationID  string  `json:"location_id"`
	ServiceType string  `json:"service_type"`
	NewPrice    float64 `json:"new_price"`
}

func (PriceSet) Kind() string { return KindPriceSet }

type MarketingBoostApplied struct {
	LocationID              string  `json:"location_id"`
	CampaignType            string  `json:"campaign_type"`
	MarketingCost           float64 `json:"marketing_cost"`
	CustomerAttractionBoost float64 `json:"customer_attraction_boost"`
	DurationWeeks           int     `json:"duration_weeks"`
}

func (MarketingBoostApplied) Kind() string { return KindMarketingBoostApplied }

// ---------------------------------------------------------------------------
// Equipment and inventory
// ---------------------------------------------------------------------------

// EquipmentPurchased records one unit. A multi-unit buy emits one of these
// per machine plus a single FundsTransferred for the batch total.
type EquipmentPurchased struct {
	LocationID  string  `json:"location_id"`
	MachineID   string  `json:"machine_id"`
	MachineKind string  `json:"machine_kind"`
	UnitCost    float64 `json:"unit_cost"`
}

func (EquipmentPurchased) Kind() string { return KindEquipmentPurchased }

type EquipmentSold struct {
	LocationID  string  `json:"location_id"`
	MachineID   string  `json:"machine_id"`
	SalePrice   float64 `json:"sale_price"`
	MachineKind string  `json:"machine_kind"`
}

func (EquipmentSold) Kind() string { return KindEquipmentSold }

type EquipmentRepaired struct {
	LocationID      string  `json:"location_id"`
	MachineID       string  `json:"machine_id"`
	MaintenanceType string  `json:"maintenance_type"`
	Cost            float64 `json:"cost"`
	NewCondition    float64 `json:"new_condition"`
}

func (EquipmentRepaired) Kind() string { return KindEquipmentRepaired }

type MachineWearUpdated struct {
	LocationID     string  `json:"location_id"`
	MachineID      string  `json:"machine_id"`
	NewCondition   float64 `json:"new_condition"`
	LoadsProcessed int     `json:"loads_processed"`
}

func (MachineWearUpdated) Kind() string { return KindMachineWearUpdated }

type MachineStatusChanged struct {
	LocationID string `json:"location_id"`
	MachineID  string `json:"machine_id"`
	NewStatus  string `json:"new_status"`
	Reason     string `json:"reason"`
}

func (MachineStatusChanged) Kind() string { return KindMachineStatusChanged }

type SuppliesAcquired struct {
	LocationID     string  `json:"location_id"`
	VendorID       string  `json:"vendor_id"`
	DetergentLoads int     `json:"detergent_loads"`
	SoftenerLoads  int     `json:"softener_loads"`
	TotalCost      float64 `json:"total_cost"`
}

func (SuppliesAcquired) Kind() string { return KindSuppliesAcquired }

type StockoutStarted struct {
	LocationID string `json:"location_id"`
	SupplyType string `json:"supply_type"`
}

func (StockoutStarted) Kind() string { return KindStockoutStarted }

type StockoutEnded struct {
	LocationID string `json:"location_id"`
	SupplyType string `json:"supply_type"`
}

func (StockoutEnded) Kind() string { return KindStockoutEnded }

// ---------------------------------------------------------------------------
// Staffing
// ---------------------------------------------------------------------------

type StaffHired struct {
	LocationID string  `json:"location_id"`
	StaffID    string  `json:"staff_id"`
	StaffName  string  `json:"staff_name"`
	Role       string  `json:"role"`
	HourlyRate float64 `json:"hourly_rate"`
}

func (StaffHired) Kind() string { return KindStaffHired }

type StaffFired struct {
	LocationID string  `json:"location_id"`
	StaffID    string  `json:"staff_id"`
	Severance  float64 `json:"severance"`
}

func (StaffFired) Kind() string { return KindStaffFired }

type StaffQuit struct {
	LocationID string `json:"location_id"`
	StaffID    string `json:"staff_id"`
	Reason     string `json:"reason"`
}

func (StaffQuit) Kind() string { return KindStaffQuit }

type WageAdjusted struct {
	LocationID string  `json:"location_id"`
	StaffID    string  `json:"staff_id"`
	OldRate    float64 `json:"old_rate"`
	NewRate    float64 `json:"new_rate"`
}

func (WageAdjusted) Kind() string { return KindWageAdjusted }

type BenefitImplemented struct {
	LocationID  string  `json:"location_id"`
	BenefitType string  `json:"benefit_type"`
	WeeklyCost  float64 `json:"weekly_cost"`
	MoraleBoost float64 `json:"morale_boost"`
}

func (BenefitImplemented) Kind() string { return KindBenefitImplemented }

type StaffMoraleChanged struct {
	LocationID string  `json:"location_id"`
	StaffID    string  `json:"staff_id"`
	NewMorale  float64 `json:"new_morale"`
	Reason     string  `json:"reason"`
}

func (StaffMoraleChanged) Kind() string { return KindStaffMoraleChanged }

// ---------------------------------------------------------------------------
// Vendors
// ---------------------------------------------------------------------------

type VendorTierPromoted struct {
	LocationID string `json:"location_id"`
	VendorID   string `json:"vendor_id"`
	NewTier    int    `json:"new_tier"`
}

func (VendorTierPromoted) Kind() string { return KindVendorTierPromoted }

type VendorTierDemoted struct {
	LocationID string `json:"location_id"`
	VendorID   string `json:"vendor_id"`
	NewTier    int    `json:"new_tier"`
	Reason     string `json:"reason"`
}

func (VendorTierDemoted) Kind() string { return KindVendorTierDemoted }

type VendorPriceFluctuated struct {
	LocationID   string  `json:"location_id"`
	VendorID     string  `json:"vendor_id"`
	OldUnitPrice float64 `json:"old_unit_price"`
	NewUnitPrice float64 `json:"new_unit_price"`
}

func (VendorPriceFluctuated) Kind() string { return KindVendorPriceFluctuated }

type VendorNegotiationInitiated struct {
	LocationID        string  `json:"location_id"`
	VendorID          string  `json:"vendor_id"`
	RequestedDiscount float64 `json:"requested_discount"`
}

func (VendorNegotiationInitiated) Kind() string { return KindVendorNegotiationInitiated }

type VendorNegotiationResult struct {
	LocationID      string  `json:"location_id"`
	VendorID        string  `json:"vendor_id"`
	Outcome         string  `json:"outcome"` // ACCEPTED, COUNTERED, REJECTED
	GrantedDiscount float64 `json:"granted_discount"`
}

func (VendorNegotiationResult) Kind() string { return KindVendorNegotiationResult }

type VendorTermsUpdated struct {
	LocationID   string  `json:"location_id"`
	VendorID     string  `json:"vendor_id"`
	NewUnitPrice float64 `json:"new_unit_price"`
}

func (VendorTermsUpdated) Kind() string { return KindVendorTermsUpdated }

type ExclusiveContractSigned struct {
	LocationID    string  `json:"location_id"`
	VendorID      string  `json:"vendor_id"`
	DurationWeeks int     `json:"duration_weeks"`
	DiscountRate  float64 `json:"discount_rate"`
}

func (ExclusiveContractSigned) Kind() string { return KindExclusiveContractSigned }

type VendorContractCancelled struct {
	LocationID       string  `json:"location_id"`
	VendorID         string  `json:"vendor_id"`
	EarlyTermination bool    `json:"early_termination"`
	PenaltyAmount    float64 `json:"penalty_amount"`
}

func (VendorContractCancelled) Kind() string { return KindVendorContractCancelled }

type DeliveryDisruptionStarted struct {
	LocationID     string `json:"location_id"`
	VendorID       string `json:"vendor_id"`
	DisruptionType string `json:"disruption_type"` // DELAY, PARTIAL_SHIPMENT, QUALITY_ISSUE
	DurationDays   int    `json:"duration_days"`
}

func (DeliveryDisruptionStarted) Kind() string { return KindDeliveryDisruptionStarted }

type DeliveryDisruptionEnded struct {
	LocationID string `json:"location_id"`
	VendorID   string `json:"vendor_id"`
}

func (DeliveryDisruptionEnded) Kind() string { return KindDeliveryDisruptionEnded }

// ---------------------------------------------------------------------------
// Social and ethics
// ---------------------------------------------------------------------------

// SocialScoreAdjusted carries a delta, not an absolute value; the reducer
// applies and clamps it so replays over edited history stay consistent.
type SocialScoreAdjusted struct {
	Delta  float64 `json:"delta"`
	Reason string  `json:"reason"`
}

func (SocialScoreAdjusted) Kind() string { return KindSocialScoreAdjusted }

type ScandalStarted struct {
	ScandalID     string  `json:"scandal_id"`
	Description   string  `json:"description"`
	Severity      float64 `json:"severity"`
	DurationWeeks int     `json:"duration_weeks"`
	DecayRate     float64 `json:"decay_rate"`
}

func (ScandalStarted) Kind() string { return KindScandalStarted }

type ScandalMarkerDecayed struct {
	ScandalID   string  `json:"scandal_id"`
	NewSeverity float64 `json:"new_severity"`
	Expired     bool    `json:"expired"`
}

func (ScandalMarkerDecayed) Kind() string { return KindScandalMarkerDecayed }

type DilemmaTriggered struct {
	DilemmaID   string `json:"dilemma_id"`
	Description string `json:"description"`
	OptionsJSON string `json:"options_json"`
}

func (DilemmaTriggered) Kind() string { return KindDilemmaTriggered }

type DilemmaResolved struct {
	DilemmaID     string  `json:"dilemma_id"`
	ChosenOption  string  `json:"chosen_option"`
	EthicalChoice bool    `json:"ethical_choice"`
	ImmediateCost float64 `json:"immediate_cost"`
}

func (DilemmaResolved) Kind() string { return KindDilemmaResolved }

type CustomerReviewSubmitted struct {
	LocationID string  `json:"location_id"`
	Rating     int     `json:"rating"` // 1-5
	ReviewText string  `json:"review_text"`
	SocialImpact float64 `json:"social_impact"`
}

func (CustomerReviewSubmitted) Kind() string { return KindCustomerReviewSubmitted }

type LoyaltyMemberRegistered struct {
	LocationID string `json:"location_id"`
	NewTotal   int    `json:"new_total"`
	Count      int    `json:"count"`
}

func (LoyaltyMemberRegistered) Kind() string { return KindLoyaltyMemberRegistered }

type CharityDonationMade struct {
	CauseName        string  `json:"cause_name"`
	DonationAmount   float64 `json:"donation_amount"`
	SocialScoreBoost float64 `json:"social_score_boost"`
}

func (CharityDonationMade) Kind() string { return KindCharityDonationMade }

type EndOfTurnNotesSaved struct {
	Notes string `json:"notes"`
}

func (EndOfTurnNotesSaved) Kind() string { return KindEndOfTurnNotesSaved }

type AuditSnapshotRecorded struct {
	SnapshotLabel string  `json:"snapshot_label"`
	CashOnRecord  float64 `json:"cash_on_record"`
	EventCount    int     `json:"event_count"`
}

func (AuditSnapshotRecorded) Kind() string { return KindAuditSnapshotRecorded }

// ---------------------------------------------------------------------------
// Regulatory
// ---------------------------------------------------------------------------

type RegulatoryFinding struct {
	FineID           string  `json:"fine_id"`
	ViolationType    string  `json:"violation_type"`
	Description      string  `json:"description"`
	FineAmount       float64 `json:"fine_amount"`
	DueWeek          int     `json:"due_week"`
	TriggerSignature string  `json:"trigger_signature"`
}

func (RegulatoryFinding) Kind() string { return KindRegulatoryFinding }

type RegulatoryStatusUpdated struct {
	NewStatus        string `json:"new_status"`
	Reason           string `json:"reason"`
	TriggerSignature string `json:"trigger_signature"`
}

func (RegulatoryStatusUpdated) Kind() string { return KindRegulatoryStatusUpdated }

type FinePaidEvent struct {
	FineID     string  `json:"fine_id"`
	AmountPaid float64 `json:"amount_paid"`
}

func (FinePaidEvent) Kind() string { return KindFinePaid }

type FineAppealed struct {
	FineID        string `json:"fine_id"`
	AppealGrounds string `json:"appeal_grounds"`
}

func (FineAppealed) Kind() string { return KindFineAppealed }

type RegulatoryReportFiled struct {
	ReportType       string  `json:"report_type"`
	SocialScoreBoost float64 `json:"social_score_boost"`
}

func (RegulatoryReportFiled) Kind() string { return KindRegulatoryReportFiled }

type InvestigationStarted struct {
	InvestigationID  string `json:"investigation_id"`
	Reason           string `json:"reason"`
	Severity         string `json:"severity"`
	TriggerSignature string `json:"trigger_signature"`
}

func (InvestigationStarted) Kind() string { return KindInvestigationStarted }

type InvestigationStageAdvanced struct {
	InvestigationID string `json:"investigation_id"`
	NewStage        string `json:"new_stage"`
}

func (InvestigationStageAdvanced) Kind() string { return KindInvestigationStageAdvanced }

// ---------------------------------------------------------------------------
// Competition and inter-agent
// ---------------------------------------------------------------------------

type AllianceFormed struct {
	AllianceID     string  `json:"alliance_id"`
	PartnerAgentID string  `json:"partner_agent_id"`
	AllianceKind   string  `json:"alliance_kind"`
	DurationWeeks  int     `json:"duration_weeks"`
	BreachPenalty  float64 `json:"breach_penalty"`
	CorrelationID  string  `json:"correlation_id"`
	Mirror         bool    `json:"mirror"`
}

func (AllianceFormed) Kind() string { return KindAllianceFormed }

type AllianceBreached struct {
	AllianceID     string  `json:"alliance_id"`
	PartnerAgentID string  `json:"partner_agent_id"`
	PenaltyAmount  float64 `json:"penalty_amount"`
	CorrelationID  string  `json:"correlation_id"`
}

func (AllianceBreached) Kind() string { return KindAllianceBreached }

type BuyoutProposed struct {
	AcquirerAgentID string  `json:"acquirer_agent_id"`
	TargetAgentID   string  `json:"target_agent_id"`
	OfferAmount     float64 `json:"offer_amount"`
	CorrelationID   string  `json:"correlation_id"`
	Mirror          bool    `json:"mirror"`
}

func (BuyoutProposed) Kind() string { return KindBuyoutProposed }

type BuyoutAccepted struct {
	AcquirerAgentID string  `json:"acquirer_agent_id"`
	SaleAmount      float64 `json:"sale_amount"`
	CorrelationID   string  `json:"correlation_id"`
}

func (BuyoutAccepted) Kind() string { return KindBuyoutAccepted }

type AgentAcquired struct {
	AcquiredAgentID string  `json:"acquired_agent_id"`
	PricePaid       float64 `json:"price_paid"`
	CorrelationID   string  `json:"correlation_id"`
}

func (AgentAcquired) Kind() string { return KindAgentAcquired }

type CompetitorPriceChanged struct {
	LocationID     string  `json:"location_id"`
	CompetitorName string  `json:"competitor_name"`
	ServiceType    string  `json:"service_type"`
	NewPrice       float64 `json:"new_price"`
}

func (CompetitorPriceChanged) Kind() string { return KindCompetitorPriceChanged }

type CompetitorExitedMarket struct {
	CompetitorName string `json:"competitor_name"`
	Zone           string `json:"zone"`
}

func (CompetitorExitedMarket) Kind() string { return KindCompetitorExitedMarket }

type CommunicationSent struct {
	RecipientAgentID string `json:"recipient_agent_id"`
	Message          string `json:"message"`
	CorrelationID    string `json:"correlation_id"`
}

func (CommunicationSent) Kind() string { return KindCommunicationSent }

type CommunicationReceived struct {
	SenderAgentID string `json:"sender_agent_id"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
}

func (CommunicationReceived) Kind() string { return KindCommunicationReceived }

func init() {
	RegisterPayload(KindAgentCreated, func() Payload { return &AgentCreated{} })
	RegisterPayload(KindAgentRetired, func() Payload { return &AgentRetired{} })
	RegisterPayload(KindLocationOpened, func() Payload { return &LocationOpened{} })
	RegisterPayload(KindLocationClosed, func() Payload { return &LocationClosed{} })
	RegisterPayload(KindLocationListingAdded, func() Payload { return &LocationListingAdded{} })
	RegisterPayload(KindLocationListingRemoved, func() Payload { return &LocationListingRemoved{} })

	RegisterPayload(KindTimeAdvanced, func() Payload { return &TimeAdvanced{} })
	RegisterPayload(KindDailyRevenueProcessed, func() Payload { return &DailyRevenueProcessed{} })
	RegisterPayload(KindWeeklyFixedCostsBilled, func() Payload { return &WeeklyFixedCostsBilled{} })
	RegisterPayload(KindWeeklyWagesBilled, func() Payload { return &WeeklyWagesBilled{} })
	RegisterPayload(KindInterestAccrued, func() Payload { return &InterestAccrued{} })
	RegisterPayload(KindTaxLiabilityCalculated, func() Payload { return &TaxLiabilityCalculated{} })

	RegisterPayload(KindFundsTransferred, func() Payload { return &FundsTransferred{} })
	RegisterPayload(KindLoanTaken, func() Payload { return &LoanTaken{} })
	RegisterPayload(KindDebtPaymentProcessed, func() Payload { return &DebtPaymentProcessed{} })
	RegisterPayload(KindDefaultRecorded, func() Payload { return &DefaultRecorded{} })
	RegisterPayload(KindPriceSet, func() Payload { return &PriceSet{} })
	RegisterPayload(KindMarketingBoostApplied, func() Payload { return &MarketingBoostApplied{} })

	RegisterPayload(KindEquipmentPurchased, func() Payload { return &EquipmentPurchased{} })
	RegisterPayload(KindEquipmentSold, func() Payload { return &EquipmentSold{} })
	RegisterPayload(KindEquipmentRepaired, func() Payload { return &EquipmentRepaired{} })
	RegisterPayload(KindMachineWearUpdated, func() Payload { return &MachineWearUpdated{} })
	RegisterPayload(KindMachineStatusChanged, func() Payload { return &MachineStatusChanged{} })
	RegisterPayload(KindSuppliesAcquired, func() Payload { return &SuppliesAcquired{} })
	RegisterPayload(KindStockoutStarted, func() Payload { return &StockoutStarted{} })
	RegisterPayload(KindStockoutEnded, func() Payload { return &StockoutEnded{} })

	RegisterPayload(KindStaffHired, func() Payload { return &StaffHired{} })
	RegisterPayload(KindStaffFired, func() Payload { return &StaffFired{} })
	RegisterPayload(KindStaffQuit, func() Payload { return &StaffQuit{} })
	RegisterPayload(KindWageAdjusted, func() Payload { return &WageAdjusted{} })
	RegisterPayload(KindBenefitImplemented, func() Payload { return &BenefitImplemented{} })
	RegisterPayload(KindStaffMoraleChanged, func() Payload { return &StaffMoraleChanged{} })

	RegisterPayload(KindVendorTierPromoted, func() Payload { return &VendorTierPromoted{} })
	RegisterPayload(KindVendorTierDemoted, func() Payload { return &VendorTierDemoted{} })
	RegisterPayload(KindVendorPriceFluctuated, func() Payload { return &VendorPriceFluctuated{} })
	RegisterPayload(KindVendorNegotiationInitiated, func() Payload { return &VendorNegotiationInitiated{} })
	RegisterPayload(KindVendorNegotiationResult, func() Payload { return &VendorNegotiationResult{} })
	RegisterPayload(KindVendorTermsUpdated, func() Payload { return &VendorTermsUpdated{} })
	RegisterPayload(KindExclusiveContractSigned, func() Payload { return &ExclusiveContractSigned{} })
	RegisterPayload(KindVendorContractCancelled, func() Payload { return &VendorContractCancelled{} })
	RegisterPayload(KindDeliveryDisruptionStarted, func() Payload { return &DeliveryDisruptionStarted{} })
	RegisterPayload(KindDeliveryDisruptionEnded, func() Payload { return &DeliveryDisruptionEnded{} })

	RegisterPayload(KindSocialScoreAdjusted, func() Payload { return &SocialScoreAdjusted{} })
	RegisterPayload(KindScandalStarted, func() Payload { return &ScandalStarted{} })
	RegisterPayload(KindScandalMarkerDecayed, func() Payload { return &ScandalMarkerDecayed{} })
	RegisterPayload(KindDilemmaTriggered, func() Payload { return &DilemmaTriggered{} })
	RegisterPayload(KindDilemmaResolved, func() Payload { return &DilemmaResolved{} })
	RegisterPayload(KindCustomerReviewSubmitted, func() Payload { return &CustomerReviewSubmitted{} })
	RegisterPayload(KindLoyaltyMemberRegistered, func() Payload { return &LoyaltyMemberRegistered{} })
	RegisterPayload(KindCharityDonationMade, func() Payload { return &CharityDonationMade{} })
	RegisterPayload(KindEndOfTurnNotesSaved, func() Payload { return &EndOfTurnNotesSaved{} })
	RegisterPayload(KindAuditSnapshotRecorded, func() Payload { return &AuditSnapshotRecorded{} })

	RegisterPayload(KindRegulatoryFinding, func() Payload { return &RegulatoryFinding{} })
	RegisterPayload(KindRegulatoryStatusUpdated, func() Payload { return &RegulatoryStatusUpdated{} })
	RegisterPayload(KindFinePaid, func() Payload { return &FinePaidEvent{} })
	RegisterPayload(KindFineAppealed, func() Payload { return &FineAppealed{} })
	RegisterPayload(KindRegulatoryReportFiled, func() Payload { return &RegulatoryReportFiled{} })
	RegisterPayload(KindInvestigationStarted, func() Payload { return &InvestigationStarted{} })
	RegisterPayload(KindInvestigationStageAdvanced, func() Payload { return &InvestigationStageAdvanced{} })

	RegisterPayload(KindAllianceFormed, func() Payload { return &AllianceFormed{} })
	RegisterPayload(KindAllianceBreached, func() Payload { return &AllianceBreached{} })
	RegisterPayload(KindBuyoutProposed, func() Payload { return &BuyoutProposed{} })
	RegisterPayload(KindBuyoutAccepted, func() Payload { return &BuyoutAccepted{} })
	RegisterPayload(KindAgentAcquired, func() Payload { return &AgentAcquired{} })
	RegisterPayload(KindCompetitorPriceChanged, func() Payload { return &CompetitorPriceChanged{} })
	RegisterPayload(KindCompetitorExitedMarket, func() Payload { return &CompetitorExitedMarket{} })
	RegisterPayload(KindCommunicationSent, func() Payload { return &CommunicationSent{} })
	RegisterPayload(KindCommunicationReceived, func() Payload { return &CommunicationReceived{} })
}
