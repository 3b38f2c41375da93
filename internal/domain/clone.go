package domain

// Clone returns a deep copy of the agent state. The projection layer clones
// before applying each event so callers can never alias a snapshot into the
// fold's working state.
func (s *AgentState) Clone() *AgentState {
	if s == nil {
		return nil
	}
	out := *s

	out.Loans = make([]*Loan, len(s.Loans))
	for i, l := range s.Loans {
		cp := *l
		out.Loans[i] = &cp
	}

	out.ActiveScandals = make([]*ScandalMarker, len(s.ActiveScandals))
	for i, sc := range s.ActiveScandals {
		cp := *sc
		out.ActiveScandals[i] = &cp
	}

	out.ActiveAlliances = make([]*Alliance, len(s.ActiveAlliances))
	for i, a := range s.ActiveAlliances {
		cp := *a
		out.ActiveAlliances[i] = &cp
	}

	out.PendingBuyouts = make(map[string]*BuyoutOffer, len(s.PendingBuyouts))
	for k, o := range s.PendingBuyouts {
		cp := *o
		out.PendingBuyouts[k] = &cp
	}

	out.PendingFines = make([]*Fine, len(s.PendingFines))
	for i, f := range s.PendingFines {
		cp := *f
		out.PendingFines[i] = &cp
	}

	out.ActiveDilemmas = make(map[string]*Dilemma, len(s.ActiveDilemmas))
	for k, d := range s.ActiveDilemmas {
		cp := *d
		cp.Options = make(map[string]DilemmaOption, len(d.Options))
		for ok, ov := range d.Options {
			cp.Options[ok] = ov
		}
		out.ActiveDilemmas[k] = &cp
	}

	out.Investigations = make(map[string]*Investigation, len(s.Investigations))
	for k, inv := range s.Investigations {
		cp := *inv
		out.Investigations[k] = &cp
	}

	out.Listings = make(map[string]*Listing, len(s.Listings))
	for k, l := range s.Listings {
		cp := *l
		out.Listings[k] = &cp
	}

	out.PrivateNotes = append([]string(nil), s.PrivateNotes...)

	out.Locations = make(map[string]*LocationState, len(s.Locations))
	for k, loc := range s.Locations {
		out.Locations[k] = loc.Clone()
	}

	return &out
}

// Clone returns a deep copy of the location.
func (l *LocationState) Clone() *LocationState {
	if l == nil {
		return nil
	}
	out := *l

	out.Equipment = make(map[string]*MachineState, len(l.Equipment))
	for k, m := range l.Equipment {
		cp := *m
		out.Equipment[k] = &cp
	}

	out.Staff = make(map[string]*StaffMember, len(l.Staff))
	for k, st := range l.Staff {
		cp := *st
		cp.Benefits = append([]string(nil), st.Benefits...)
		out.Staff[k] = &cp
	}

	out.ActivePricing = make(map[string]float64, len(l.ActivePricing))
	for k, v := range l.ActivePricing {
		out.ActivePricing[k] = v
	}

	if l.CompetitorPrices != nil {
		out.CompetitorPrices = make(map[string]float64, len(l.CompetitorPrices))
		for k, v := range l.CompetitorPrices {
			out.CompetitorPrices[k] = v
		}
	}

	out.Vendors = make(map[string]*VendorRelationship, len(l.Vendors))
	for k, v := range l.Vendors {
		cp := *v
		cp.PaymentHistory = append([]PaymentRecord(nil), v.PaymentHistory...)
		out.Vendors[k] = &cp
	}

	if l.Marketing != nil {
		cp := *l.Marketing
		out.Marketing = &cp
	}

	return &out
}
