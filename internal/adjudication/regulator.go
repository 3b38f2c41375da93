package adjudication

import (
	"fmt"
	"math"

	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
	"github.com/laundrosim/backend/internal/journal"
)

// Regulator inspects freshly appended events and answers with consequence
// events. It runs inside the engine's per-agent critical section so its
// verdicts land atomically with the behavior that triggered them. Every
// consequence carries a trigger signature; a signature already present in
// the trailing window of the stream is never re-issued, so replaying a
// history cannot pile up duplicate penalties.
type Regulator struct {
	econ config.EconomyConfig
	reg  config.RegulationConfig
}

func NewRegulator(econ config.EconomyConfig, reg config.RegulationConfig) *Regulator {
	return &Regulator{econ: econ, reg: reg}
}

var statusRank = map[domain.RegulatoryStatus]int{
	domain.RegNormal:             0,
	domain.RegWarning:            1,
	domain.RegUnderInvestigation: 2,
	domain.RegPenalized:          3,
}

// Inspect reviews the appended events against the post-append state and
// the trailing window of the agent's stream.
func (r *Regulator) Inspect(s *domain.AgentState, appended []*event.Event, tail []journal.Record) []*event.Event {
	seen := collectSignatures(tail)
	mk := func(p event.Payload) *event.Event {
		return event.New(s.AgentID, s.Week, s.Day, p)
	}

	var out []*event.Event
	emit := func(sig string, ev *event.Event) {
		if seen[sig] {
			return
		}
		seen[sig] = true
		out = append(out, ev)
	}

	highestNeeded := s.RegulatoryStatus

	for _, ev := range appended {
		switch p := ev.Payload.(type) {
		case *event.PriceSet:
			threshold := r.reg.PredatoryFraction * r.econ.CostPerLoad
			if p.NewPrice >= threshold {
				continue
			}
			sig := fmt.Sprintf("PREDATORY:%s:%s:%.2f:W%d", p.LocationID, p.ServiceType, p.NewPrice, ev.Week)
			emit(sig, mk(&event.RegulatoryFinding{
				FineID:        "FINE_" + sig,
				ViolationType: "PREDATORY_PRICING",
				Description: fmt.Sprintf("Price %.2f for %s at %s is below the predatory threshold %.2f",
					p.NewPrice, p.ServiceType, p.LocationID, threshold),
				FineAmount:       r.reg.PredatoryFine,
				DueWeek:          ev.Week + r.reg.FineDueWeeks,
				TriggerSignature: sig,
			}))
			if statusRank[domain.RegWarning] > statusRank[highestNeeded] {
				highestNeeded = domain.RegWarning
			}

		case *event.StaffHired:
			if p.HourlyRate >= r.reg.WageFloor {
				continue
			}
			sig := fmt.Sprintf("LABOR:%s:%s:%.2f:W%d", p.LocationID, p.StaffID, p.HourlyRate, ev.Week)
			emit(sig, mk(r.laborFinding(sig, p.HourlyRate, ev.Week)))

		case *event.WageAdjusted:
			if p.NewRate >= r.reg.WageFloor {
				continue
			}
			sig := fmt.Sprintf("LABOR:%s:%s:%.2f:W%d", p.LocationID, p.StaffID, p.NewRate, ev.Week)
			emit(sig, mk(r.laborFinding(sig, p.NewRate, ev.Week)))

		case *event.CommunicationSent:
			if sig, suspicious := r.collusionSignature(s, p, ev, tail); suspicious {
				emit(sig, mk(&event.InvestigationStarted{
					InvestigationID:  "INV_" + sig,
					Reason:           "Suspicious communication pattern combined with aligned pricing",
					Severity:         "MEDIUM",
					TriggerSignature: sig,
				}))
				if statusRank[domain.RegUnderInvestigation] > statusRank[highestNeeded] {
					highestNeeded = domain.RegUnderInvestigation
				}
			}
		}
	}

	if s.TotalScandalSeverity() > r.reg.ScandalSeverityCap {
		if statusRank[domain.RegUnderInvestigation] > statusRank[highestNeeded] {
			highestNeeded = domain.RegUnderInvestigation
		}
	}

	if statusRank[highestNeeded] > statusRank[s.RegulatoryStatus] {
		sig := fmt.Sprintf("STATUS:%s:W%d", highestNeeded, s.Week)
		emit(sig, mk(&event.RegulatoryStatusUpdated{
			NewStatus:        string(highestNeeded),
			Reason:           "Escalated after review of recent activity",
			TriggerSignature: sig,
		}))
	}
	return out
}

func (r *Regulator) laborFinding(sig string, rate float64, week int) *event.RegulatoryFinding {
	return &event.RegulatoryFinding{
		FineID:        "FINE_" + sig,
		ViolationType: "LABOR_VIOLATION",
		Description: fmt.Sprintf("Hourly rate %.2f is below the statutory floor %.2f",
			rate, r.reg.WageFloor),
		FineAmount:       r.reg.LaborFine,
		DueWeek:          week + r.reg.FineDueWeeks,
		TriggerSignature: sig,
	}
}

// collusionSignature flags a message when it is either very long or part
// of a burst to the same counterpart, while the sender's standard price
// sits within the collusion band of the last observed competitor price.
func (r *Regulator) collusionSignature(s *domain.AgentState, p *event.CommunicationSent, ev *event.Event, tail []journal.Record) (string, bool) {
	longMessage := len(p.Message) > 280

	recent := 0
	for _, rec := range tail {
		sent, ok := rec.Event.Payload.(*event.CommunicationSent)
		if !ok || sent.RecipientAgentID != p.RecipientAgentID {
			continue
		}
		if ev.Week-rec.Event.Week <= r.reg.CollusionWindowWeek {
			recent++
		}
	}
	burst := recent >= r.reg.CollusionMsgLimit

	if !longMessage && !burst {
		return "", false
	}

	aligned := false
	for _, loc := range s.Locations {
		own := loc.ActivePricing[domain.ServiceStandardWash]
		comp := loc.CompetitorPrices[domain.ServiceStandardWash]
		if own > 0 && comp > 0 && math.Abs(own-comp)/comp <= r.reg.CollusionPriceBand {
			aligned = true
			break
		}
	}
	if !aligned {
		return "", false
	}

	return fmt.Sprintf("COLLUSION:%s:%s:W%d", s.AgentID, p.RecipientAgentID, ev.Week), true
}

// collectSignatures gathers every trigger signature already present in the
// trailing window.
func collectSignatures(tail []journal.Record) map[string]bool {
	seen := make(map[string]bool)
	for _, rec := range tail {
		switch p := rec.Event.Payload.(type) {
		case *event.RegulatoryFinding:
			seen[p.TriggerSignature] = true
		case *event.RegulatoryStatusUpdated:
			seen[p.TriggerSignature] = true
		case *event.InvestigationStarted:
			seen[p.TriggerSignature] = true
		}
	}
	return seen
}
