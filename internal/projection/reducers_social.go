package projection

import (
	"encoding/json"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerSocial(r *Registry) {
	r.Register(event.KindSocialScoreAdjusted, reduceSocialScore)
	r.Register(event.KindScandalStarted, reduceScandalStarted)
	r.Register(event.KindScandalMarkerDecayed, reduceScandalDecayed)
	r.Register(event.KindDilemmaTriggered, reduceDilemmaTriggered)
	r.Register(event.KindDilemmaResolved, reduceDilemmaResolved)
	r.Register(event.KindCustomerReviewSubmitted, reduceCustomerReview)
	r.Register(event.KindLoyaltyMemberRegistered, reduceLoyaltyRegistered)
	r.Register(event.KindCharityDonationMade, reduceCharityDonation)
	r.Register(event.KindEndOfTurnNotesSaved, reduceNotesSaved)
	r.Register(event.KindAuditSnapshotRecorded, reduceAuditSnapshot)
}

func reduceSocialScore(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.SocialScoreAdjusted)
	if !ok {
		return payloadError(ev)
	}
	s.SocialScore = domain.Clamp(s.SocialScore+p.Delta, 0, 100)
	return nil
}

func reduceScandalStarted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.ScandalStarted)
	if !ok {
		return payloadError(ev)
	}
	s.ActiveScandals = append(s.ActiveScandals, &domain.ScandalMarker{
		ScandalID:     p.ScandalID,
		Description:   p.Description,
		Severity:      domain.Clamp(p.Severity, 0, 1),
		StartWeek:     ev.Week,
		DurationWeeks: p.DurationWeeks,
		DecayRate:     p.DecayRate,
	})
	return nil
}

func reduceScandalDecayed(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.ScandalMarkerDecayed)
	if !ok {
		return payloadError(ev)
	}
	if p.Expired || p.NewSeverity <= 0 {
		kept := s.ActiveScandals[:0]
		for _, sc := range s.ActiveScandals {
			if sc.ScandalID != p.ScandalID {
				kept = append(kept, sc)
			}
		}
		s.ActiveScandals = kept
		return nil
	}
	if sc := s.FindScandal(p.ScandalID); sc != nil {
		sc.Severity = p.NewSeverity
	}
	return nil
}

func reduceDilemmaTriggered(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DilemmaTriggered)
	if !ok {
		return payloadError(ev)
	}
	d := &domain.Dilemma{
		DilemmaID:     p.DilemmaID,
		Description:   p.Description,
		Options:       map[string]domain.DilemmaOption{},
		TriggeredWeek: ev.Week,
	}
	if p.OptionsJSON != "" {
		// Options travel as embedded JSON to keep the payload flat.
		_ = json.Unmarshal([]byte(p.OptionsJSON), &d.Options)
	}
	s.ActiveDilemmas[p.DilemmaID] = d
	return nil
}

func reduceDilemmaResolved(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DilemmaResolved)
	if !ok {
		return payloadError(ev)
	}
	delete(s.ActiveDilemmas, p.DilemmaID)
	return nil
}

func reduceCustomerReview(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.CustomerReviewSubmitted)
	if !ok {
		return payloadError(ev)
	}
	s.SocialScore = domain.Clamp(s.SocialScore+p.SocialImpact, 0, 100)
	return nil
}

func reduceLoyaltyRegistered(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.LoyaltyMemberRegistered)
	if !ok {
		return payloadError(ev)
	}
	s.LoyaltyMembers = p.NewTotal
	return nil
}

func reduceCharityDonation(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.CharityDonationMade)
	if !ok {
		return payloadError(ev)
	}
	s.SocialScore = domain.Clamp(s.SocialScore+p.SocialScoreBoost, 0, 100)
	return nil
}

func reduceNotesSaved(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.EndOfTurnNotesSaved)
	if !ok {
		return payloadError(ev)
	}
	s.PrivateNotes = append(s.PrivateNotes, p.Notes)
	return nil
}

func reduceAuditSnapshot(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.AuditSnapshotRecorded)
	if !ok {
		return payloadError(ev)
	}
	s.AuditEntriesCount++
	s.LastAuditEvent = p.SnapshotLabel
	return nil
}
