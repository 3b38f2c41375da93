package projection

import (
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerRegulatory(r *Registry) {
	r.Register(event.KindRegulatoryFinding, reduceRegulatoryFinding)
	r.Register(event.KindRegulatoryStatusUpdated, reduceRegulatoryStatus)
	r.Register(event.KindFinePaid, reduceFinePaid)
	r.Register(event.KindFineAppealed, reduceFineAppealed)
	r.Register(event.KindRegulatoryReportFiled, reduceReportFiled)
	r.Register(event.KindInvestigationStarted, reduceInvestigationStarted)
	r.Register(event.KindInvestigationStageAdvanced, reduceInvestigationStage)
}

func reduceRegulatoryFinding(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.RegulatoryFinding)
	if !ok {
		return payloadError(ev)
	}
	s.PendingFines = append(s.PendingFines, &domain.Fine{
		FineID:      p.FineID,
		Description: p.Description,
		Amount:      p.FineAmount,
		IssuedWeek:  ev.Week,
		DueWeek:     p.DueWeek,
		Status:      domain.FineOpen,
	})
	return nil
}

func reduceRegulatoryStatus(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.RegulatoryStatusUpdated)
	if !ok {
		return payloadError(ev)
	}
	s.RegulatoryStatus = domain.RegulatoryStatus(p.NewStatus)
	return nil
}

func reduceFinePaid(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.FinePaidEvent)
	if !ok {
		return payloadError(ev)
	}
	if f := s.FindFine(p.FineID); f != nil {
		f.Status = domain.FinePaid
	}
	return nil
}

func reduceFineAppealed(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.FineAppealed)
	if !ok {
		return payloadError(ev)
	}
	if f := s.FindFine(p.FineID); f != nil {
		f.Status = domain.FineAppealed
	}
	return nil
}

func reduceReportFiled(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.RegulatoryReportFiled)
	if !ok {
		return payloadError(ev)
	}
	s.SocialScore = domain.Clamp(s.SocialScore+p.SocialScoreBoost, 0, 100)
	return nil
}

func reduceInvestigationStarted(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.InvestigationStarted)
	if !ok {
		return payloadError(ev)
	}
	s.Investigations[p.InvestigationID] = &domain.Investigation{
		InvestigationID: p.InvestigationID,
		Reason:          p.Reason,
		Severity:        p.Severity,
		Stage:           "OPENED",
		StartedWeek:     ev.Week,
	}
	return nil
}

func reduceInvestigationStage(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.InvestigationStageAdvanced)
	if !ok {
		return payloadError(ev)
	}
	if inv := s.Investigations[p.InvestigationID]; inv != nil {
		if p.NewStage == "CLOSED" {
			delete(s.Investigations, p.InvestigationID)
		} else {
			inv.Stage = p.NewStage
		}
	}
	return nil
}
