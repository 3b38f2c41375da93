package projection

import (
	"fmt"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func registerFinance(r *Registry) {
	r.Register(event.KindFundsTransferred, reduceFundsTransferred)
	r.Register(event.KindLoanTaken, reduceLoanTaken)
	r.Register(event.KindDebtPaymentProcessed, reduceDebtPayment)
	r.Register(event.KindDefaultRecorded, reduceDefaultRecorded)
	r.Register(event.KindPriceSet, reducePriceSet)
	r.Register(event.KindMarketingBoostApplied, reduceMarketingBoost)
}

// reduceFundsTransferred is the only reducer that moves cash. The sign is
// determined by the transaction type, never by the caller.
func reduceFundsTransferred(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.FundsTransferred)
	if !ok {
		return payloadError(ev)
	}
	switch p.TransactionType {
	case event.TxnRevenue, event.TxnLoan, event.TxnRefund:
		s.Cash += p.Amount
	case event.TxnExpense, event.TxnPayment, event.TxnFine, event.TxnPenalty:
		s.Cash -= p.Amount
	default:
		return fmt.Errorf("unknown transaction type %q", p.TransactionType)
	}
	return nil
}

func reduceLoanTaken(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.LoanTaken)
	if !ok {
		return payloadError(ev)
	}
	s.Loans = append(s.Loans, &domain.Loan{
		LoanID:      p.LoanID,
		Kind:        domain.LoanKind(p.LoanKind),
		Principal:   p.Principal,
		Outstanding: p.Principal,
		AnnualRate:  p.InterestRate,
		TermWeeks:   p.TermWeeks,
		TakenWeek:   ev.Week,
	})
	s.TotalDebt += p.Principal
	s.LoanSeq++
	if domain.LoanKind(p.LoanKind) == domain.LoanLOC {
		s.CreditBalance += p.Principal
	}
	return nil
}

func reduceDebtPayment(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DebtPaymentProcessed)
	if !ok {
		return payloadError(ev)
	}
	loan := s.FindLoan(p.LoanID)
	if loan == nil {
		return fmt.Errorf("loan %s not in state", p.LoanID)
	}

	loan.Outstanding = p.NewOutstanding
	s.TotalDebt -= p.PaymentAmount
	if s.TotalDebt < 0 {
		s.TotalDebt = 0
	}
	if loan.Kind == domain.LoanLOC {
		s.CreditBalance -= p.PaymentAmount
		if s.CreditBalance < 0 {
			s.CreditBalance = 0
		}
	}
	if p.LoanRetired {
		kept := s.Loans[:0]
		for _, l := range s.Loans {
			if l.LoanID != p.LoanID {
				kept = append(kept, l)
			}
		}
		s.Loans = kept
	}
	return nil
}

func reduceDefaultRecorded(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.DefaultRecorded)
	if !ok {
		return payloadError(ev)
	}
	if loan := s.FindLoan(p.LoanID); loan != nil {
		loan.Defaulted = true
	}
	s.CreditRating += p.CreditRatingDelta
	if s.CreditRating < 0 {
		s.CreditRating = 0
	}
	if s.CreditRating > 100 {
		s.CreditRating = 100
	}
	return nil
}

func reducePriceSet(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.PriceSet)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.ActivePricing[p.ServiceType] = p.NewPrice
	return nil
}

func reduceMarketingBoost(s *domain.AgentState, ev *event.Event) error {
	p, ok := ev.Payload.(*event.MarketingBoostApplied)
	if !ok {
		return payloadError(ev)
	}
	loc, err := location(s, p.LocationID)
	if err != nil {
		return err
	}
	loc.Marketing = &domain.MarketingBoost{
		CampaignType:   p.CampaignType,
		Boost:          p.CustomerAttractionBoost,
		RemainingWeeks: p.DurationWeeks,
	}
	return nil
}
