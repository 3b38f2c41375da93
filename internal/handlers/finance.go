package handlers

import (
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func handleTakeLoan(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loanKind, err := cmd.String("loan_kind")
	if err != nil {
		return nil, err
	}
	product, ok := deps.Econ.LoanProducts[loanKind]
	if !ok {
		return nil, command.Reject(command.ErrInvalidState, "unknown loan kind %q", loanKind)
	}
	amount, err := cmd.Float("amount")
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "loan amount must be positive")
	}
	if s.CreditRating < product.CreditFloor {
		return nil, command.Reject(command.ErrCreditError,
			"credit rating %d below %s floor %d", s.CreditRating, loanKind, product.CreditFloor)
	}
	if domain.LoanKind(loanKind) == domain.LoanLOC {
		available := s.CreditLimit - s.CreditBalance
		if amount > available {
			return nil, command.Reject(command.ErrCreditError,
				"draw %.2f exceeds remaining line of credit %.2f", amount, available)
		}
	}
	// A location_id may ride along on the payload; it has no effect on the
	// loan and is deliberately ignored.

	return []Emission{
		emit(&event.LoanTaken{
			LoanID:       nextLoanID(s),
			LoanKind:     loanKind,
			Principal:    amount,
			InterestRate: product.AnnualRate,
			TermWeeks:    product.TermWeeks,
		}),
		emit(&event.FundsTransferred{
			Amount:          amount,
			TransactionType: event.TxnLoan,
			Description:     loanKind + " loan disbursement",
		}),
	}, nil
}

func handleMakeDebtPayment(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	loanID, err := cmd.String("loan_id")
	if err != nil {
		return nil, err
	}
	loan := s.FindLoan(loanID)
	if loan == nil {
		return nil, command.Reject(command.ErrInvalidState, "no outstanding loan %s", loanID)
	}
	amount, err := cmd.Float("amount")
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "payment amount must be positive")
	}
	if amount > s.Cash {
		return nil, command.Reject(command.ErrInsufficientFunds,
			"payment %.2f exceeds cash %.2f", amount, s.Cash)
	}
	if amount > loan.Outstanding {
		return nil, command.Reject(command.ErrInvalidState,
			"payment %.2f exceeds outstanding balance %.2f", amount, loan.Outstanding)
	}

	newOutstanding := loan.Outstanding - amount
	return []Emission{
		emit(&event.DebtPaymentProcessed{
			LoanID:         loanID,
			PaymentAmount:  amount,
			NewOutstanding: newOutstanding,
			LoanRetired:    newOutstanding == 0,
		}),
		emit(&event.FundsTransferred{
			Amount:          amount,
			TransactionType: event.TxnPayment,
			Description:     "Debt payment on " + loanID,
		}),
	}, nil
}
