package handlers

import (
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

func handleInitiateCharity(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	cause, err := cmd.String("cause_name")
	if err != nil {
		return nil, err
	}
	amount, err := cmd.Float("amount")
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, command.Reject(command.ErrInvalidState, "donation amount must be positive")
	}
	if err := requireFunds(s, amount, "charity donation"); err != nil {
		return nil, err
	}

	boost := amount / deps.Econ.CharityDollarsPerPoint
	if boost > deps.Econ.CharitySocialCap {
		boost = deps.Econ.CharitySocialCap
	}

	return []Emission{
		emit(&event.CharityDonationMade{
			CauseName:        cause,
			DonationAmount:   amount,
			SocialScoreBoost: boost,
		}),
		emit(&event.FundsTransferred{
			Amount:          amount,
			TransactionType: event.TxnExpense,
			Description:     "Charity donation: " + cause,
		}),
	}, nil
}

// Scandal resolution buys down the marker; price scales with severity.
const scandalResolutionCostPerSeverity = 1000.0

func handleResolveScandal(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	scandalID, err := cmd.String("scandal_id")
	if err != nil {
		return nil, err
	}
	sc := s.FindScandal(scandalID)
	if sc == nil {
		return nil, command.Reject(command.ErrInvalidState, "no active scandal %s", scandalID)
	}

	cost := sc.Severity * scandalResolutionCostPerSeverity
	if err := requireFunds(s, cost, "scandal resolution"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.ScandalMarkerDecayed{
			ScandalID:   scandalID,
			NewSeverity: 0,
			Expired:     true,
		}),
		emit(&event.FundsTransferred{
			Amount:          cost,
			TransactionType: event.TxnExpense,
			Description:     "PR campaign resolving scandal " + scandalID,
		}),
	}, nil
}

const (
	ethicalChoiceBoost    = 10.0
	unethicalChoicePenalty = 5.0
)

func handleMakeEthicalChoice(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	dilemmaID, err := cmd.String("dilemma_id")
	if err != nil {
		return nil, err
	}
	d := s.ActiveDilemmas[dilemmaID]
	if d == nil {
		return nil, command.Reject(command.ErrInvalidState, "no active dilemma %s", dilemmaID)
	}
	optionKey, err := cmd.String("option")
	if err != nil {
		return nil, err
	}
	opt, ok := d.Options[optionKey]
	if !ok {
		return nil, command.Reject(command.ErrInvalidState,
			"dilemma %s has no option %q", dilemmaID, optionKey)
	}

	ethical := opt.SocialScoreImpact >= 0
	delta := ethicalChoiceBoost
	if !ethical {
		delta = -unethicalChoicePenalty
	}

	out := []Emission{
		emit(&event.DilemmaResolved{
			DilemmaID:     dilemmaID,
			ChosenOption:  optionKey,
			EthicalChoice: ethical,
			ImmediateCost: opt.ImmediateCost,
		}),
		emit(&event.SocialScoreAdjusted{
			Delta:  delta,
			Reason: "Dilemma " + dilemmaID + " resolved: " + optionKey,
		}),
	}
	if opt.ImmediateCost > 0 {
		if err := requireFunds(s, opt.ImmediateCost, "dilemma option"); err != nil {
			return nil, err
		}
		out = append(out, emit(&event.FundsTransferred{
			Amount:          opt.ImmediateCost,
			TransactionType: event.TxnExpense,
			Description:     "Cost of dilemma option " + optionKey,
		}))
	}
	return out, nil
}

const (
	reportSocialBoost = 2.0
	reportFilingFee   = 100.0
	appealFilingFee   = 250.0
)

func handleFileRegulatoryReport(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	reportType, err := cmd.String("report_type")
	if err != nil {
		return nil, err
	}
	if err := requireFunds(s, reportFilingFee, "report filing"); err != nil {
		return nil, err
	}
	return []Emission{
		emit(&event.RegulatoryReportFiled{
			ReportType:       reportType,
			SocialScoreBoost: reportSocialBoost,
		}),
		emit(&event.FundsTransferred{
			Amount:          reportFilingFee,
			TransactionType: event.TxnExpense,
			Description:     "Filed " + reportType + " report",
		}),
	}, nil
}

func handlePayFine(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	fineID, err := cmd.String("fine_id")
	if err != nil {
		return nil, err
	}
	f := s.FindFine(fineID)
	if f == nil {
		return nil, command.Reject(command.ErrInvalidState, "no fine %s on record", fineID)
	}
	if f.Status != domain.FineOpen {
		return nil, command.Reject(command.ErrInvalidState,
			"fine %s is %s, not open", fineID, f.Status)
	}
	if f.Amount > s.Cash {
		return nil, command.Reject(command.ErrInsufficientFunds,
			"fine %.2f exceeds cash %.2f", f.Amount, s.Cash)
	}

	return []Emission{
		emit(&event.FinePaidEvent{FineID: fineID, AmountPaid: f.Amount}),
		emit(&event.FundsTransferred{
			Amount:          f.Amount,
			TransactionType: event.TxnFine,
			Description:     "Paid fine " + fineID,
		}),
	}, nil
}

func handleFileAppeal(_ *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	fineID, err := cmd.String("fine_id")
	if err != nil {
		return nil, err
	}
	f := s.FindFine(fineID)
	if f == nil {
		return nil, command.Reject(command.ErrInvalidState, "no fine %s on record", fineID)
	}
	if f.Status != domain.FineOpen {
		return nil, command.Reject(command.ErrInvalidState,
			"fine %s is %s, only open fines can be appealed", fineID, f.Status)
	}
	grounds, err := cmd.String("grounds")
	if err != nil {
		return nil, err
	}
	if err := requireFunds(s, appealFilingFee, "appeal filing"); err != nil {
		return nil, err
	}

	return []Emission{
		emit(&event.FineAppealed{
			FineID:        fineID,
			AppealGrounds: grounds,
		}),
		emit(&event.FundsTransferred{
			Amount:          appealFilingFee,
			TransactionType: event.TxnExpense,
			Description:     "Appeal filed on fine " + fineID,
		}),
	}, nil
}

func handleSaveNotes(_ *Deps, _ *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	notes, err := cmd.String("notes")
	if err != nil {
		return nil, err
	}
	return []Emission{emit(&event.EndOfTurnNotesSaved{Notes: notes})}, nil
}
