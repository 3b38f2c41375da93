// Package handlers contains the write-side command handlers. A handler
// validates a command against the current state and returns the events
// that record the decision; it never mutates state, touches I/O, or mints
// ids and timestamps (entity ids are derived deterministically from state,
// event ids are stamped by the engine).
package handlers

import (
	"sync"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

// Emission is one event to append. AgentID is empty for the command's own
// stream; mirror events on a counterpart's stream set it explicitly.
type Emission struct {
	AgentID string
	Payload event.Payload
}

// emit is shorthand for an own-stream emission.
func emit(p event.Payload) Emission { return Emission{Payload: p} }

// Func validates a command against a state snapshot and returns the
// resulting emissions, or a *command.ValidationError.
type Func func(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error)

// Deps carries the configuration constants handlers compute with.
type Deps struct {
	Econ config.EconomyConfig
	Reg  config.RegulationConfig
}

// Registry dispatches command kinds to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Func
}

// NewRegistry returns a registry preloaded with every core command handler.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Func)}
	registerCore(r)
	return r
}

// Register binds a handler to a command kind, replacing any previous one.
func (r *Registry) Register(kind string, h Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

// Handle dispatches. An unregistered kind is an UNKNOWN_COMMAND rejection,
// not a fatal error: agents may probe capabilities.
func (r *Registry) Handle(deps *Deps, s *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	r.mu.RLock()
	h, ok := r.handlers[cmd.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, command.Reject(command.ErrUnknownCommand, "no handler for command kind %q", cmd.Kind)
	}
	return h(deps, s, cmd)
}

func registerCore(r *Registry) {
	r.Register(command.KindSetPrice, handleSetPrice)
	r.Register(command.KindBuyEquipment, handleBuyEquipment)
	r.Register(command.KindSellEquipment, handleSellEquipment)
	r.Register(command.KindPerformMaintenance, handlePerformMaintenance)
	r.Register(command.KindFixMachine, handleFixMachine)
	r.Register(command.KindBuySupplies, handleBuySupplies)
	r.Register(command.KindHireStaff, handleHireStaff)
	r.Register(command.KindFireStaff, handleFireStaff)
	r.Register(command.KindAdjustStaffWage, handleAdjustStaffWage)
	r.Register(command.KindProvideBenefits, handleProvideBenefits)
	r.Register(command.KindTakeLoan, handleTakeLoan)
	r.Register(command.KindMakeDebtPayment, handleMakeDebtPayment)
	r.Register(command.KindInvestInMarketing, handleInvestInMarketing)
	r.Register(command.KindSubscribeLoyalty, handleSubscribeLoyalty)
	r.Register(command.KindOpenLocation, handleOpenLocation)
	r.Register(command.KindCloseLocation, handleCloseLocation)
	r.Register(command.KindNegotiateVendorDeal, handleNegotiateVendorDeal)
	r.Register(command.KindSignExclusiveContract, handleSignExclusiveContract)
	r.Register(command.KindCancelVendorContract, handleCancelVendorContract)
	r.Register(command.KindInitiateCharity, handleInitiateCharity)
	r.Register(command.KindResolveScandal, handleResolveScandal)
	r.Register(command.KindMakeEthicalChoice, handleMakeEthicalChoice)
	r.Register(command.KindFileRegulatoryReport, handleFileRegulatoryReport)
	r.Register(command.KindPayFine, handlePayFine)
	r.Register(command.KindFileAppeal, handleFileAppeal)
	r.Register(command.KindCommunicateToAgent, handleCommunicateToAgent)
	r.Register(command.KindEnterAlliance, handleEnterAlliance)
	r.Register(command.KindProposeBuyout, handleProposeBuyout)
	r.Register(command.KindAcceptBuyoutOffer, handleAcceptBuyoutOffer)
	r.Register(command.KindSaveEndOfTurnNotes, handleSaveNotes)
	r.Register(command.KindInjectWorldEvent, handleInjectWorldEvent)
}
