package handlers

import (
	"encoding/json"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

// Sources allowed to inject world events, and the kinds they may inject.
// Agents can never reach this command: their driver sets Source to AGENT.
var injectSources = map[string]bool{"GM": true, "JUDGE": true}

var injectableKinds = map[string]bool{
	event.KindScandalStarted:            true,
	event.KindCompetitorPriceChanged:    true,
	event.KindCompetitorExitedMarket:    true,
	event.KindDeliveryDisruptionStarted: true,
	event.KindDeliveryDisruptionEnded:   true,
	event.KindVendorPriceFluctuated:     true,
	event.KindCustomerReviewSubmitted:   true,
	event.KindDilemmaTriggered:          true,
	event.KindLocationListingAdded:      true,
	event.KindLocationListingRemoved:    true,
}

// handleInjectWorldEvent lets the game master or judge place a narrative
// fact onto an agent's stream. The payload carries the target event kind
// and its fields; both are validated against the allow-lists above.
func handleInjectWorldEvent(_ *Deps, _ *domain.AgentState, cmd *command.Command) ([]Emission, error) {
	if !injectSources[cmd.Source] {
		return nil, command.Reject(command.ErrInvalidState,
			"source %q may not inject world events", cmd.Source)
	}
	kind, err := cmd.String("event_kind")
	if err != nil {
		return nil, err
	}
	if !injectableKinds[kind] {
		return nil, command.Reject(command.ErrInvalidState,
			"event kind %q is not injectable", kind)
	}

	params, _ := cmd.Payload["params"].(map[string]interface{})
	body, err := json.Marshal(params)
	if err != nil {
		return nil, command.Reject(command.ErrInvalidState, "malformed params: %v", err)
	}
	payload, err := event.NewPayload(kind)
	if err != nil {
		return nil, command.Reject(command.ErrInvalidState, "%v", err)
	}
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, command.Reject(command.ErrInvalidState,
			"params do not fit %s: %v", kind, err)
	}

	return []Emission{emit(payload)}, nil
}
