// Command simulate runs a scripted solo playthrough against an in-memory
// journal. Useful for eyeballing the economy without standing up the server.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/engine"
	"github.com/laundrosim/backend/internal/journal"
)

const agentID = "agent-demo-01"

func main() {
	ctx := context.Background()
	cfg := config.Default()
	eng := engine.New(cfg, journal.NewMemory())

	fmt.Println("🧺 LaundroSim scripted run")

	res, err := eng.CreateAgent(ctx, agentID, "Suds & Duds")
	if err != nil || !res.OK {
		log.Fatalf("create agent: %v %+v", err, res)
	}
	fmt.Printf("✅ Agent created with %d starting events\n", len(res.Events))

	run(ctx, eng, "buy two more washers", &command.Command{
		Kind: command.KindBuyEquipment, AgentID: agentID,
		Payload: map[string]interface{}{
			"location_id": "LOC_001", "machine_kind": "WASHER", "quantity": 2,
		},
	})

	run(ctx, eng, "hire an attendant", &command.Command{
		Kind: command.KindHireStaff, AgentID: agentID,
		Payload: map[string]interface{}{
			"location_id": "LOC_001", "staff_name": "Dana", "role": "ATTENDANT", "hourly_rate": 15.0,
		},
	})

	run(ctx, eng, "set wash price to $4.00", &command.Command{
		Kind: command.KindSetPrice, AgentID: agentID,
		Payload: map[string]interface{}{
			"location_id": "LOC_001", "service_type": "StandardWash", "new_price": 4.0,
		},
	})

	run(ctx, eng, "launch a marketing push", &command.Command{
		Kind: command.KindInvestInMarketing, AgentID: agentID,
		Payload: map[string]interface{}{
			"location_id": "LOC_001", "campaign_type": "FLYERS",
		},
	})

	for week := 1; week <= 4; week++ {
		res, err := eng.AdvanceTime(ctx, agentID, 7)
		if err != nil {
			log.Fatalf("advance week %d: %v", week, err)
		}
		state, err := eng.CurrentState(ctx, agentID)
		if err != nil {
			log.Fatalf("state: %v", err)
		}
		fmt.Printf("📅 Week %d complete: %d events, cash $%.2f, social %.0f\n",
			state.Week, len(res.Events), state.Cash, state.SocialScore)
	}

	state, err := eng.CurrentState(ctx, agentID)
	if err != nil {
		log.Fatalf("state: %v", err)
	}
	fmt.Println("\n🏁 Final standings")
	fmt.Printf("   Cash:          $%.2f\n", state.Cash)
	fmt.Printf("   Credit used:   $%.2f of $%.2f\n", state.CreditBalance, state.CreditLimit)
	fmt.Printf("   Social score:  %.0f\n", state.SocialScore)
	fmt.Printf("   Reg status:    %s\n", state.RegulatoryStatus)
	fmt.Printf("   Loyalty:       %d members\n", state.LoyaltyMembers)
	for _, loc := range state.Locations {
		fmt.Printf("   %s: %d machines, cleanliness %.0f\n",
			loc.LocationID, len(loc.Equipment), loc.Cleanliness)
	}
}

func run(ctx context.Context, eng *engine.Engine, what string, cmd *command.Command) {
	res, err := eng.ExecuteCommand(ctx, cmd)
	if err != nil {
		log.Fatalf("%s: %v", what, err)
	}
	if !res.OK {
		fmt.Printf("❌ %s rejected: %s (%s)\n", what, res.Message, res.ErrorKind)
		return
	}
	fmt.Printf("✅ %s (%d events)\n", what, len(res.Events))
}
