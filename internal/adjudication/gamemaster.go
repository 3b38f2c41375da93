// Package adjudication holds the observe-only actors of the simulation:
// the game master, which injects narrative events, and the regulator,
// which reacts to violations with consequence events. Neither ever mutates
// state directly; both return events for the engine to append.
package adjudication

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

// GameMaster injects colour into the world after each simulated day:
// reviews, vendor price drift, delivery trouble, competitor moves and
// ethical dilemmas. All draws come from a PRNG seeded by the agent id and
// the simulation clock, so a replay of the same history injects the same
// events.
type GameMaster struct {
	econ config.EconomyConfig
}

func NewGameMaster(econ config.EconomyConfig) *GameMaster {
	return &GameMaster{econ: econ}
}

// seededRNG derives the deterministic generator for one (agent, tick) pair.
func seededRNG(agentID string, week, day, counter int) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|%d", agentID, week, day, counter)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

var reviewTexts = map[int]string{
	1: "Half the machines were out of order and the place smelled off.",
	2: "Got my laundry done but the wait was long and the floor was grimy.",
	3: "Average laundromat. Does the job, nothing special.",
	4: "Clean machines and fair prices. I'll be back.",
	5: "Spotless, fast and friendly. Best laundromat in the neighborhood.",
}

// AfterDay returns the narrative events for the day just ticked. The state
// passed in is the post-tick fold.
func (gm *GameMaster) AfterDay(s *domain.AgentState) []*event.Event {
	rng := seededRNG(s.AgentID, s.Week, s.Day, 0)
	mk := func(p event.Payload) *event.Event {
		return event.New(s.AgentID, s.Week, s.Day, p)
	}

	var out []*event.Event
	for _, locID := range sortedKeys(s.Locations) {
		loc := s.Locations[locID]
		out = append(out, gm.locationEvents(rng, loc, mk)...)
	}
	out = append(out, gm.dilemmas(rng, s, mk)...)
	return out
}

func (gm *GameMaster) locationEvents(rng *rand.Rand, loc *domain.LocationState, mk func(event.Payload) *event.Event) []*event.Event {
	var out []*event.Event

	// Competitor price walk around the reference price.
	if rng.Float64() < 0.25 {
		price := gm.econ.ReferencePrice * (0.95 + rng.Float64()*0.10)
		out = append(out, mk(&event.CompetitorPriceChanged{
			LocationID:     loc.LocationID,
			CompetitorName: "SudsCo",
			ServiceType:    domain.ServiceStandardWash,
			NewPrice:       float64(int(price*100)) / 100,
		}))
	}

	// Customer review from the observable quality of the shop.
	if rng.Float64() < 0.30 {
		rating := gm.reviewRating(loc)
		out = append(out, mk(&event.CustomerReviewSubmitted{
			LocationID:   loc.LocationID,
			Rating:       rating,
			ReviewText:   reviewTexts[rating],
			SocialImpact: float64(rating-3) * 0.5,
		}))
	}

	for _, vendorID := range sortedKeys(loc.Vendors) {
		v := loc.Vendors[vendorID]
		switch {
		case !v.Disrupted && rng.Float64() < 0.05:
			types := []string{"DELAY", "PARTIAL_SHIPMENT", "QUALITY_ISSUE"}
			out = append(out, mk(&event.DeliveryDisruptionStarted{
				LocationID:     loc.LocationID,
				VendorID:       vendorID,
				DisruptionType: types[rng.Intn(len(types))],
				DurationDays:   2 + rng.Intn(3),
			}))
		case v.Disrupted && rng.Float64() < 0.50:
			out = append(out, mk(&event.DeliveryDisruptionEnded{
				LocationID: loc.LocationID,
				VendorID:   vendorID,
			}))
		case rng.Float64() < 0.15:
			drift := 0.90 + rng.Float64()*0.20
			out = append(out, mk(&event.VendorPriceFluctuated{
				LocationID:   loc.LocationID,
				VendorID:     vendorID,
				OldUnitPrice: v.UnitPrice,
				NewUnitPrice: float64(int(v.UnitPrice*drift*100)) / 100,
			}))
		}
	}
	return out
}

// reviewRating grades a location 1-5 from cleanliness, machine condition
// and price against the reference.
func (gm *GameMaster) reviewRating(loc *domain.LocationState) int {
	var conditionSum float64
	for _, m := range loc.Equipment {
		conditionSum += m.Condition
	}
	meanCondition := 50.0
	if len(loc.Equipment) > 0 {
		meanCondition = conditionSum / float64(len(loc.Equipment))
	}

	score := loc.Cleanliness*0.4 + meanCondition*0.4
	if own := loc.ActivePricing[domain.ServiceStandardWash]; own > 0 {
		value := domain.Clamp(gm.econ.ReferencePrice/own, 0.5, 1.5)
		score += value * 20 * 0.2 * 5 // value 0.5..1.5 -> 10..30 points
	}

	switch {
	case score >= 90:
		return 5
	case score >= 70:
		return 4
	case score >= 50:
		return 3
	case score >= 30:
		return 2
	default:
		return 1
	}
}

type dilemmaSpec struct {
	id          string
	description string
	options     map[string]domain.DilemmaOption
	triggered   func(s *domain.AgentState) bool
}

var dilemmaCatalog = []dilemmaSpec{
	{
		id:          "DIL_UNDOCUMENTED_CONTRACTOR",
		description: "A contractor offers renovations at half price, paid in cash, no paperwork.",
		options: map[string]domain.DilemmaOption{
			"accept": {Description: "Take the cheap deal", ImmediateCost: 500, SocialScoreImpact: -8, RegulatoryRisk: "HIGH"},
			"reject": {Description: "Decline and book a licensed crew", ImmediateCost: 1200, SocialScoreImpact: 3, RegulatoryRisk: "NONE"},
		},
		triggered: func(s *domain.AgentState) bool {
			return s.Cash > 20000 && len(s.ActiveDilemmas) == 0
		},
	},
	{
		id:          "DIL_CUT_CORNERS",
		description: "Skipping the scheduled deep-clean would save money while the press is already hostile.",
		options: map[string]domain.DilemmaOption{
			"cut_corners":        {Description: "Skip the clean, bank the savings", ImmediateCost: 0, SocialScoreImpact: -10, RegulatoryRisk: "MEDIUM"},
			"maintain_standards": {Description: "Pay for the full service", ImmediateCost: 400, SocialScoreImpact: 5, RegulatoryRisk: "NONE"},
		},
		triggered: func(s *domain.AgentState) bool {
			return len(s.ActiveScandals) >= 2 && len(s.ActiveDilemmas) == 0
		},
	},
}

func (gm *GameMaster) dilemmas(rng *rand.Rand, s *domain.AgentState, mk func(event.Payload) *event.Event) []*event.Event {
	var out []*event.Event
	for _, spec := range dilemmaCatalog {
		if _, active := s.ActiveDilemmas[spec.id]; active {
			continue
		}
		if !spec.triggered(s) || rng.Float64() >= 0.20 {
			continue
		}
		opts, _ := json.Marshal(spec.options)
		out = append(out, mk(&event.DilemmaTriggered{
			DilemmaID:   spec.id,
			Description: spec.description,
			OptionsJSON: string(opts),
		}))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
