package game

import (
	"strings"

	"github.com/google/uuid"
)

// CardTemplate describes one printed card: the catalog produces Count physical
// instances of it per deck.
type CardTemplate struct {
	Identifier string
	Name       string
	Kind       CardKind
	Color      string
	Image      string
	Count      int
	Meta       CardMeta
}

// Display colors by kind, matching the printed deck.
var kindColors = map[CardKind]string{
	KindNeutral:         "#111111",
	KindAttemptTakedown: "#111111",
	KindTop:             "#1e6fd0",
	KindBottom:          "#28a745",
	KindTripod:          "#28a745",
	KindSitOut:          "#28a745",
	KindCounter:         "#f08a24",
	KindBloodTime:       "#d0021b",
	KindPenalty:         "#74c045",
	KindStalling:        "#d19b00",
	KindOutOfBounds:     "#808080",
	KindEndOfPeriod:     "#7a3db5",
	KindPin:             "#ffffff",
	KindBonus:           "#555555",
}

// ClassifyIdentifier maps a deck-list identifier to its card kind and metadata.
// Identifiers are prefixed by the position they are played from; a handful of
// substrings override the prefix (pins, tripods, sit-outs, attempted takedowns).
// Anything unmatched falls into the miscellaneous BONUS bucket.
func ClassifyIdentifier(identifier string) (CardKind, CardMeta) {
	id := identifier

	switch {
	case strings.HasPrefix(id, "neutral_"):
		if strings.Contains(id, "attempted_takedown") {
			return KindAttemptTakedown, CardMeta{DoesNotChangePosition: true}
		}
		if strings.Contains(id, "to_pin") {
			return KindPin, CardMeta{EndsGame: true}
		}
		return KindNeutral, CardMeta{}

	case strings.HasPrefix(id, "top_"):
		if strings.Contains(id, "to_pin") {
			return KindPin, CardMeta{EndsGame: true}
		}
		return KindTop, CardMeta{}

	case strings.HasPrefix(id, "bottom_"):
		if strings.Contains(id, "tripod") {
			return KindTripod, CardMeta{DoesNotChangePosition: true}
		}
		if strings.Contains(id, "sit_out_no_change_of_position") {
			return KindSitOut, CardMeta{DoesNotChangePosition: true}
		}
		if strings.Contains(id, "sit_out") {
			return KindSitOut, CardMeta{}
		}
		if strings.Contains(id, "to_pin") {
			return KindPin, CardMeta{EndsGame: true}
		}
		return KindBottom, CardMeta{}

	case strings.HasPrefix(id, "counter_"):
		return KindCounter, CardMeta{}
	}

	switch id {
	case "blood_time":
		return KindBloodTime, CardMeta{}
	case "stalling":
		return KindStalling, CardMeta{}
	case "out_of_bounds":
		return KindOutOfBounds, CardMeta{}
	case "penalty":
		return KindPenalty, CardMeta{}
	case "end_of_period":
		return KindEndOfPeriod, CardMeta{}
	}

	return KindBonus, CardMeta{}
}

// DefaultTemplates returns the fixed manifest of the printed 50-card deck.
func DefaultTemplates() []CardTemplate {
	tpl := func(identifier, name string, count int) CardTemplate {
		kind, meta := ClassifyIdentifier(identifier)
		return CardTemplate{
			Identifier: identifier,
			Name:       name,
			Kind:       kind,
			Color:      kindColors[kind],
			Image:      "/img/cards/" + strings.ReplaceAll(identifier, "_", "-") + ".svg",
			Count:      count,
			Meta:       meta,
		}
	}

	return []CardTemplate{
		tpl("end_of_period", "End of Period", 2),
		tpl("out_of_bounds", "Out of Bounds", 2),
		tpl("blood_time", "Blood Time", 2),
		tpl("penalty", "Penalty Card", 2),
		tpl("stalling", "Stalling", 2),
		tpl("neutral_attempted_takedown", "Attempted Takedown", 2),
		tpl("neutral_ankle_pick_to_back", "Ankle Pick to Back", 1),
		tpl("neutral_duck_under", "Duck Under", 1),
		tpl("neutral_double_leg_takedown", "Double Leg Takedown", 3),
		tpl("neutral_firemans_carry_to_opponents_back", "Fireman's Carry to Opponent's Back", 1),
		tpl("neutral_head_lock_to_pin", "Head Lock to Pin!", 1),
		tpl("neutral_hip_toss", "Hip Toss", 1),
		tpl("neutral_single_leg_takedown", "Single Leg Takedown", 3),
		tpl("top_double_leg_takedown", "Top Double Leg Takedown", 2),
		tpl("top_far_side_cradle", "Far Side Cradle", 1),
		tpl("top_far_arm_chop", "Far Arm Chop", 1),
		tpl("top_near_side_cradle", "Near Side Cradle", 1),
		tpl("top_pump_handle_tilt", "Pump Handle Tilt", 1),
		tpl("top_inside_wrist_half_to_pin", "Inside Wrist Half to Pin!", 2),
		tpl("top_turk_cradle_to_pin", "Turk Cradle to Pin!", 1),
		tpl("top_spiral_ride_to_opponents_back", "Spiral Ride to Opponent's Back", 1),
		tpl("bottom_elbow_roll_to_pin", "Elbow Roll Chest-to-Chest Pin!", 1),
		tpl("bottom_granby_roll", "Granby Roll", 2),
		tpl("bottom_inside_switch", "Inside Switch", 2),
		tpl("bottom_outside_switch", "Outside Switch", 1),
		tpl("bottom_sit_out_no_change_of_position", "Sit Out (No Change)", 2),
		tpl("bottom_sit_out_tripod_duckout", "Sit Out Tri-Pod Duckout", 1),
		tpl("bottom_sit_out_tripod_peterson", "Sit Out Tri-Pod Peterson", 1),
		tpl("bottom_stand_up", "Stand Up", 3),
		tpl("counter_whizzer", "Whizzer", 2),
		tpl("counter_sprawl", "Sprawl", 2),
	}
}

// BuildDeck expands templates into the flat multiset of card instances for one
// physical deck, one fresh ID per copy.
func BuildDeck(templates []CardTemplate) []Card {
	var deck []Card
	for _, t := range templates {
		for i := 0; i < t.Count; i++ {
			deck = append(deck, Card{
				ID:         uuid.NewString(),
				Identifier: t.Identifier,
				Name:       t.Name,
				Kind:       t.Kind,
				Color:      t.Color,
				Image:      t.Image,
				Meta:       t.Meta,
			})
		}
	}
	return deck
}

// DeckSize is the number of cards in the default deck.
func DeckSize() int {
	n := 0
	for _, t := range DefaultTemplates() {
		n += t.Count
	}
	return n
}

// isTakedownVariant reports whether a NEUTRAL card is a takedown: it moves the
// match to the bottom position and opens the counter window.
//
// Detection by substring over the identifier/name is a data-modeling debt
// inherited from the printed deck list; an explicit template flag would be
// the better home for this.
func isTakedownVariant(c Card) bool {
	if c.Kind != KindNeutral {
		return false
	}
	return strings.Contains(c.Identifier, "takedown") ||
		strings.Contains(strings.ToLower(c.Name), "takedown")
}
