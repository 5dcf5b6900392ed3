package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Known typos in the external deck list. The printed list ships one identifier
// with a trailing extra character; normalizing it here keeps the card out of
// the BONUS fallback bucket.
var identifierFixups = map[string]string{
	"out_of_boundss": "out_of_bounds",
}

func normalizeIdentifier(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	if fixed, ok := identifierFixups[id]; ok {
		return fixed
	}
	return id
}

// ParseManifest reads a line-oriented deck list of "<count> <identifier>"
// pairs. Blank lines and the total-count footer line are ignored. Identifiers
// are normalized and classified into templates; unmatched identifiers land in
// the BONUS bucket rather than failing the parse.
func ParseManifest(r io.Reader) ([]CardTemplate, error) {
	var templates []CardTemplate

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 1 {
			// Footer: a bare total count closes the list.
			if _, err := strconv.Atoi(fields[0]); err == nil {
				continue
			}
			return nil, fmt.Errorf("manifest line %d: malformed entry %q", lineNo, fields[0])
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("manifest line %d: expected \"<count> <identifier>\", got %d fields", lineNo, len(fields))
		}

		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: invalid count %q: %w", lineNo, fields[0], err)
		}
		if count <= 0 {
			return nil, fmt.Errorf("manifest line %d: count must be positive, got %d", lineNo, count)
		}

		identifier := normalizeIdentifier(fields[1])
		kind, meta := ClassifyIdentifier(identifier)
		templates = append(templates, CardTemplate{
			Identifier: identifier,
			Name:       humanizeIdentifier(identifier),
			Kind:       kind,
			Color:      kindColors[kind],
			Image:      "/img/cards/" + strings.ReplaceAll(identifier, "_", "-") + ".svg",
			Count:      count,
			Meta:       meta,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return templates, nil
}

// humanizeIdentifier turns "neutral_double_leg_takedown" into
// "Neutral Double Leg Takedown" for display.
func humanizeIdentifier(identifier string) string {
	words := strings.Split(identifier, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
