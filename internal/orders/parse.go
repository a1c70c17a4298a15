package orders

import (
	"encoding/json"
	"strings"
)

// ParseItems decodes the JSON array of item names posted by the form.
// Anything that is not an array of strings yields an empty list, including
// an array holding a null.
func ParseItems(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var elems []*string
	if err := json.Unmarshal([]byte(raw), &elems); err != nil || elems == nil {
		return []string{}
	}
	items := make([]string, 0, len(elems))
	for _, e := range elems {
		if e == nil {
			return []string{}
		}
		items = append(items, *e)
	}
	return items
}

// FlagSet reports whether a checkbox value counts as checked: any value that
// was sent is set. Browsers send "on" for a checked box and omit unchecked ones.
func FlagSet(raw string) bool {
	return raw != ""
}

// LineItems groups repeated names in first-seen order, pricing each group with price.
// Names are grouped exactly as written.
func LineItems(items []string, price func(string) int64) []Line {
	idx := make(map[string]int, len(items))
	lines := make([]Line, 0, len(items))
	for _, name := range items {
		i, ok := idx[name]
		if !ok {
			i = len(lines)
			idx[name] = i
			lines = append(lines, Line{Name: name, UnitPrice: price(name)})
		}
		lines[i].Quantity++
		lines[i].Subtotal += lines[i].UnitPrice
	}
	return lines
}
