package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Equipment selections travel with a reservation as a compact string:
// "S1E1:2,S1E2:1". An empty selection is stored as "NONE".
const NoEquipment = "NONE"

func ParseEquipmentSelection(s string) (map[string]int, error) {
	selection := make(map[string]int)
	if s == "" || s == NoEquipment {
		return selection, nil
	}
	for _, part := range strings.Split(s, ",") {
		key, qtyStr, found := strings.Cut(part, ":")
		if !found || key == "" {
			return nil, fmt.Errorf("malformed equipment entry %q", part)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("malformed equipment quantity in %q", part)
		}
		selection[key] += qty
	}
	return selection, nil
}

func FormatEquipmentSelection(selection map[string]int) string {
	if len(selection) == 0 {
		return NoEquipment
	}
	keys := make([]string, 0, len(selection))
	for key, qty := range selection {
		if qty > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return NoEquipment
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+":"+strconv.Itoa(selection[key]))
	}
	return strings.Join(parts, ",")
}
