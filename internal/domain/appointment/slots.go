package appointment

import (
	"fmt"
	"strings"
	"time"
)

// DailySlots is the fixed bookable grid, 24h clock, clinic timezone.
var DailySlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

// NormalizeSlot folds both accepted wire forms, "HH:MM" and "h:MM AM/PM",
// into the canonical 24h form.
func NormalizeSlot(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04"), nil
	}
	up := strings.ToUpper(s)
	for _, layout := range []string{"3:04 PM", "03:04 PM", "3:04PM", "03:04PM"} {
		if t, err := time.Parse(layout, up); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("unrecognized time %q", s)
}

// IsBookableSlot reports whether the (already normalized) slot is on the grid.
func IsBookableSlot(slot string) bool {
	for _, s := range DailySlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotInstant combines a YYYY-MM-DD date and a canonical slot into the
// instant it denotes in the given location.
func SlotInstant(date, slot string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// slotTaken checks membership against a taken set that may mix both textual
// forms; unparsable entries are ignored rather than blocking the grid.
func slotTaken(slot string, taken []string) bool {
	for _, raw := range taken {
		norm, err := NormalizeSlot(raw)
		if err != nil {
			continue
		}
		if norm == slot {
			return true
		}
	}
	return false
}
