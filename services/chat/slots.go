package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Booking slots are fixed one-hour windows: slot 1 starts at 06:00, slot 18
// ends at 24:00. These helpers mirror the slot contract embedded in the
// classifier prompts so deterministic fallbacks stay consistent with it.

const (
	SlotCount     = 18
	firstSlotHour = 6
)

// ValidSlot reports whether n identifies an existing slot.
func ValidSlot(n int) bool {
	return n >= 1 && n <= SlotCount
}

// SlotForHour maps a starting hour (24h clock) to its slot number.
func SlotForHour(hour int) (int, bool) {
	if hour < firstSlotHour || hour >= firstSlotHour+SlotCount {
		return 0, false
	}
	return hour - firstSlotHour + 1, true
}

// HourForSlot maps a slot number back to its starting hour.
func HourForSlot(slot int) (int, bool) {
	if !ValidSlot(slot) {
		return 0, false
	}
	return slot + firstSlotHour - 1, true
}

// SlotRange returns the slots covering [fromHour, toHour). An empty slice is
// returned when the range lies outside bookable hours.
func SlotRange(fromHour, toHour int) []int {
	slots := []int{}
	for h := fromHour; h < toHour; h++ {
		if s, ok := SlotForHour(h); ok {
			slots = append(slots, s)
		}
	}
	return slots
}

// SanitizeSlots drops out-of-range entries, preserving order and duplicates.
func SanitizeSlots(list []int) []int {
	out := []int{}
	for _, n := range list {
		if ValidSlot(n) {
			out = append(out, n)
		}
	}
	return out
}

const isoDate = "2006-01-02"

var weekdayWords = []struct {
	word string
	day  time.Weekday
}{
	{"chủ nhật", time.Sunday},
	{"thứ hai", time.Monday},
	{"thứ 2", time.Monday},
	{"thứ ba", time.Tuesday},
	{"thứ 3", time.Tuesday},
	{"thứ tư", time.Wednesday},
	{"thứ 4", time.Wednesday},
	{"thứ năm", time.Thursday},
	{"thứ 5", time.Thursday},
	{"thứ sáu", time.Friday},
	{"thứ 6", time.Friday},
	{"thứ bảy", time.Saturday},
	{"thứ 7", time.Saturday},
}

// RelativeDate resolves natural-language date words in text against now,
// returning an ISO date. Longer phrases are checked first so "ngày kia" is
// not shadowed by "ngày mai"/"mai".
func RelativeDate(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "ngày kia"), strings.Contains(lower, "ngày mốt"), strings.Contains(lower, "mốt"):
		return now.AddDate(0, 0, 2).Format(isoDate), true
	case strings.Contains(lower, "ngày mai"), strings.Contains(lower, "mai"):
		return now.AddDate(0, 0, 1).Format(isoDate), true
	case strings.Contains(lower, "hôm nay"), strings.Contains(lower, "bữa nay"):
		return now.Format(isoDate), true
	}

	for _, w := range weekdayWords {
		if strings.Contains(lower, w.word) {
			ahead := (int(w.day) - int(now.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			return now.AddDate(0, 0, ahead).Format(isoDate), true
		}
	}

	return "", false
}

var hourPattern = regexp.MustCompile(`(\d{1,2})\s*(?:h|giờ)`)

// HoursInText extracts 24h clock hours from expressions like "19h" or
// "7 giờ tối", applying the evening/morning qualifiers around each match.
func HoursInText(text string) []int {
	lower := strings.ToLower(text)
	matches := hourPattern.FindAllStringSubmatchIndex(lower, -1)
	hours := []int{}
	for _, m := range matches {
		raw := lower[m[2]:m[3]]
		h, err := strconv.Atoi(raw)
		if err != nil || h < 0 || h > 23 {
			continue
		}
		tail := lower[m[1]:]
		if h < 12 && (strings.HasPrefix(strings.TrimSpace(tail), "tối") || strings.HasPrefix(strings.TrimSpace(tail), "chiều")) {
			h += 12
		}
		hours = append(hours, h)
	}
	return hours
}
