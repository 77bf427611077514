package model

import "testing"

func TestNormalizeStudentID(t *testing.T) {
    tests := []struct {
        raw  string
        want string
        ok   bool
    }{
        {"DR-0001-25", "DR-0001-25", true},
        {"dr-0001-25", "DR-0001-25", true},
        {"  dr-0001-25  ", "DR-0001-25", true},
        {"DR-001-25", "", false},
        {"DRX-0001-25", "", false},
        {"DR-0001-2025", "", false},
        {"", "", false},
        {"DR 0001 25", "", false},
    }
    for _, tc := range tests {
        got, ok := NormalizeStudentID(tc.raw)
        if ok != tc.ok {
            t.Fatalf("%q: expected ok=%v, got %v", tc.raw, tc.ok, ok)
        }
        if ok && got != tc.want {
            t.Fatalf("%q: expected %q, got %q", tc.raw, tc.want, got)
        }
    }
}

func TestSlotsForDay(t *testing.T) {
    for _, d := range Days {
        slots := SlotsForDay(d)
        if len(slots) == 0 {
            t.Fatalf("%s: no slots", d)
        }
        if IsWeekend(d) {
            if len(slots) != 4 {
                t.Fatalf("%s: expected 4 weekend slots, got %d", d, len(slots))
            }
        } else if len(slots) != 6 {
            t.Fatalf("%s: expected 6 weekday slots, got %d", d, len(slots))
        }
    }
    // The full grid spans all eight distinct slot values.
    seen := map[TimeSlot]bool{}
    for _, d := range Days {
        for _, s := range SlotsForDay(d) {
            seen[s] = true
        }
    }
    if len(seen) != 8 {
        t.Fatalf("expected 8 distinct slots across the week, got %d", len(seen))
    }
}

func TestIsValidDay(t *testing.T) {
    for _, d := range Days {
        if !IsValidDay(string(d)) {
            t.Fatalf("%s should be valid", d)
        }
    }
    for _, raw := range []string{"", "monday", "FUNDAY"} {
        if IsValidDay(raw) {
            t.Fatalf("%q should be invalid", raw)
        }
    }
}
