package model

// Day enumerates the seven days of the weekly booking grid.  Values are
// stored verbatim in the database and exchanged with clients, so they
// must remain stable.
type Day string

const (
    Monday    Day = "MONDAY"
    Tuesday   Day = "TUESDAY"
    Wednesday Day = "WEDNESDAY"
    Thursday  Day = "THURSDAY"
    Friday    Day = "FRIDAY"
    Saturday  Day = "SATURDAY"
    Sunday    Day = "SUNDAY"
)

// Days lists all days in display order, Monday first.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// TimeSlot enumerates the bookable two-hour windows.  Not every slot is
// valid on every day; SlotsForDay returns the subset offered on a given
// day.  Values are stored verbatim in the database.
type TimeSlot string

const (
    Slot6To8   TimeSlot = "SLOT_6_8"
    Slot8To10  TimeSlot = "SLOT_8_10"
    Slot10To12 TimeSlot = "SLOT_10_12"
    Slot12To14 TimeSlot = "SLOT_12_14"
    Slot14To16 TimeSlot = "SLOT_14_16"
    Slot16To18 TimeSlot = "SLOT_16_18"
    Slot18To20 TimeSlot = "SLOT_18_20"
    Slot20To22 TimeSlot = "SLOT_20_22"
)

// weekdaySlots are offered Monday through Friday.  Weekday sessions skip
// the early-morning and midday windows.
var weekdaySlots = []TimeSlot{Slot8To10, Slot10To12, Slot14To16, Slot16To18, Slot18To20, Slot20To22}

// weekendSlots are offered Saturday and Sunday.  Weekend sessions run in
// the morning only.
var weekendSlots = []TimeSlot{Slot6To8, Slot8To10, Slot10To12, Slot12To14}

// IsValidDay reports whether s is one of the seven Day values.
func IsValidDay(s string) bool {
    switch Day(s) {
    case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
        return true
    }
    return false
}

// IsWeekend reports whether d is Saturday or Sunday.
func IsWeekend(d Day) bool { return d == Saturday || d == Sunday }

// SlotsForDay returns the time slots offered on the given day, in
// chronological order.  The returned slice must not be modified.
func SlotsForDay(d Day) []TimeSlot {
    if IsWeekend(d) {
        return weekendSlots
    }
    return weekdaySlots
}
