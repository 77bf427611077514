package booking

import "github.com/iliyamo/session-booking/internal/model"

// SessionView is the read-optimized, client-facing state of one session.
type SessionView struct {
    ID             uint64         `json:"id"`
    Day            model.Day      `json:"day"`
    TimeSlot       model.TimeSlot `json:"time_slot"`
    Capacity       uint32         `json:"capacity"`
    AvailableSpots uint32         `json:"available_spots"`
    IsAvailable    bool           `json:"is_available"`
    IsBooked       bool           `json:"is_booked"`
}

// DayView aggregates the per-day booked flag for the viewing student.
type DayView struct {
    Day         model.Day `json:"day"`
    IsDayBooked bool      `json:"is_day_booked"`
}

/// Availability is the full projection returned to clients: every
// session's derived state plus the per-day booked flags for the viewing
// student.  It is recomputed from catalog and ledger state on every
// read and holds no state of its own.
type Availability struct {
    Sessions []SessionView `json:"sessions"`
    Days     []DayView     `json:"days"`
}

// Project derives the availability view from the session states and the
// viewing student's bookings.  Pass a nil or empty booking slice for an
// unauthenticated viewer; per-student flags then stay false.
//
// Disabled sessions remain in the projection with IsAvailable=false and
// their bookings still count against AvailableSpots, so the view never
// disagrees with the enrollment roster.
//
// The projection is advisory display data only.  It must never gate a
// mutation: capacity decisions are made by ValidateBooking against a
// snapshot read inside the mutating transaction.
func Project(sessions []SessionState, viewerBookings []StudentBooking) Availability {
    booked := make(map[uint64]bool, len(viewerBookings))
    bookedDays := make(map[model.Day]bool, len(viewerBookings))
    for _, b := range viewerBookings {
        booked[b.SessionID] = true
        bookedDays[b.Day] = true
    }

    out := Availability{
        Sessions: make([]SessionView, 0, len(sessions)),
        Days:     make([]DayView, 0, len(model.Days)),
    }
    for _, s := range sessions {
        spots := uint32(0)
        if s.BookingCount < s.Capacity {
            spots = s.Capacity - s.BookingCount
        }
        out.Sessions = append(out.Sessions, SessionView{
            ID:             s.ID,
            Day:            s.Day,
            TimeSlot:       s.TimeSlot,
            Capacity:       s.Capacity,
            AvailableSpots: spots,
            IsAvailable:    spots > 0 && s.Enabled,
            IsBooked:       booked[s.ID],
        })
    }
    for _, d := range model.Days {
        out.Days = append(out.Days, DayView{Day: d, IsDayBooked: bookedDays[d]})
    }
    return out
}
