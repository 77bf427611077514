package booking

import (
    "testing"

    "github.com/iliyamo/session-booking/internal/model"
)

func TestProjectDerivesSpotsAndAvailability(t *testing.T) {
    states := []SessionState{
        {ID: 1, Day: model.Monday, TimeSlot: model.Slot8To10, Capacity: 4, Enabled: true, BookingCount: 1},
        {ID: 2, Day: model.Monday, TimeSlot: model.Slot10To12, Capacity: 4, Enabled: true, BookingCount: 4},
        {ID: 3, Day: model.Tuesday, TimeSlot: model.Slot8To10, Capacity: 4, Enabled: false, BookingCount: 2},
    }
    view := Project(states, nil)

    if len(view.Sessions) != 3 {
        t.Fatalf("expected 3 sessions, got %d", len(view.Sessions))
    }
    s1 := view.Sessions[0]
    if s1.AvailableSpots != 3 || !s1.IsAvailable {
        t.Fatalf("session 1: expected 3 spots available, got %d (available=%v)", s1.AvailableSpots, s1.IsAvailable)
    }
    s2 := view.Sessions[1]
    if s2.AvailableSpots != 0 || s2.IsAvailable {
        t.Fatalf("session 2: expected full, got %d spots (available=%v)", s2.AvailableSpots, s2.IsAvailable)
    }
    // Disabled sessions stay listed, keep their counts and are never available.
    s3 := view.Sessions[2]
    if s3.AvailableSpots != 2 || s3.IsAvailable {
        t.Fatalf("session 3: expected 2 spots but unavailable, got %d (available=%v)", s3.AvailableSpots, s3.IsAvailable)
    }
}

func TestProjectClampsOversubscribedSessions(t *testing.T) {
    // Capacity lowered below the booking count leaves the session
    // over-subscribed; spots must clamp at zero, not wrap.
    states := []SessionState{
        {ID: 1, Day: model.Monday, TimeSlot: model.Slot8To10, Capacity: 2, Enabled: true, BookingCount: 3},
    }
    view := Project(states, nil)
    if got := view.Sessions[0].AvailableSpots; got != 0 {
        t.Fatalf("expected 0 spots, got %d", got)
    }
    if view.Sessions[0].IsAvailable {
        t.Fatalf("expected unavailable")
    }
}

func TestProjectViewerFlags(t *testing.T) {
    states := []SessionState{
        {ID: 1, Day: model.Monday, TimeSlot: model.Slot8To10, Capacity: 4, Enabled: true, BookingCount: 1},
        {ID: 2, Day: model.Tuesday, TimeSlot: model.Slot8To10, Capacity: 4, Enabled: true, BookingCount: 0},
    }
    viewer := []StudentBooking{
        {BookingID: "b1", SessionID: 1, Day: model.Monday, TimeSlot: model.Slot8To10},
    }
    view := Project(states, viewer)

    if !view.Sessions[0].IsBooked {
        t.Fatalf("expected session 1 booked by viewer")
    }
    if view.Sessions[1].IsBooked {
        t.Fatalf("expected session 2 not booked by viewer")
    }

    if len(view.Days) != len(model.Days) {
        t.Fatalf("expected %d day entries, got %d", len(model.Days), len(view.Days))
    }
    for _, d := range view.Days {
        want := d.Day == model.Monday
        if d.IsDayBooked != want {
            t.Fatalf("day %s: expected booked=%v, got %v", d.Day, want, d.IsDayBooked)
        }
    }
}

func TestProjectGuestHasNoFlags(t *testing.T) {
    states := []SessionState{
        {ID: 1, Day: model.Monday, TimeSlot: model.Slot8To10, Capacity: 4, Enabled: true, BookingCount: 4},
    }
    view := Project(states, nil)
    if view.Sessions[0].IsBooked {
        t.Fatalf("guest view must not mark sessions booked")
    }
    for _, d := range view.Days {
        if d.IsDayBooked {
            t.Fatalf("guest view must not mark days booked")
        }
    }
}
