package service

import (
    "context"
    "errors"
    "fmt"
    "reflect"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/session-booking/internal/booking"
    "github.com/iliyamo/session-booking/internal/model"
    "github.com/iliyamo/session-booking/internal/repository"
)

// fakeSession is the catalog half of the in-memory ledger.
type fakeSession struct {
    day      model.Day
    slot     model.TimeSlot
    capacity uint32
    enabled  bool
}

// fakeLedger implements repository.Ledger in memory.  Transact runs the
// whole function under one mutex against a copy of the state and only
// publishes the copy on success, mirroring the commit/rollback
// semantics of the real store.  The same uniqueness rules as the SQL
// schema are enforced on insert: (student, session) and (student, day).
type fakeLedger struct {
    mu        sync.Mutex
    sessions  map[uint64]fakeSession
    bookings  map[string]model.Booking
    insertErr error // injected insert failure
    txErr     error // injected transaction failure
}

func newFakeLedger() *fakeLedger {
    return &fakeLedger{
        sessions: make(map[uint64]fakeSession),
        bookings: make(map[string]model.Booking),
    }
}

func (f *fakeLedger) addSession(id uint64, day model.Day, slot model.TimeSlot, capacity uint32, enabled bool) {
    f.sessions[id] = fakeSession{day: day, slot: slot, capacity: capacity, enabled: enabled}
}

func (f *fakeLedger) snapshot() map[string]model.Booking {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := make(map[string]model.Booking, len(f.bookings))
    for k, v := range f.bookings {
        out[k] = v
    }
    return out
}

func (f *fakeLedger) Transact(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.txErr != nil {
        return f.txErr
    }
    work := make(map[string]model.Booking, len(f.bookings))
    for k, v := range f.bookings {
        work[k] = v
    }
    tx := &fakeTx{ledger: f, bookings: work}
    if err := fn(tx); err != nil {
        return err
    }
    f.bookings = work
    return nil
}

type fakeTx struct {
    ledger   *fakeLedger
    bookings map[string]model.Booking
}

func (t *fakeTx) SessionState(ctx context.Context, sessionID uint64) (*booking.SessionState, error) {
    s, ok := t.ledger.sessions[sessionID]
    if !ok {
        return nil, repository.ErrNotFound
    }
    count := uint32(0)
    for _, b := range t.bookings {
        if b.SessionID == sessionID {
            count++
        }
    }
    return &booking.SessionState{
        ID: sessionID, Day: s.day, TimeSlot: s.slot,
        Capacity: s.capacity, Enabled: s.enabled, BookingCount: count,
    }, nil
}

func (t *fakeTx) StudentBookings(ctx context.Context, studentID string) ([]booking.StudentBooking, error) {
    out := []booking.StudentBooking{}
    for _, b := range t.bookings {
        if b.StudentID == studentID {
            out = append(out, booking.StudentBooking{
                BookingID: b.ID, SessionID: b.SessionID, Day: b.Day, TimeSlot: b.TimeSlot,
            })
        }
    }
    return out, nil
}

func (t *fakeTx) InsertBooking(ctx context.Context, b *model.Booking) error {
    if t.ledger.insertErr != nil {
        return t.ledger.insertErr
    }
    for _, existing := range t.bookings {
        if existing.StudentID == b.StudentID && (existing.SessionID == b.SessionID || existing.Day == b.Day) {
            return repository.ErrDuplicate
        }
    }
    b.CreatedAt = time.Now().UTC()
    t.bookings[b.ID] = *b
    return nil
}

func (t *fakeTx) BookingOwnedBy(ctx context.Context, bookingID, studentID string) (*model.Booking, error) {
    b, ok := t.bookings[bookingID]
    if !ok || b.StudentID != studentID {
        return nil, repository.ErrNotFound
    }
    out := b
    return &out, nil
}

func (t *fakeTx) DeleteBooking(ctx context.Context, bookingID string) error {
    delete(t.bookings, bookingID)
    return nil
}

func denialReason(t *testing.T, err error) booking.Reason {
    t.Helper()
    var d *booking.Denial
    if !errors.As(err, &d) {
        t.Fatalf("expected denial, got %v", err)
    }
    return d.Reason
}

func TestCreateBookingHappyPath(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    m := NewBookingManager(ledger, 3)

    b, err := m.CreateBooking(context.Background(), "DR-0001-25", 1)
    if err != nil {
        t.Fatalf("create booking: %v", err)
    }
    if b.ID == "" {
        t.Fatalf("expected generated booking id")
    }
    if b.StudentID != "DR-0001-25" || b.SessionID != 1 {
        t.Fatalf("unexpected booking: %+v", b)
    }
    if b.Day != model.Monday || b.TimeSlot != model.Slot8To10 {
        t.Fatalf("expected session grid cell on booking, got %s %s", b.Day, b.TimeSlot)
    }
    if got := len(ledger.snapshot()); got != 1 {
        t.Fatalf("expected 1 booking in ledger, got %d", got)
    }
}

func TestConcurrentBookingsNeverExceedCapacity(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 2, true)
    m := NewBookingManager(ledger, 3)

    const attempts = 8
    var wg sync.WaitGroup
    results := make([]error, attempts)
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            studentID := fmt.Sprintf("DR-%04d-25", i+1)
            _, err := m.CreateBooking(context.Background(), studentID, 1)
            results[i] = err
        }(i)
    }
    wg.Wait()

    successes := 0
    for _, err := range results {
        if err == nil {
            successes++
            continue
        }
        var d *booking.Denial
        if !errors.As(err, &d) {
            t.Fatalf("unexpected error type: %v", err)
        }
        if d.Reason != booking.ReasonSessionFull && d.Reason != booking.ReasonConcurrencyConflict {
            t.Fatalf("unexpected denial reason: %s", d.Reason)
        }
    }
    if successes != 2 {
        t.Fatalf("expected exactly 2 successful bookings, got %d", successes)
    }
    if got := len(ledger.snapshot()); got != 2 {
        t.Fatalf("ledger holds %d bookings, capacity is 2", got)
    }
}

func TestCreateBookingSameDayDenied(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    ledger.addSession(2, model.Monday, model.Slot10To12, 4, true)
    m := NewBookingManager(ledger, 3)

    if _, err := m.CreateBooking(context.Background(), "DR-0001-25", 1); err != nil {
        t.Fatalf("first booking: %v", err)
    }
    _, err := m.CreateBooking(context.Background(), "DR-0001-25", 2)
    if got := denialReason(t, err); got != booking.ReasonDayAlreadyBooked {
        t.Fatalf("expected DAY_ALREADY_BOOKED, got %s", got)
    }
}

func TestCreateBookingMaxDaysDenied(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    ledger.addSession(2, model.Tuesday, model.Slot8To10, 4, true)
    ledger.addSession(3, model.Wednesday, model.Slot8To10, 4, true)
    m := NewBookingManager(ledger, 2)

    for _, sid := range []uint64{1, 2} {
        if _, err := m.CreateBooking(context.Background(), "DR-0001-25", sid); err != nil {
            t.Fatalf("booking session %d: %v", sid, err)
        }
    }
    _, err := m.CreateBooking(context.Background(), "DR-0001-25", 3)
    if got := denialReason(t, err); got != booking.ReasonMaxDaysReached {
        t.Fatalf("expected MAX_DAYS_REACHED, got %s", got)
    }
}

func TestDeniedBookingLeavesLedgerUnchanged(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 1, true)
    m := NewBookingManager(ledger, 3)

    if _, err := m.CreateBooking(context.Background(), "DR-0001-25", 1); err != nil {
        t.Fatalf("first booking: %v", err)
    }
    before := ledger.snapshot()

    _, err := m.CreateBooking(context.Background(), "DR-0002-25", 1)
    if got := denialReason(t, err); got != booking.ReasonSessionFull {
        t.Fatalf("expected SESSION_FULL, got %s", got)
    }

    after := ledger.snapshot()
    if !reflect.DeepEqual(before, after) {
        t.Fatalf("denial mutated ledger state:\nbefore=%v\nafter=%v", before, after)
    }
}

func TestCreateBookingDisabledSession(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, false)
    m := NewBookingManager(ledger, 3)

    _, err := m.CreateBooking(context.Background(), "DR-0001-25", 1)
    if got := denialReason(t, err); got != booking.ReasonSessionDisabled {
        t.Fatalf("expected SESSION_DISABLED, got %s", got)
    }
}

func TestCreateBookingUnknownSession(t *testing.T) {
    m := NewBookingManager(newFakeLedger(), 3)
    _, err := m.CreateBooking(context.Background(), "DR-0001-25", 42)
    if got := denialReason(t, err); got != booking.ReasonSessionNotFound {
        t.Fatalf("expected SESSION_NOT_FOUND, got %s", got)
    }
}

func TestLostRaceSurfacesAsConcurrencyConflict(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    ledger.insertErr = repository.ErrDuplicate
    m := NewBookingManager(ledger, 3)

    _, err := m.CreateBooking(context.Background(), "DR-0001-25", 1)
    if got := denialReason(t, err); got != booking.ReasonConcurrencyConflict {
        t.Fatalf("expected CONCURRENCY_CONFLICT, got %s", got)
    }
    if got := len(ledger.snapshot()); got != 0 {
        t.Fatalf("lost race must leave no booking, found %d", got)
    }
}

func TestTransientStorageErrorPassesThrough(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    ledger.txErr = repository.ErrTransient
    m := NewBookingManager(ledger, 3)

    _, err := m.CreateBooking(context.Background(), "DR-0001-25", 1)
    if !errors.Is(err, repository.ErrTransient) {
        t.Fatalf("expected ErrTransient, got %v", err)
    }
}

func TestCancelBookingOwnership(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    m := NewBookingManager(ledger, 3)

    b, err := m.CreateBooking(context.Background(), "DR-0001-25", 1)
    if err != nil {
        t.Fatalf("create booking: %v", err)
    }
    before := ledger.snapshot()

    // Another student cannot cancel it; the denial must not reveal
    // whether the booking exists.
    _, err = m.CancelBooking(context.Background(), "DR-0002-25", b.ID)
    if got := denialReason(t, err); got != booking.ReasonNotFoundOrUnauthorized {
        t.Fatalf("expected NOT_FOUND_OR_UNAUTHORIZED, got %s", got)
    }
    if !reflect.DeepEqual(before, ledger.snapshot()) {
        t.Fatalf("foreign cancellation attempt mutated ledger")
    }

    // A completely unknown booking ID denies the same way.
    _, err = m.CancelBooking(context.Background(), "DR-0002-25", "no-such-booking")
    if got := denialReason(t, err); got != booking.ReasonNotFoundOrUnauthorized {
        t.Fatalf("expected NOT_FOUND_OR_UNAUTHORIZED, got %s", got)
    }
}

func TestCreateCancelRoundTrip(t *testing.T) {
    ledger := newFakeLedger()
    ledger.addSession(1, model.Monday, model.Slot8To10, 4, true)
    m := NewBookingManager(ledger, 3)

    b, err := m.CreateBooking(context.Background(), "DR-0001-25", 1)
    if err != nil {
        t.Fatalf("create booking: %v", err)
    }
    deleted, err := m.CancelBooking(context.Background(), "DR-0001-25", b.ID)
    if err != nil {
        t.Fatalf("cancel booking: %v", err)
    }
    if deleted.SessionID != 1 || deleted.Day != model.Monday || deleted.TimeSlot != model.Slot8To10 {
        t.Fatalf("deleted booking should carry its grid cell, got %+v", deleted)
    }
    if got := len(ledger.snapshot()); got != 0 {
        t.Fatalf("expected empty ledger after round trip, got %d bookings", got)
    }

    // The freed spot can be booked again.
    if _, err := m.CreateBooking(context.Background(), "DR-0001-25", 1); err != nil {
        t.Fatalf("rebooking after cancel: %v", err)
    }
}
