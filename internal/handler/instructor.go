package handler

import (
    "bytes"
    "encoding/csv"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/session-booking/internal/model"
    "github.com/iliyamo/session-booking/internal/repository"
)

// InstructorHandler bundles the staff-facing operations: enrollment
// roster, session toggling and capacity changes, student creation, the
// bulk booking reset and the CSV export.  Role enforcement happens in
// middleware; these handlers trust that the caller is the instructor.
type InstructorHandler struct {
    Sessions *repository.SessionRepo
    Students *repository.StudentRepo
    Bookings *repository.BookingRepo
}

// NewInstructorHandler constructs an InstructorHandler.  Dependencies
// must be non-nil.
func NewInstructorHandler(sessions *repository.SessionRepo, students *repository.StudentRepo, bookings *repository.BookingRepo) *InstructorHandler {
    if sessions == nil || students == nil || bookings == nil {
        panic("nil repository passed to NewInstructorHandler")
    }
    return &InstructorHandler{Sessions: sessions, Students: students, Bookings: bookings}
}

// sessionJSON renders a session for instructor responses.
func sessionJSON(s *model.Session) echo.Map {
    return echo.Map{
        "id":        s.ID,
        "day":       s.Day,
        "time_slot": s.TimeSlot,
        "capacity":  s.Capacity,
        "enabled":   s.Enabled,
    }
}

// ListEnrollments handles GET /v1/instructor/enrollments.  It returns
// every active booking with student and session details, ordered by
// the weekly grid.
func (h *InstructorHandler) ListEnrollments(c echo.Context) error {
    rows, err := h.Sessions.ListEnrollments(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load enrollments"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

// UpdateSession handles PATCH /v1/instructor/sessions/:id.  The body
// may carry an enabled flag, a capacity, or both; omitted fields are
// left unchanged.  Disabling a session or shrinking its capacity never
// removes existing bookings.
func (h *InstructorHandler) UpdateSession(c echo.Context) error {
    sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || sessionID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
    }
    var body struct {
        Enabled  *bool   `json:"enabled"`
        Capacity *uint32 `json:"capacity"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Enabled == nil && body.Capacity == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
    }
    if body.Capacity != nil && *body.Capacity == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
    }

    ctx := c.Request().Context()
    sess, err := h.Sessions.GetByID(ctx, sessionID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if body.Capacity != nil {
        if sess, err = h.Sessions.SetCapacity(ctx, sessionID, *body.Capacity); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    if body.Enabled != nil {
        if sess, err = h.Sessions.SetEnabled(ctx, sessionID, *body.Enabled); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"session": sessionJSON(sess)})
}

// CreateStudent handles POST /v1/instructor/students.  The instructor
// can pre-register a student so they can log in later with the issued
// ID and email.
func (h *InstructorHandler) CreateStudent(c echo.Context) error {
    var body struct {
        StudentID string  `json:"student_id"`
        Name      string  `json:"name"`
        Email     string  `json:"email"`
        Phone     *string `json:"phone"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    id, ok := model.NormalizeStudentID(body.StudentID)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id format"})
    }
    if body.Name == "" || body.Email == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
    }
    student, err := h.Students.Create(c.Request().Context(), id, body.Name, body.Email, body.Phone)
    if err != nil {
        if errors.Is(err, repository.ErrDuplicate) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "student id or email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "student": echo.Map{
            "id":    student.ID,
            "name":  student.Name,
            "email": student.Email,
            "phone": student.Phone,
        },
    })
}

// ListStudents handles GET /v1/instructor/students.
func (h *InstructorHandler) ListStudents(c echo.Context) error {
    students, err := h.Students.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load students"})
    }
    out := make([]echo.Map, 0, len(students))
    for _, s := range students {
        out = append(out, echo.Map{
            "id":         s.ID,
            "name":       s.Name,
            "email":      s.Email,
            "phone":      s.Phone,
            "created_at": s.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ResetBookings handles DELETE /v1/instructor/bookings.  It clears the
// entire ledger (the weekly reset) and reports how many bookings were
// removed.
func (h *InstructorHandler) ResetBookings(c echo.Context) error {
    n, err := h.Bookings.DeleteAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reset bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

// ExportEnrollments handles GET /v1/instructor/enrollments/export.  It
// streams the current roster as CSV for offline processing.
func (h *InstructorHandler) ExportEnrollments(c echo.Context) error {
    rows, err := h.Sessions.ListEnrollments(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load enrollments"})
    }
    var buf bytes.Buffer
    w := csv.NewWriter(&buf)
    _ = w.Write([]string{"day", "time_slot", "student_id", "student_name", "student_email", "booked_at"})
    for _, r := range rows {
        _ = w.Write([]string{string(r.Day), string(r.TimeSlot), r.StudentID, r.StudentName, r.StudentEmail, r.BookedAt})
    }
    w.Flush()
    if err := w.Error(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to encode csv"})
    }
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="enrollments.csv"`)
    return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
