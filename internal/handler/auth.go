package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/session-booking/internal/model"
    "github.com/iliyamo/session-booking/internal/repository"
    "github.com/iliyamo/session-booking/internal/utils"
)

// AuthHandler implements the login endpoints.  Students authenticate
// with their issued ID and email; a student record is created on first
// successful login.  The instructor authenticates with email and
// password.  Both flows issue a short-lived HS256 access token whose
// subject and role the middleware later injects into the context.
type AuthHandler struct {
    Students    *repository.StudentRepo
    Instructors *repository.InstructorRepo
    JWTSecret   string
    AccessTTL   int // minutes
}

// NewAuthHandler constructs an AuthHandler.  All dependencies must be non-nil.
func NewAuthHandler(students *repository.StudentRepo, instructors *repository.InstructorRepo, jwtSecret string, accessTTLMin int) *AuthHandler {
    if students == nil || instructors == nil {
        panic("nil repository passed to NewAuthHandler")
    }
    return &AuthHandler{Students: students, Instructors: instructors, JWTSecret: jwtSecret, AccessTTL: accessTTLMin}
}

// StudentLogin handles POST /v1/auth/login.  The body carries the
// student's issued ID and email, plus a display name used only when the
// student does not exist yet (first-login upsert).  For an existing
// student the supplied email must match the record; the mismatch and
// unknown-ID cases are reported identically to avoid confirming which
// IDs exist.
func (h *AuthHandler) StudentLogin(c echo.Context) error {
    var body struct {
        StudentID string `json:"student_id"`
        Name      string `json:"name"`
        Email     string `json:"email"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    id, ok := model.NormalizeStudentID(body.StudentID)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id format"})
    }
    email := strings.ToLower(strings.TrimSpace(body.Email))
    if email == "" || !strings.Contains(email, "@") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
    }

    ctx := c.Request().Context()
    student, err := h.Students.GetByID(ctx, id)
    switch {
    case err == nil:
        if !strings.EqualFold(student.Email, email) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
    case errors.Is(err, repository.ErrNotFound):
        // First login creates the record.
        name := strings.TrimSpace(body.Name)
        if name == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required on first login"})
        }
        student, err = h.Students.Create(ctx, id, name, email, nil)
        if err != nil {
            if errors.Is(err, repository.ErrDuplicate) {
                // Email already taken by another student ID.
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    tok, err := utils.NewAccessToken(h.JWTSecret, student.ID, "STUDENT", h.AccessTTL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "access_token": tok.Token,
        "expires_at":   tok.Exp,
        "student": echo.Map{
            "id":    student.ID,
            "name":  student.Name,
            "email": student.Email,
        },
    })
}

// InstructorLogin handles POST /v1/auth/instructor/login with email and
// password.  Unknown email and wrong password both yield the same 401.
func (h *AuthHandler) InstructorLogin(c echo.Context) error {
    var body struct {
        Email    string `json:"email"`
        Password string `json:"password"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    ctx := c.Request().Context()
    ins, err := h.Instructors.GetByEmail(ctx, body.Email)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !utils.VerifyPassword(ins.PasswordHash, body.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    tok, err := utils.NewAccessToken(h.JWTSecret, strconv.FormatUint(ins.ID, 10), "INSTRUCTOR", h.AccessTTL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "access_token": tok.Token,
        "expires_at":   tok.Exp,
    })
}
