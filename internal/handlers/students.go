package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"studenthub/internal/models"
	"studenthub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errStudentNotFoundMsg = "Student not found."
	errProfileNotFoundMsg = "Student profile not found."
	errStudentsServerMsg  = "Server error while processing students."
)

type createStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Course   string `json:"course" binding:"required"`
}

type updateStudentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
}

// parsePositiveInt reads a positive integer query param, falling back to def.
func parsePositiveInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// studentError translates service errors into client-safe responses.
func (h *Handler) studentError(c *gin.Context, err error, logKey string) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errStudentNotFoundMsg})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStudentExists),
		errors.Is(err, service.ErrAdminUser),
		errors.Is(err, service.ErrCourseRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateEmailMsg})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errStudentsServerMsg, logKey, err)
	}
}

// @Summary      List students
// @Tags         students
// @Produce      json
// @Param        page   query  int  false  "Page number (1-based)"
// @Param        limit  query  int  false  "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}  "students, pagination"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/students [get]
// @Security     BearerAuth
func (h *Handler) listStudents(c *gin.Context) {
	page := parsePositiveInt(c, "page", 1)
	limit := parsePositiveInt(c, "limit", 10)

	students, pagination, err := h.services.List(c.Request.Context(), page, limit)
	if err != nil {
		h.studentError(c, err, "students_list_failed")
		return
	}
	if students == nil {
		students = []models.StudentProfile{} // never null in JSON
	}
	c.JSON(http.StatusOK, gin.H{
		"students":   students,
		"pagination": pagination,
	})
}

// @Summary      Get a student by id
// @Tags         students
// @Produce      json
// @Param        id  path  string  true  "Student id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/students/{id} [get]
// @Security     BearerAuth
func (h *Handler) getStudent(c *gin.Context) {
	st, err := h.services.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.studentError(c, err, "students_get_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Enroll a student
// @Description  Reuses an existing non-admin account by email or creates a new student account
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body   createStudentRequest  true  "Enrollment payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/students [post]
// @Security     BearerAuth
func (h *Handler) createStudent(c *gin.Context) {
	var in createStudentRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	st, err := h.services.Create(c.Request.Context(), service.CreateStudentInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Course:   in.Course,
	})
	if err != nil {
		h.studentError(c, err, "students_create_failed")
		return
	}
	c.JSON(http.StatusCreated, st)
}

// @Summary      Update a student
// @Description  Admins may update anyone; students only themselves
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Student id"
// @Param        body  body  updateStudentRequest  true  "Partial update"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/students/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateStudent(c *gin.Context) {
	var in updateStudentRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	actor := currentUser(c)
	if actor == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}

	st, err := h.services.Update(c.Request.Context(), c.Param("id"), actor, service.UpdateStudentInput{
		Name:   in.Name,
		Email:  in.Email,
		Course: in.Course,
	})
	if err != nil {
		h.studentError(c, err, "students_update_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Delete a student
// @Description  Removes the enrollment record; the user account is kept
// @Tags         students
// @Produce      json
// @Param        id  path  string  true  "Student id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/students/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteStudent(c *gin.Context) {
	if err := h.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.studentError(c, err, "students_delete_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully."})
}

// @Summary      Current student's profile
// @Tags         students
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/students/profile [get]
// @Security     BearerAuth
func (h *Handler) myProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}

	st, err := h.services.ProfileByUser(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFoundMsg})
			return
		}
		h.studentError(c, err, "students_profile_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}
