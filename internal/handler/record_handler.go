package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-admin/internal/middleware"
	"clinic-admin/internal/models"
	"clinic-admin/internal/repository"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Binder decodes a request body into a record.
type Binder[T any] func(c *gin.Context) (*T, error)

// BindRecord binds the body straight into T.
func BindRecord[T any](c *gin.Context) (*T, error) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// BindAppointment binds the {paciente:{id}, medico:{id}, consultorio:{id},
// fecha, hora} write shape.
func BindAppointment(c *gin.Context) (*models.Appointment, error) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	var a models.Appointment
	req.Apply(&a)
	return &a, nil
}

// RecordHandler serves one REST collection.
type RecordHandler[T models.Record] struct {
	service *service.RecordService[T]
	bind    Binder[T]
}

func NewRecordHandler[T models.Record](svc *service.RecordService[T], bind Binder[T]) *RecordHandler[T] {
	return &RecordHandler[T]{service: svc, bind: bind}
}

// Register mounts the collection under g at /<kind>.
func (h *RecordHandler[T]) Register(g *gin.RouterGroup) {
	path := "/" + h.service.Kind()
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

// List returns the whole collection as a bare JSON array
func (h *RecordHandler[T]) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch "+h.service.Kind())
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create stores a new record and returns it with its ID
func (h *RecordHandler[T]) Create(c *gin.Context) {
	record, err := h.bind(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.Create(c.Request.Context(), record, middleware.Subject(c)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// Update replaces the record under :id
func (h *RecordHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.bind(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.Update(c.Request.Context(), id, record, middleware.Subject(c)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Delete removes the record under :id
func (h *RecordHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.Subject(c)); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecordHandler[T]) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidReference):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to save "+h.service.Kind())
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
