package events

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"eventhub/internal/shared/utils/response"
	"eventhub/pkg/logger"
)

type Controller interface {
	GetAllEvents(c *gin.Context)
	GetFeaturedEvents(c *gin.Context)
	GetCategories(c *gin.Context)
	GetEvent(c *gin.Context)
	CreateEvent(c *gin.Context)
	UpdateEvent(c *gin.Context)
	DeleteEvent(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
	log       *logger.Logger
}

func NewController(service Service, log *logger.Logger) Controller {
	if log == nil {
		log = logger.GetDefault()
	}
	return &controller{service: service, validator: validator.New(), log: log}
}

func (ctrl *controller) GetAllEvents(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.ListEvents(c.Request.Context(), query)
	if err != nil {
		ctrl.internalError(c, err, "Failed to list events")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", gin.H{
		"events": ToSummaries(list),
		"count":  len(list),
	}, nil)
}

func (ctrl *controller) GetFeaturedEvents(c *gin.Context) {
	list, err := ctrl.service.GetFeaturedEvents(c.Request.Context())
	if err != nil {
		ctrl.internalError(c, err, "Failed to list featured events")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Featured events retrieved successfully", ToSummaries(list), nil)
}

func (ctrl *controller) GetCategories(c *gin.Context) {
	categories, err := ctrl.service.GetCategories(c.Request.Context())
	if err != nil {
		ctrl.internalError(c, err, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	response.RespondJSON(c, "success", http.StatusOK, "Categories retrieved successfully", categories, nil)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		ctrl.writeError(c, err, "Failed to get event")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		ctrl.internalError(c, err, "Failed to create event")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", event, nil)
}

func (ctrl *controller) UpdateEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	event, err := ctrl.service.UpdateEvent(c.Request.Context(), eventID, req)
	if err != nil {
		ctrl.writeError(c, err, "Failed to update event")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event updated successfully", event, nil)
}

func (ctrl *controller) DeleteEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteEvent(c.Request.Context(), eventID); err != nil {
		ctrl.writeError(c, err, "Failed to delete event")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

func (ctrl *controller) writeError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrEventNotFound) {
		response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		return
	}
	ctrl.internalError(c, err, message)
}

func (ctrl *controller) internalError(c *gin.Context, err error, message string) {
	ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
	response.RespondJSON(c, "error", http.StatusInternalServerError, message, nil, nil)
}

func parseEventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return 0, false
	}
	return id, true
}
