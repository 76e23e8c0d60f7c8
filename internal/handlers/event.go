package handlers

import (
	"errors"
	"net/http"

	"github.com/eventreg/event-registration-api/internal/dto"
	"github.com/eventreg/event-registration-api/internal/middleware"
	"github.com/eventreg/event-registration-api/internal/response"
	"github.com/eventreg/event-registration-api/internal/services"
	"github.com/eventreg/event-registration-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// EventHandler coordinates event-related HTTP handlers.
type EventHandler struct {
	eventService *services.EventService
	uploadDir    string
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService, uploadDir string) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		uploadDir:    uploadDir,
	}
}

// Create stores a new event. Accepts JSON or multipart form; the form variant
// may carry an optional image file.
func (h *EventHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	type CreateRequest struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
		Date        string `json:"date" form:"date"`
		Location    string `json:"location" form:"location"`
		OrganizerID uint64 `json:"organizer_id" form:"organizer_id"`
	}

	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var image string
	if file, err := c.FormFile("image"); err == nil {
		name, err := utils.SaveUploadedImage(c, file, h.uploadDir)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to store image")
			return
		}
		image = name
	}

	event, err := h.eventService.CreateEvent(services.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		OrganizerID: req.OrganizerID,
		Image:       image,
		CreatorID:   userID,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.Created(c, "Event created successfully", dto.ToEventDTO(*event))
}

// List returns all events, soonest first.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.ListEvents()
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.OK(c, "", dto.ToEventDTOs(events))
}

// ListByOrganizer returns one organizer's events, soonest first.
func (h *EventHandler) ListByOrganizer(c *gin.Context) {
	organizerID, ok := parseIDParam(c, "organizerId")
	if !ok {
		return
	}

	events, err := h.eventService.ListEventsByOrganizer(organizerID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.OK(c, "", dto.ToEventDTOs(events))
}

// Get returns one event by ID.
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.OK(c, "", dto.ToEventDTO(*event))
}

// Update applies a partial update if the caller created the event.
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	type UpdateRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
		Location    *string `json:"location"`
		OrganizerID *uint64 `json:"organizer_id"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(id, services.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		OrganizerID: req.OrganizerID,
	}, userID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.OK(c, "Event updated successfully", dto.ToEventDTO(*event))
}

// Delete removes an event if the caller created it.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.eventService.DeleteEvent(id, userID); err != nil {
		respondEventError(c, err)
		return
	}

	response.OK(c, "Event deleted successfully", nil)
}

// Register records the caller's registration for an event.
func (h *EventHandler) Register(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	reg, err := h.eventService.Register(id, userID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.Created(c, "Registered for event successfully", dto.ToRegistrationDTO(*reg))
}

// Unregister removes the caller's registration for an event.
func (h *EventHandler) Unregister(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.eventService.Unregister(id, userID); err != nil {
		respondEventError(c, err)
		return
	}

	response.OK(c, "Unregistered from event successfully", nil)
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingEventFields),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrDescriptionEmpty),
		errors.Is(err, services.ErrLocationEmpty),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrNoEventFields),
		errors.Is(err, services.ErrAlreadyRegistered),
		// Missing organizer or creator is a business-rule failure of the
		// request body, not a missing resource.
		errors.Is(err, services.ErrOrganizerNotFound),
		errors.Is(err, services.ErrCreatorNotFound):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotEventOwner):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrRegistrationNotFound),
		errors.Is(err, services.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
