package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studiocrm/crm-api/internal/constants"
	"github.com/studiocrm/crm-api/internal/dto"
	apierrors "github.com/studiocrm/crm-api/internal/errors"
	"github.com/studiocrm/crm-api/internal/middleware"
	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/services"
	"github.com/studiocrm/crm-api/internal/utils"
)

// ContactHandler coordinates contact CRUD and child-log handlers.
type ContactHandler struct {
	contactService *services.ContactService
	taskService    *services.TaskService
	windowDays     int
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService, taskService *services.TaskService, windowDays int) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		taskService:    taskService,
		windowDays:     windowDays,
	}
}

// ListContacts returns the contacts visible to the current user.
// Query: rep (admin only), show_archived, page, limit.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	viewer, exists := middleware.GetViewer(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var rep *string
	if repQuery := c.Query("rep"); repQuery != "" {
		rep = &repQuery
	}
	showArchived := c.Query("show_archived") == "true"

	params := utils.GetPaginationParams(c)

	contacts, total, err := h.contactService.ListContacts(viewer, services.ListContactsInput{
		Rep:          rep,
		ShowArchived: showArchived,
		Pagination:   params,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToContactListResponse(contacts, params, total))
}

// CreateContact creates a new contact.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	type CreateContactRequest struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone"`
		Tags  string `json:"tags"`
		Notes string `json:"notes"`
		Rep   string `json:"rep" binding:"required"`
	}

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	contact, err := h.contactService.CreateContact(services.CreateContactInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Tags:  req.Tags,
		Notes: req.Notes,
		Rep:   req.Rep,
	})
	if err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactDTO(*contact, time.Now(), h.windowDays))
}

// GetContact returns a contact with its tasks and logs.
func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	full, err := h.contactService.GetContact(contact.ID)
	if err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*full, time.Now(), h.windowDays))
}

// UpdateContact applies partial updates to a contact.
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	type UpdateContactRequest struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Tags  *string `json:"tags"`
		Notes *string `json:"notes"`
		Rep   *string `json:"rep"`
	}

	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.contactService.UpdateContact(contact.ID, services.UpdateContactInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Tags:  req.Tags,
		Notes: req.Notes,
		Rep:   req.Rep,
	})
	if err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*updated, time.Now(), h.windowDays))
}

// ArchiveContact soft-hides a contact from default views.
func (h *ContactHandler) ArchiveContact(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveContact restores a contact to default views.
func (h *ContactHandler) UnarchiveContact(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ContactHandler) setArchived(c *gin.Context, archived bool) {
	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.contactService.SetArchived(contact.ID, archived); err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       contact.ID,
		"archived": archived,
	})
}

// DeleteContact hard-deletes a contact and its child rows.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.contactService.DeleteContact(contact.ID); err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact deleted",
	})
}

// CreateTask adds a follow-up task to a contact.
func (h *ContactHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Task    string `json:"task" binding:"required"`
		DueDate string `json:"due_date"`
	}

	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(constants.DateFormat, req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ContactID: contact.ID,
		Task:      req.Task,
		DueDate:   dueDate,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, time.Now(), h.windowDays))
}

// CreateInteraction appends an interaction note to a contact.
func (h *ContactHandler) CreateInteraction(c *gin.Context) {
	type CreateInteractionRequest struct {
		Note string `json:"note" binding:"required"`
	}

	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.contactService.AddInteraction(contact.ID, req.Note)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.InteractionDTO{
		ID:        entry.ID,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	})
}

// CreateOrder appends an order record to a contact.
func (h *ContactHandler) CreateOrder(c *gin.Context) {
	type CreateOrderRequest struct {
		OrderDate string `json:"order_date" binding:"required"`
	}

	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	orderDate, err := time.Parse(constants.DateFormat, req.OrderDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid order_date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.contactService.AddOrder(contact.ID, orderDate)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.OrderDTO{
		ID:        entry.ID,
		OrderDate: entry.OrderDate.Format(constants.DateFormat),
	})
}

// CreatePOP appends a proof-of-purchase record to a contact.
func (h *ContactHandler) CreatePOP(c *gin.Context) {
	type CreatePOPRequest struct {
		Material string `json:"material" binding:"required"`
		SentDate string `json:"sent_date" binding:"required"`
	}

	contact, ok := contactFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req CreatePOPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sentDate, err := time.Parse(constants.DateFormat, req.SentDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid sent_date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.contactService.AddPOP(contact.ID, req.Material, sentDate)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.POPDTO{
		ID:       entry.ID,
		Material: entry.Material,
		SentDate: entry.SentDate.Format(constants.DateFormat),
	})
}

func contactFromContext(c *gin.Context) (models.Contact, bool) {
	value, exists := c.Get("contact")
	if !exists {
		return models.Contact{}, false
	}
	contact, ok := value.(models.Contact)
	return contact, ok
}

func respondContactError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrUnknownRep):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
