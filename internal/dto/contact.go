package dto

import (
	"time"

	"github.com/studiocrm/crm-api/internal/constants"
	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/taskstatus"
	"github.com/studiocrm/crm-api/internal/utils"
)

// TaskDTO represents a follow-up task in API responses, with its derived
// status attached.
type TaskDTO struct {
	ID        uint64            `json:"id"`
	ContactID uint64            `json:"contact_id"`
	Task      string            `json:"task"`
	DueDate   *string           `json:"due_date"`
	Completed bool              `json:"completed"`
	Status    taskstatus.Status `json:"status"`
}

// ToTaskDTO converts a task model, classifying its status for display.
func ToTaskDTO(task models.FollowUpTask, today time.Time, windowDays int) TaskDTO {
	var dueDate *string
	if task.DueDate != nil {
		formatted := task.DueDate.Format(constants.DateFormat)
		dueDate = &formatted
	}

	return TaskDTO{
		ID:        task.ID,
		ContactID: task.ContactID,
		Task:      task.Task,
		DueDate:   dueDate,
		Completed: task.Completed,
		Status:    taskstatus.Classify(task.Completed, task.DueDate, today, windowDays),
	}
}

// InteractionDTO represents an interaction log entry in API responses
type InteractionDTO struct {
	ID        uint64    `json:"id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderDTO represents an order log entry in API responses
type OrderDTO struct {
	ID        uint64 `json:"id"`
	OrderDate string `json:"order_date"`
}

// POPDTO represents a proof-of-purchase log entry in API responses
type POPDTO struct {
	ID       uint64 `json:"id"`
	Material string `json:"material"`
	SentDate string `json:"sent_date"`
}

// ContactDTO represents a contact in API responses
type ContactDTO struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Tags         string           `json:"tags"`
	Notes        string           `json:"notes"`
	Rep          string           `json:"rep"`
	Archived     bool             `json:"archived"`
	CreatedAt    time.Time        `json:"created_at"`
	Tasks        []TaskDTO        `json:"tasks,omitempty"`
	Interactions []InteractionDTO `json:"interactions,omitempty"`
	Orders       []OrderDTO       `json:"orders,omitempty"`
	POPs         []POPDTO         `json:"pops,omitempty"`
}

// ToContactDTO converts a contact model with its loaded children.
func ToContactDTO(contact models.Contact, today time.Time, windowDays int) ContactDTO {
	d := ContactDTO{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Tags:      contact.Tags,
		Notes:     contact.Notes,
		Rep:       contact.Rep,
		Archived:  contact.Archived,
		CreatedAt: contact.CreatedAt,
	}

	for _, t := range contact.Tasks {
		d.Tasks = append(d.Tasks, ToTaskDTO(t, today, windowDays))
	}
	for _, e := range contact.Interactions {
		d.Interactions = append(d.Interactions, InteractionDTO{
			ID:        e.ID,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	for _, e := range contact.Orders {
		d.Orders = append(d.Orders, OrderDTO{
			ID:        e.ID,
			OrderDate: e.OrderDate.Format(constants.DateFormat),
		})
	}
	for _, e := range contact.POPs {
		d.POPs = append(d.POPs, POPDTO{
			ID:       e.ID,
			Material: e.Material,
			SentDate: e.SentDate.Format(constants.DateFormat),
		})
	}

	return d
}

// ContactListItemDTO represents a contact in list responses (no children)
type ContactListItemDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Tags      string    `json:"tags"`
	Rep       string    `json:"rep"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListResponse represents a paginated list of contacts
type ContactListResponse struct {
	Contacts   []ContactListItemDTO     `json:"contacts"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToContactListResponse converts a page of contacts.
func ToContactListResponse(contacts []models.Contact, params utils.PaginationParams, total int64) ContactListResponse {
	items := make([]ContactListItemDTO, 0, len(contacts))
	for _, c := range contacts {
		items = append(items, ContactListItemDTO{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Tags:      c.Tags,
			Rep:       c.Rep,
			Archived:  c.Archived,
			CreatedAt: c.CreatedAt,
		})
	}

	return ContactListResponse{
		Contacts: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
