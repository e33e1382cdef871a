package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/repository"
	"github.com/studiocrm/crm-api/internal/utils"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrNameRequired    = errors.New("name is required")
	ErrUnknownRep      = errors.New("rep does not match an existing sales user")
)

// ContactService handles contact business logic, including the write-time
// check that Contact.Rep points at a real sales user.
type ContactService struct {
	contactRepo repository.ContactRepository
	logRepo     repository.ContactLogRepository
	userRepo    repository.UserRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo repository.ContactRepository, logRepo repository.ContactLogRepository, userRepo repository.UserRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logRepo:     logRepo,
		userRepo:    userRepo,
	}
}

// ListContactsInput represents filters for listing contacts
type ListContactsInput struct {
	Rep          *string
	ShowArchived bool
	Pagination   utils.PaginationParams
}

// ListContacts returns the contacts visible to the viewer, newest first.
func (s *ContactService) ListContacts(viewer Viewer, input ListContactsInput) ([]models.Contact, int64, error) {
	filter := BuildContactFilter(viewer, ViewOptions{
		Rep:          input.Rep,
		ShowArchived: input.ShowArchived,
	})
	filter.Pagination = &input.Pagination

	contacts, total, err := s.contactRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, total, nil
}

// GetContact returns a contact with its child records.
func (s *ContactService) GetContact(id uint64) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(id, "Tasks", "Interactions", "Orders", "POPs")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	return contact, nil
}

// CreateContactInput represents input for creating a contact
type CreateContactInput struct {
	Name  string
	Email string
	Phone string
	Tags  string
	Notes string
	Rep   string
}

// CreateContact creates a contact after validating the rep reference.
func (s *ContactService) CreateContact(input CreateContactInput) (*models.Contact, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := s.validateRep(input.Rep); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		Name:  name,
		Email: input.Email,
		Phone: input.Phone,
		Tags:  input.Tags,
		Notes: input.Notes,
		Rep:   input.Rep,
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// UpdateContactInput represents input for updating a contact
type UpdateContactInput struct {
	Name  *string
	Email *string
	Phone *string
	Tags  *string
	Notes *string
	Rep   *string
}

// UpdateContact applies partial updates, re-validating the rep on change.
func (s *ContactService) UpdateContact(id uint64, input UpdateContactInput) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		contact.Name = *input.Name
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}
	if input.Tags != nil {
		contact.Tags = *input.Tags
	}
	if input.Notes != nil {
		contact.Notes = *input.Notes
	}
	if input.Rep != nil {
		if err := s.validateRep(*input.Rep); err != nil {
			return nil, err
		}
		contact.Rep = *input.Rep
	}

	if err := s.contactRepo.Update(contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

// SetArchived archives or unarchives a contact. Child rows are untouched.
func (s *ContactService) SetArchived(id uint64, archived bool) error {
	if err := s.contactRepo.SetArchived(id, archived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to update archived flag: %w", err)
	}
	return nil
}

// DeleteContact hard-deletes a contact together with its child rows.
func (s *ContactService) DeleteContact(id uint64) error {
	if err := s.contactRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// AddInteraction appends an interaction note to a contact.
func (s *ContactService) AddInteraction(contactID uint64, note string) (*models.InteractionLog, error) {
	entry := &models.InteractionLog{
		ContactID: contactID,
		Note:      note,
	}
	if err := s.logRepo.CreateInteraction(entry); err != nil {
		return nil, fmt.Errorf("failed to log interaction: %w", err)
	}
	return entry, nil
}

// AddOrder appends an order record to a contact.
func (s *ContactService) AddOrder(contactID uint64, orderDate time.Time) (*models.OrderLog, error) {
	entry := &models.OrderLog{
		ContactID: contactID,
		OrderDate: orderDate,
	}
	if err := s.logRepo.CreateOrder(entry); err != nil {
		return nil, fmt.Errorf("failed to log order: %w", err)
	}
	return entry, nil
}

// AddPOP appends a proof-of-purchase record to a contact.
func (s *ContactService) AddPOP(contactID uint64, material string, sentDate time.Time) (*models.POPLog, error) {
	entry := &models.POPLog{
		ContactID: contactID,
		Material:  material,
		SentDate:  sentDate,
	}
	if err := s.logRepo.CreatePOP(entry); err != nil {
		return nil, fmt.Errorf("failed to log proof of purchase: %w", err)
	}
	return entry, nil
}

func (s *ContactService) validateRep(rep string) error {
	exists, err := s.userRepo.ExistsWithRole(rep, models.RoleSales)
	if err != nil {
		return fmt.Errorf("failed to validate rep: %w", err)
	}
	if !exists {
		return ErrUnknownRep
	}
	return nil
}
