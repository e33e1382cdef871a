package services

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/studiocrm/crm-api/internal/constants"
	"github.com/studiocrm/crm-api/internal/repository"
)

// RepStatsHeader is the fixed column set for rep-stat exports.
var RepStatsHeader = []string{"Rep", "Contacts", "Completed Tasks", "Overdue Tasks", "Rep Notes"}

// ExportService serializes CRM data to CSV and ZIP. Rep-stat rows reuse the
// leaderboard rollup so exports and dashboard renders always agree.
type ExportService struct {
	dashboardService *DashboardService
	contactRepo      repository.ContactRepository
	taskRepo         repository.TaskRepository
	logRepo          repository.ContactLogRepository
}

// NewExportService creates a new ExportService
func NewExportService(dashboardService *DashboardService, contactRepo repository.ContactRepository, taskRepo repository.TaskRepository, logRepo repository.ContactLogRepository) *ExportService {
	return &ExportService{
		dashboardService: dashboardService,
		contactRepo:      contactRepo,
		taskRepo:         taskRepo,
		logRepo:          logRepo,
	}
}

// WriteRepStatsCSV writes the per-rep rollup for the viewer as CSV.
func (s *ExportService) WriteRepStatsCSV(w io.Writer, viewer Viewer) error {
	data, err := s.dashboardService.Build(viewer, ViewOptions{})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(RepStatsHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range data.Leaderboard {
		row := []string{
			entry.Rep,
			strconv.Itoa(entry.TotalContacts),
			strconv.Itoa(entry.CompletedTasks),
			strconv.Itoa(entry.OverdueTasks),
			data.RepNotes[entry.Rep].Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBackupZIP writes a ZIP archive of per-entity CSV dumps plus the
// rep-stat rollup.
func (s *ExportService) WriteBackupZIP(w io.Writer, viewer Viewer) error {
	zw := zip.NewWriter(w)

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"contacts.csv", s.writeContactsCSV},
		{"tasks.csv", s.writeTasksCSV},
		{"interactions.csv", s.writeInteractionsCSV},
		{"orders.csv", s.writeOrdersCSV},
		{"pop.csv", s.writePOPsCSV},
		{"rep_stats.csv", func(fw io.Writer) error { return s.WriteRepStatsCSV(fw, viewer) }},
	}

	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("failed to create %s in archive: %w", f.name, err)
		}
		if err := f.write(fw); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	return zw.Close()
}

func (s *ExportService) writeContactsCSV(w io.Writer) error {
	contacts, err := s.contactRepo.All()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Email", "Phone", "Tags", "Notes", "Rep", "Archived", "Created At"}); err != nil {
		return err
	}
	for _, c := range contacts {
		err := cw.Write([]string{
			strconv.FormatUint(c.ID, 10),
			c.Name,
			c.Email,
			c.Phone,
			c.Tags,
			c.Notes,
			c.Rep,
			strconv.FormatBool(c.Archived),
			c.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writeTasksCSV(w io.Writer) error {
	tasks, err := s.taskRepo.All()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Contact ID", "Task", "Due Date", "Completed"}); err != nil {
		return err
	}
	for _, t := range tasks {
		dueDate := ""
		if t.DueDate != nil {
			dueDate = t.DueDate.Format(constants.DateFormat)
		}
		err := cw.Write([]string{
			strconv.FormatUint(t.ID, 10),
			strconv.FormatUint(t.ContactID, 10),
			t.Task,
			dueDate,
			strconv.FormatBool(t.Completed),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writeInteractionsCSV(w io.Writer) error {
	entries, err := s.logRepo.AllInteractions()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Contact ID", "Note", "Created At"}); err != nil {
		return err
	}
	for _, e := range entries {
		err := cw.Write([]string{
			strconv.FormatUint(e.ID, 10),
			strconv.FormatUint(e.ContactID, 10),
			e.Note,
			e.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writeOrdersCSV(w io.Writer) error {
	entries, err := s.logRepo.AllOrders()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Contact ID", "Order Date"}); err != nil {
		return err
	}
	for _, e := range entries {
		err := cw.Write([]string{
			strconv.FormatUint(e.ID, 10),
			strconv.FormatUint(e.ContactID, 10),
			e.OrderDate.Format(constants.DateFormat),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writePOPsCSV(w io.Writer) error {
	entries, err := s.logRepo.AllPOPs()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Contact ID", "Material", "Sent Date"}); err != nil {
		return err
	}
	for _, e := range entries {
		err := cw.Write([]string{
			strconv.FormatUint(e.ID, 10),
			strconv.FormatUint(e.ContactID, 10),
			e.Material,
			e.SentDate.Format(constants.DateFormat),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
