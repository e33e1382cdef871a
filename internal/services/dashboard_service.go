package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/repository"
	"github.com/studiocrm/crm-api/internal/taskstatus"
)

var ErrRepNoteForbidden = errors.New("only admins can update rep notes")

// DashboardService computes the dashboard aggregates and the per-rep
// leaderboard. All date classification goes through taskstatus.Classify so
// the counts here can never drift from per-task display.
type DashboardService struct {
	contactRepo repository.ContactRepository
	taskRepo    repository.TaskRepository
	repNoteRepo repository.RepNoteRepository
	windowDays  int
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(contactRepo repository.ContactRepository, taskRepo repository.TaskRepository, repNoteRepo repository.RepNoteRepository, windowDays int) *DashboardService {
	return &DashboardService{
		contactRepo: contactRepo,
		taskRepo:    taskRepo,
		repNoteRepo: repNoteRepo,
		windowDays:  windowDays,
		now:         time.Now,
	}
}

// DashboardStats holds the global counts for the visible contact set.
type DashboardStats struct {
	TotalContacts int `json:"total_contacts"`
	TasksDueToday int `json:"tasks_due_today"`
	TasksDueSoon  int `json:"tasks_due_soon"`
	Overdue       int `json:"overdue"`
}

// LeaderboardEntry is one rep's rollup.
type LeaderboardEntry struct {
	Rep            string `json:"rep"`
	TotalContacts  int    `json:"total_contacts"`
	CompletedTasks int    `json:"completed_tasks"`
	OverdueTasks   int    `json:"overdue_tasks"`
}

// RepNoteView is a rep's note with its last-updated timestamp.
type RepNoteView struct {
	Note      string    `json:"note"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DashboardData is the render-ready dashboard payload.
type DashboardData struct {
	Dashboard   DashboardStats         `json:"dashboard"`
	Leaderboard []LeaderboardEntry     `json:"leaderboard"`
	RepNotes    map[string]RepNoteView `json:"rep_notes"`
}

// Build produces the dashboard for the viewer. Task counts are scoped to the
// same visible contact set as the contact count, so a non-admin never sees
// another rep's task totals. An empty visible set yields all zeros.
func (s *DashboardService) Build(viewer Viewer, opts ViewOptions) (*DashboardData, error) {
	filter := BuildContactFilter(viewer, opts)

	contacts, _, err := s.contactRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load visible contacts: %w", err)
	}

	contactIDs := make([]uint64, 0, len(contacts))
	for _, c := range contacts {
		contactIDs = append(contactIDs, c.ID)
	}

	tasks, err := s.taskRepo.ListByContactIDs(contactIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	today := s.now()

	data := &DashboardData{
		Dashboard: DashboardStats{TotalContacts: len(contacts)},
	}
	for _, t := range tasks {
		switch taskstatus.Classify(t.Completed, t.DueDate, today, s.windowDays) {
		case taskstatus.StatusOverdue:
			data.Dashboard.Overdue++
		case taskstatus.StatusDueToday:
			data.Dashboard.TasksDueToday++
		case taskstatus.StatusDueSoon:
			data.Dashboard.TasksDueSoon++
		}
	}

	leaderboard, repNotes, err := s.buildLeaderboard(contacts, tasks, today)
	if err != nil {
		return nil, err
	}
	data.Leaderboard = leaderboard
	data.RepNotes = repNotes

	return data, nil
}

// buildLeaderboard rolls up per-rep stats over the non-archived slice of the
// visible contacts. Reps are ordered lexicographically so repeated renders of
// unchanged data are identical.
func (s *DashboardService) buildLeaderboard(contacts []models.Contact, tasks []models.FollowUpTask, today time.Time) ([]LeaderboardEntry, map[string]RepNoteView, error) {
	repByContact := make(map[uint64]string)
	entries := make(map[string]*LeaderboardEntry)

	for _, c := range contacts {
		if c.Archived {
			continue
		}
		repByContact[c.ID] = c.Rep
		entry, ok := entries[c.Rep]
		if !ok {
			entry = &LeaderboardEntry{Rep: c.Rep}
			entries[c.Rep] = entry
		}
		entry.TotalContacts++
	}

	for _, t := range tasks {
		rep, ok := repByContact[t.ContactID]
		if !ok {
			continue
		}
		if t.Completed {
			entries[rep].CompletedTasks++
			continue
		}
		if taskstatus.Classify(t.Completed, t.DueDate, today, s.windowDays) == taskstatus.StatusOverdue {
			entries[rep].OverdueTasks++
		}
	}

	reps := make([]string, 0, len(entries))
	for rep := range entries {
		reps = append(reps, rep)
	}
	sort.Strings(reps)

	leaderboard := make([]LeaderboardEntry, 0, len(reps))
	repNotes := make(map[string]RepNoteView, len(reps))
	for _, rep := range reps {
		leaderboard = append(leaderboard, *entries[rep])

		note, err := s.repNoteRepo.GetOrCreate(rep)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load rep note for %s: %w", rep, err)
		}
		repNotes[rep] = RepNoteView{
			Note:      note.Note,
			UpdatedAt: note.UpdatedAt,
		}
	}

	return leaderboard, repNotes, nil
}

// UpdateRepNote overwrites a rep's note. Admin only; a non-admin caller gets
// ErrRepNoteForbidden and nothing is written.
func (s *DashboardService) UpdateRepNote(viewer Viewer, rep, note string) (*models.RepNote, error) {
	if !viewer.IsAdmin() {
		return nil, ErrRepNoteForbidden
	}

	if _, err := s.repNoteRepo.GetOrCreate(rep); err != nil {
		return nil, fmt.Errorf("failed to ensure rep note exists: %w", err)
	}

	if err := s.repNoteRepo.UpdateNote(rep, note); err != nil {
		return nil, fmt.Errorf("failed to update rep note: %w", err)
	}

	updated, err := s.repNoteRepo.GetOrCreate(rep)
	if err != nil {
		return nil, fmt.Errorf("failed to reload rep note: %w", err)
	}
	return updated, nil
}
