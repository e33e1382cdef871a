package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studiocrm/crm-api/internal/constants"
	"github.com/studiocrm/crm-api/internal/database"
	"github.com/studiocrm/crm-api/internal/dto"
	"github.com/studiocrm/crm-api/internal/middleware"
	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/repository"
	"github.com/studiocrm/crm-api/internal/services"
	"github.com/studiocrm/crm-api/internal/taskstatus"
)

type contactTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	viewer  *services.Viewer
	userSvc *services.AuthService
}

// setupContactTestEnv wires the contact and task routes behind a stand-in
// auth middleware that injects env.viewer into the request context.
func setupContactTestEnv(t *testing.T) *contactTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.FollowUpTask{},
		&models.InteractionLog{},
		&models.OrderLog{},
		&models.POPLog{},
		&models.RepNote{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewContactLogRepository(db)

	authService := services.NewAuthService(userRepo)
	contactService := services.NewContactService(contactRepo, logRepo, userRepo)
	taskService := services.NewTaskService(taskRepo)

	contactHandler := NewContactHandler(contactService, taskService, taskstatus.DefaultWindowDays)
	taskHandler := NewTaskHandler(taskService)

	env := &contactTestEnv{db: db, userSvc: authService}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if env.viewer != nil {
			c.Set(constants.ContextKeyUserID, env.viewer.UserID)
			c.Set(constants.ContextKeyUsername, env.viewer.Username)
			c.Set(constants.ContextKeyRole, string(env.viewer.Role))
		}
		c.Next()
	})

	contacts := r.Group("/api/contacts")
	{
		contacts.GET("", contactHandler.ListContacts)
		contacts.POST("", contactHandler.CreateContact)
		contacts.GET("/:id", middleware.RequireContactAccess(), contactHandler.GetContact)
		contacts.PATCH("/:id", middleware.RequireContactAccess(), contactHandler.UpdateContact)
		contacts.DELETE("/:id", middleware.RequireContactAccess(), contactHandler.DeleteContact)
		contacts.POST("/:id/archive", middleware.RequireContactAccess(), contactHandler.ArchiveContact)
		contacts.POST("/:id/unarchive", middleware.RequireContactAccess(), contactHandler.UnarchiveContact)
		contacts.POST("/:id/tasks", middleware.RequireContactAccess(), contactHandler.CreateTask)
		contacts.POST("/:id/interactions", middleware.RequireContactAccess(), contactHandler.CreateInteraction)
	}
	tasks := r.Group("/api/tasks")
	{
		tasks.POST("/:id/complete", middleware.RequireTaskAccess(), taskHandler.CompleteTask)
		tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
	}
	env.router = r

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *contactTestEnv) actAs(t *testing.T, username string, role models.Role) {
	t.Helper()

	user, err := env.userSvc.CreateUser(services.CreateUserInput{
		Username: username,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)

	env.viewer = &services.Viewer{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func (env *contactTestEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *contactTestEnv) seedContact(t *testing.T, rep string) *models.Contact {
	t.Helper()
	contact := &models.Contact{Name: "Contact of " + rep, Rep: rep}
	require.NoError(t, env.db.Create(contact).Error)
	return contact
}

func TestContactHandler_CreateContact(t *testing.T) {
	env := setupContactTestEnv(t)
	env.actAs(t, "rory", models.RoleSales)
	env.actAs(t, "polina", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/contacts", map[string]string{
		"name":  "Blue Bottle",
		"email": "orders@bluebottle.example",
		"rep":   "rory",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ContactDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Blue Bottle", response.Name)
	require.Equal(t, "rory", response.Rep)
	require.False(t, response.Archived)
}

func TestContactHandler_CreateContactRejectsUnknownRep(t *testing.T) {
	env := setupContactTestEnv(t)
	env.actAs(t, "polina", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/contacts", map[string]string{
		"name": "Blue Bottle",
		"rep":  "ghost",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactHandler_ListScopedToOwnRep(t *testing.T) {
	env := setupContactTestEnv(t)
	env.seedContact(t, "rory")
	env.seedContact(t, "sasha")

	env.actAs(t, "rory", models.RoleSales)

	// The rep query parameter must not widen a non-admin's view.
	w := env.do(t, http.MethodGet, "/api/contacts?rep=sasha", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ContactListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Contacts, 1)
	require.Equal(t, "rory", response.Contacts[0].Rep)

	env.actAs(t, "polina", models.RoleAdmin)

	w = env.do(t, http.MethodGet, "/api/contacts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Contacts, 2)
}

func TestContactHandler_ListPaginates(t *testing.T) {
	env := setupContactTestEnv(t)
	for i := 0; i < 3; i++ {
		env.seedContact(t, "rory")
	}

	env.actAs(t, "polina", models.RoleAdmin)

	w := env.do(t, http.MethodGet, "/api/contacts?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ContactListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Contacts, 1)
	require.Equal(t, 2, response.Pagination.Page)
	require.Equal(t, 2, response.Pagination.Limit)
	require.EqualValues(t, 3, response.Pagination.Total)
}

func TestContactHandler_ForeignContactAnswers404(t *testing.T) {
	env := setupContactTestEnv(t)
	foreign := env.seedContact(t, "sasha")

	env.actAs(t, "rory", models.RoleSales)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/contacts/%d", foreign.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", foreign.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Contact{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestContactHandler_ArchiveCycle(t *testing.T) {
	env := setupContactTestEnv(t)
	env.actAs(t, "polina", models.RoleAdmin)
	contact := env.seedContact(t, "rory")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/contacts/%d/archive", contact.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.ContactListResponse
	w = env.do(t, http.MethodGet, "/api/contacts", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Empty(t, list.Contacts)

	w = env.do(t, http.MethodGet, "/api/contacts?show_archived=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Contacts, 1)
	require.True(t, list.Contacts[0].Archived)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/contacts/%d/unarchive", contact.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/contacts", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Contacts, 1)
}

func TestContactHandler_CreateTask(t *testing.T) {
	env := setupContactTestEnv(t)
	env.actAs(t, "polina", models.RoleAdmin)
	contact := env.seedContact(t, "rory")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/contacts/%d/tasks", contact.ID), map[string]string{
		"task":     "send samples",
		"due_date": "2025-04-18",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "send samples", response.Task)
	require.NotNil(t, response.DueDate)
	require.Equal(t, "2025-04-18", *response.DueDate)
	require.False(t, response.Completed)
}

func TestContactHandler_CreateTaskRejectsMalformedDate(t *testing.T) {
	env := setupContactTestEnv(t)
	env.actAs(t, "polina", models.RoleAdmin)
	contact := env.seedContact(t, "rory")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/contacts/%d/tasks", contact.ID), map[string]string{
		"task":     "send samples",
		"due_date": "18/04/2025",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.FollowUpTask{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestContactHandler_DeleteCascades(t *testing.T) {
	env := setupContactTestEnv(t)
	env.actAs(t, "polina", models.RoleAdmin)
	contact := env.seedContact(t, "rory")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/contacts/%d/tasks", contact.ID), map[string]string{
		"task": "call back",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/contacts/%d/interactions", contact.ID), map[string]string{
		"note": "met at trade show",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", contact.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks, interactions int64
	require.NoError(t, env.db.Model(&models.FollowUpTask{}).Count(&tasks).Error)
	require.NoError(t, env.db.Model(&models.InteractionLog{}).Count(&interactions).Error)
	require.Zero(t, tasks)
	require.Zero(t, interactions)
}

func TestTaskHandler_CompleteTask(t *testing.T) {
	env := setupContactTestEnv(t)
	contact := env.seedContact(t, "rory")
	task := &models.FollowUpTask{ContactID: contact.ID, Task: "call back"}
	require.NoError(t, env.db.Create(task).Error)

	env.actAs(t, "rory", models.RoleSales)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.FollowUpTask
	require.NoError(t, env.db.First(&stored, task.ID).Error)
	require.True(t, stored.Completed)
}

func TestTaskHandler_ForeignTaskAnswers404(t *testing.T) {
	env := setupContactTestEnv(t)
	contact := env.seedContact(t, "sasha")
	task := &models.FollowUpTask{ContactID: contact.ID, Task: "call back"}
	require.NoError(t, env.db.Create(task).Error)

	env.actAs(t, "rory", models.RoleSales)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var stored models.FollowUpTask
	require.NoError(t, env.db.First(&stored, task.ID).Error)
	require.False(t, stored.Completed)
}
