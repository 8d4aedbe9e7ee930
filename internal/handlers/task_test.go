package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/dto"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	tokens   *services.TokenService
	taskRepo repository.TaskRepository

	admin     *models.User
	moderator *models.User
	user1     *models.User
	user2     *models.User
}

func (s *TaskHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Task{},
		&models.RevokedToken{},
	)
	s.Require().NoError(err)

	cfg := &config.Config{
		JWTSecret:               "task-handler-test-secret",
		AccessTokenLifetimeMin:  60,
		RefreshTokenLifetimeMin: 1440,
		CookieSameSite:          http.SameSiteLaxMode,
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	s.taskRepo = repository.NewTaskRepository(db)

	s.tokens = services.NewTokenService(cfg, tokenRepo)
	taskService := services.NewTaskService(s.taskRepo)
	userService := services.NewUserService(userRepo, sessionRepo)

	taskHandler := NewTaskHandler(taskService)
	userHandler := NewUserHandler(userService)

	requireAuth := middleware.RequireAuth(s.tokens, userRepo, sessionRepo)

	r := gin.New()
	tasks := r.Group("/api/tasks")
	{
		tasks.GET("/public", taskHandler.ListPublicTasks)
		tasks.GET("", requireAuth, taskHandler.ListTasks)
		tasks.POST("", requireAuth, taskHandler.CreateTask)
		tasks.GET("/:id", requireAuth, taskHandler.GetTask)
		tasks.PATCH("/:id", requireAuth, taskHandler.UpdateTask)
		tasks.DELETE("/:id", requireAuth, taskHandler.DeleteTask)
	}
	users := r.Group("/api/users", requireAuth, middleware.RequireAdministrator())
	{
		users.GET("", userHandler.ListUsers)
		users.POST("/:id/promote", userHandler.PromoteUser)
		users.POST("/:id/demote", userHandler.DemoteUser)
		users.POST("/:id/ban", userHandler.BanUser)
	}
	s.router = r

	s.admin = s.createUser("admin@x.com", models.RoleAdministrator)
	s.moderator = s.createUser("mod@x.com", models.RoleModerator)
	s.user1 = s.createUser("u1@x.com", models.RoleUser)
	s.user2 = s.createUser("u2@x.com", models.RoleUser)
}

func (s *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *TaskHandlerTestSuite) createUser(email string, role models.RoleName) *models.User {
	user := &models.User{
		Email:         email,
		Name:          "Test",
		Surname:       "User",
		PasswordHash:  "unused",
		Role:          &role,
		AccountStatus: models.AccountStatusActive,
		IsActive:      true,
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *TaskHandlerTestSuite) createTask(owner *models.User, title string, parentID *uint64) *models.Task {
	task := &models.Task{
		Title:    title,
		Status:   models.TaskStatusPending,
		UserID:   owner.ID,
		ParentID: parentID,
	}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *TaskHandlerTestSuite) tokenFor(user *models.User) string {
	pair, err := s.tokens.IssuePair(user.ID)
	s.Require().NoError(err)
	return pair.AccessToken
}

func (s *TaskHandlerTestSuite) do(method, url string, payload interface{}, actor *models.User) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+s.tokenFor(actor))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TaskHandlerTestSuite) listedTitles(w *httptest.ResponseRecorder) []string {
	var resp dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	titles := make([]string, len(resp.Tasks))
	for i, item := range resp.Tasks {
		titles[i] = item.Title
	}
	return titles
}

func (s *TaskHandlerTestSuite) TestCreateTask() {
	w := s.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "Write report",
		"description": "quarterly numbers",
	}, s.user1)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.TaskDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal("Write report", created.Title)
	s.Equal(models.TaskStatusPending, created.Status)
	s.Require().NotNil(created.Owner)
	s.Equal(s.user1.ID, created.Owner.ID)
}

func (s *TaskHandlerTestSuite) TestCreateSubtask() {
	parent := s.createTask(s.user1, "parent", nil)

	w := s.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":     "child",
		"parent_id": parent.ID,
	}, s.user1)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.TaskDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Require().NotNil(created.ParentID)
	s.Equal(parent.ID, *created.ParentID)
}

func (s *TaskHandlerTestSuite) TestCreateTaskMissingParent() {
	w := s.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":     "orphan",
		"parent_id": 9999,
	}, s.user1)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestCreateTaskInvalidStatus() {
	w := s.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":  "bad status",
		"status": "finished",
	}, s.user1)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerTestSuite) TestListScopePlainUser() {
	s.createTask(s.user1, "mine", nil)
	s.createTask(s.user2, "theirs", nil)
	s.createTask(s.admin, "admins", nil)

	w := s.do(http.MethodGet, "/api/tasks", nil, s.user1)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"mine"}, s.listedTitles(w))
}

func (s *TaskHandlerTestSuite) TestListScopeModerator() {
	s.createTask(s.user1, "u1 task", nil)
	s.createTask(s.moderator, "mod task", nil)
	s.createTask(s.admin, "admin task", nil)

	w := s.do(http.MethodGet, "/api/tasks", nil, s.moderator)
	s.Require().Equal(http.StatusOK, w.Code)
	s.ElementsMatch([]string{"u1 task", "mod task"}, s.listedTitles(w))
}

func (s *TaskHandlerTestSuite) TestListScopeAdministrator() {
	s.createTask(s.user1, "u1 task", nil)
	s.createTask(s.moderator, "mod task", nil)
	s.createTask(s.admin, "admin task", nil)

	w := s.do(http.MethodGet, "/api/tasks", nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)
	s.ElementsMatch([]string{"u1 task", "mod task", "admin task"}, s.listedTitles(w))
}

func (s *TaskHandlerTestSuite) TestListRoleFilter() {
	s.createTask(s.user1, "u1 task", nil)
	s.createTask(s.moderator, "mod task", nil)

	w := s.do(http.MethodGet, "/api/tasks?group=user", nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"u1 task"}, s.listedTitles(w))

	w = s.do(http.MethodGet, "/api/tasks?group=wizard", nil, s.admin)
	s.Equal(http.StatusBadRequest, w.Code)

	// A plain user's group parameter is ignored rather than rejected
	w = s.do(http.MethodGet, "/api/tasks?group=wizard", nil, s.user1)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"u1 task"}, s.listedTitles(w))
}

func (s *TaskHandlerTestSuite) TestListIncludeDeletedIsAdminOnly() {
	s.createTask(s.user1, "live", nil)
	deleted := s.createTask(s.user1, "gone", nil)
	s.Require().NoError(s.taskRepo.SoftDelete(deleted.ID))

	w := s.do(http.MethodGet, "/api/tasks?include_deleted=true", nil, s.user1)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"live"}, s.listedTitles(w))

	w = s.do(http.MethodGet, "/api/tasks?include_deleted=true", nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)
	s.ElementsMatch([]string{"live", "gone"}, s.listedTitles(w))
}

func (s *TaskHandlerTestSuite) TestListStatusFilter() {
	s.createTask(s.user1, "pending one", nil)
	done := s.createTask(s.user1, "done one", nil)
	s.Require().NoError(s.db.Model(done).Update("status", models.TaskStatusDone).Error)

	w := s.do(http.MethodGet, "/api/tasks?status=done", nil, s.user1)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"done one"}, s.listedTitles(w))

	w = s.do(http.MethodGet, "/api/tasks?status=bogus", nil, s.user1)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerTestSuite) TestPublicListNeedsNoAuth() {
	s.createTask(s.user1, "visible", nil)
	deleted := s.createTask(s.user2, "hidden", nil)
	s.Require().NoError(s.taskRepo.SoftDelete(deleted.ID))

	w := s.do(http.MethodGet, "/api/tasks/public", nil, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"visible"}, s.listedTitles(w))
}

func (s *TaskHandlerTestSuite) TestGetTaskResolvesSubtaskTree() {
	root := s.createTask(s.user1, "root", nil)
	child := s.createTask(s.user1, "child", &root.ID)
	s.createTask(s.user1, "grandchild", &child.ID)
	removed := s.createTask(s.user1, "removed child", &root.ID)
	s.Require().NoError(s.taskRepo.SoftDelete(removed.ID))

	w := s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", root.ID), nil, s.user1)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var tree dto.TaskDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tree))
	s.Equal("root", tree.Title)
	s.Require().Len(tree.Subtasks, 1)
	s.Equal("child", tree.Subtasks[0].Title)
	s.Require().Len(tree.Subtasks[0].Subtasks, 1)
	s.Equal("grandchild", tree.Subtasks[0].Subtasks[0].Title)
}

func (s *TaskHandlerTestSuite) TestGetTaskOwnershipPolicy() {
	task := s.createTask(s.user1, "private", nil)
	adminTask := s.createTask(s.admin, "admin owned", nil)

	w := s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.user2)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.moderator)
	s.Equal(http.StatusOK, w.Code)

	// Moderators do not reach into privileged accounts' tasks
	w = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", adminTask.ID), nil, s.moderator)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.admin)
	s.Equal(http.StatusOK, w.Code)
}

func (s *TaskHandlerTestSuite) TestUpdateTask() {
	task := s.createTask(s.user1, "before", nil)

	w := s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"title":  "after",
		"status": "in_progress",
	}, s.user1)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.TaskDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.Equal("after", updated.Title)
	s.Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *TaskHandlerTestSuite) TestUpdateTaskPermissions() {
	task := s.createTask(s.user1, "target", nil)

	w := s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"title": "hijacked",
	}, s.user2)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"title": "moderated",
	}, s.moderator)
	s.Equal(http.StatusOK, w.Code)
}

func (s *TaskHandlerTestSuite) TestDeleteTaskIsSoft() {
	task := s.createTask(s.user1, "doomed", nil)

	w := s.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.user2)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// The row survives with the deletion flag set
	var stored models.Task
	s.Require().NoError(s.db.First(&stored, task.ID).Error)
	s.True(stored.IsDeleted)

	// Deleted tasks vanish from regular reads
	w = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.user1)
	s.Equal(http.StatusNotFound, w.Code)

	// Administrators still see them
	w = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.admin)
	s.Equal(http.StatusOK, w.Code)
}

func (s *TaskHandlerTestSuite) TestUserAdminEndpointsRequireAdministrator() {
	w := s.do(http.MethodGet, "/api/users", nil, s.user1)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users", nil, s.moderator)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users", nil, s.admin)
	s.Equal(http.StatusOK, w.Code)
}

func (s *TaskHandlerTestSuite) TestPromoteAndDemote() {
	w := s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/promote", s.user1.ID), nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var promoted models.User
	s.Require().NoError(s.db.First(&promoted, s.user1.ID).Error)
	s.Require().NotNil(promoted.Role)
	s.Equal(models.RoleModerator, *promoted.Role)
	s.True(promoted.IsStaff)

	// Promoting a moderator again is refused
	w = s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/promote", s.user1.ID), nil, s.admin)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/demote", s.user1.ID), nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)

	var demoted models.User
	s.Require().NoError(s.db.First(&demoted, s.user1.ID).Error)
	s.Equal(models.RoleUser, *demoted.Role)
	s.False(demoted.IsStaff)
}

func (s *TaskHandlerTestSuite) TestBanUser() {
	session := &models.UserSession{UserID: s.user2.ID, ConnectionNumber: 1}
	s.Require().NoError(s.db.Create(session).Error)

	w := s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/ban", s.user2.ID), nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var banned models.User
	s.Require().NoError(s.db.First(&banned, s.user2.ID).Error)
	s.Equal(models.AccountStatusBanned, banned.AccountStatus)
	s.False(banned.IsActive)

	var sessionCount int64
	s.Require().NoError(s.db.Model(&models.UserSession{}).
		Where("user_id = ?", s.user2.ID).Count(&sessionCount).Error)
	s.Zero(sessionCount)

	// A banned account's still-valid token stops working
	w = s.do(http.MethodGet, "/api/tasks", nil, s.user2)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/ban", s.user2.ID), nil, s.admin)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
