package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sprintboard/sprintboard/internal/constants"
	"github.com/sprintboard/sprintboard/internal/database"
	"github.com/sprintboard/sprintboard/internal/dto"
	"github.com/sprintboard/sprintboard/internal/middleware"
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/repository"
	"github.com/sprintboard/sprintboard/internal/services"
	"github.com/sprintboard/sprintboard/internal/utils"
)

type projectTestEnv struct {
	db             *gorm.DB
	handler        *ProjectHandler
	projectService *services.ProjectService
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Sprint{},
		&models.UserStory{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	access := services.NewAccessService(projectRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, access)
	handler := NewProjectHandler(projectService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectTestEnv{
		db:             db,
		handler:        handler,
		projectService: projectService,
	}
}

func projectTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createTestProjectUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashed",
		RoleLabel:    "Developer",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)

	user := createTestProjectUser(t, env.db, "owner")

	payload := map[string]string{"name": "New Project"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, user.ID)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["name"], response.Name)
	require.Equal(t, user.ID, response.OwnerID)

	// The owner membership is created together with the project.
	var membership models.ProjectMembership
	err = env.db.Where("project_id = ? AND user_id = ?", response.ID, user.ID).First(&membership).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleProductOwner, membership.Role)
}

func TestProjectHandler_CreateProjectBlankName(t *testing.T) {
	env := setupProjectTestEnv(t)

	user := createTestProjectUser(t, env.db, "owner")

	payload := map[string]string{"name": "   "}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, user.ID)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_ListProjects(t *testing.T) {
	env := setupProjectTestEnv(t)

	user := createTestProjectUser(t, env.db, "owner")

	_, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Project One",
		OwnerID: user.ID,
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodGet, "/api/projects", nil, user.ID)

	env.handler.ListProjects(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects   []dto.ProjectDTO         `json:"projects"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, "Project One", response.Projects[0].Name)
	require.EqualValues(t, 1, response.Pagination.Total)
}

func TestProjectHandler_AddMember(t *testing.T) {
	env := setupProjectTestEnv(t)

	owner := createTestProjectUser(t, env.db, "owner")
	newcomer := createTestProjectUser(t, env.db, "newcomer")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Project One",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	payload := map[string]interface{}{
		"user_id": newcomer.ID,
		"role":    "Developer",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set(middleware.ContextKeyProject, *project)

	env.handler.AddMember(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var membership models.ProjectMembership
	err = env.db.Where("project_id = ? AND user_id = ?", project.ID, newcomer.ID).First(&membership).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleDeveloper, membership.Role)
}

func TestProjectHandler_AddMemberTwice(t *testing.T) {
	env := setupProjectTestEnv(t)

	owner := createTestProjectUser(t, env.db, "owner")
	newcomer := createTestProjectUser(t, env.db, "newcomer")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Project One",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	payload := map[string]interface{}{
		"user_id": newcomer.ID,
		"role":    "Developer",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, _ := projectTestContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set(middleware.ContextKeyProject, *project)
	env.handler.AddMember(c)

	c, w := projectTestContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set(middleware.ContextKeyProject, *project)
	env.handler.AddMember(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectHandler_RemoveMember(t *testing.T) {
	env := setupProjectTestEnv(t)

	owner := createTestProjectUser(t, env.db, "owner")
	member := createTestProjectUser(t, env.db, "member")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Project One",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	membership, err := env.projectService.AddMember(services.AddMemberInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleDeveloper,
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodDelete, "/api/projects/1/members/"+strconv.FormatUint(membership.ID, 10), nil, owner.ID)
	c.Set(middleware.ContextKeyProject, *project)
	c.Params = gin.Params{
		{Key: "id", Value: "1"},
		{Key: "member_id", Value: strconv.FormatUint(membership.ID, 10)},
	}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusOK, w.Code)

	err = env.db.First(&models.ProjectMembership{}, membership.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectHandler_RemoveOwnerMembership(t *testing.T) {
	env := setupProjectTestEnv(t)

	owner := createTestProjectUser(t, env.db, "owner")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Project One",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	var ownerMembership models.ProjectMembership
	err = env.db.Where("project_id = ? AND user_id = ?", project.ID, owner.ID).First(&ownerMembership).Error
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodDelete, "/api/projects/1/members/"+strconv.FormatUint(ownerMembership.ID, 10), nil, owner.ID)
	c.Set(middleware.ContextKeyProject, *project)
	c.Params = gin.Params{
		{Key: "id", Value: "1"},
		{Key: "member_id", Value: strconv.FormatUint(ownerMembership.ID, 10)},
	}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectHandler_ListMembers(t *testing.T) {
	env := setupProjectTestEnv(t)

	owner := createTestProjectUser(t, env.db, "owner")
	member := createTestProjectUser(t, env.db, "member")
	outsider := createTestProjectUser(t, env.db, "outsider")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Project One",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	_, err = env.projectService.AddMember(services.AddMemberInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleScrumMaster,
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodGet, "/api/projects/1/members", nil, owner.ID)
	c.Set(middleware.ContextKeyProject, *project)

	env.handler.ListMembers(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MembersPageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 2)
	require.Len(t, response.AvailableUsers, 1)
	require.Equal(t, outsider.Username, response.AvailableUsers[0].Username)
}
