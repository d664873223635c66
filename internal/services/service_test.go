package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// serviceTestEnv wires the full service stack over an in-memory database.
type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	sprintRepo  repository.SprintRepository
	storyRepo   repository.StoryRepository
	taskRepo    repository.TaskRepository

	access  *AccessService
	auth    *AuthService
	project *ProjectService
	sprint  *SprintService
	backlog *BacklogService
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	env := &serviceTestEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		projectRepo: repository.NewProjectRepository(db),
		sprintRepo:  repository.NewSprintRepository(db),
		storyRepo:   repository.NewStoryRepository(db),
		taskRepo:    repository.NewTaskRepository(db),
	}

	env.access = NewAccessService(env.projectRepo)
	env.auth = NewAuthService(env.userRepo)
	env.project = NewProjectService(env.projectRepo, env.userRepo, env.access)
	env.sprint = NewSprintService(env.sprintRepo, env.storyRepo, env.projectRepo, env.access)
	env.backlog = NewBacklogService(env.storyRepo, env.taskRepo, env.sprintRepo, env.projectRepo, env.userRepo, env.access, true)

	return env
}

func (env *serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		RoleLabel:    string(models.RoleDeveloper),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *serviceTestEnv) createProject(t *testing.T, ownerID uint64, name string) *models.Project {
	t.Helper()
	project, err := env.project.CreateProject(CreateProjectInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return project
}

func (env *serviceTestEnv) addMember(t *testing.T, actorID, projectID, userID uint64) *models.ProjectMembership {
	t.Helper()
	member, err := env.project.AddMember(AddMemberInput{
		ActorID:   actorID,
		ProjectID: projectID,
		UserID:    userID,
		Role:      models.RoleDeveloper,
	})
	require.NoError(t, err)
	return member
}
