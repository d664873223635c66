package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateSprint_Success(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")

	sprint, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
		Goal:      "Ship the login page",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.NoError(t, err)

	assert.Equal(t, "Sprint 1", sprint.Name)
	require.NotNil(t, sprint.StartDate)
	require.NotNil(t, sprint.EndDate)
	assert.Equal(t, "2025-03-01", sprint.StartDate.Format("2006-01-02"))
}

func TestCreateSprint_NoDates(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")

	sprint, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
	})
	require.NoError(t, err)
	assert.Nil(t, sprint.StartDate)
	assert.Nil(t, sprint.EndDate)
}

func TestCreateSprint_MalformedDate(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")

	_, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
		StartDate: "01/03/2025",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Nothing was committed.
	sprints, listErr := env.sprintRepo.ListByProject(project.ID)
	require.NoError(t, listErr)
	assert.Empty(t, sprints)
}

func TestCreateSprint_StartAfterEnd(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")

	_, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
		StartDate: "2025-03-14",
		EndDate:   "2025-03-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateSprint_EmptyName(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")

	_, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "  ",
	})
	assert.ErrorIs(t, err, ErrInvalidSprintName)
}

func TestCreateSprint_MemberDenied(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")
	env.addMember(t, owner.ID, project.ID, member.ID)

	_, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   member.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateSprint_ClearDates(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")
	sprint, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.NoError(t, err)

	empty := ""
	updated, err := env.sprint.UpdateSprint(UpdateSprintInput{
		ActorID:   owner.ID,
		SprintID:  sprint.ID,
		StartDate: &empty,
		EndDate:   &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.StartDate)
	assert.Nil(t, updated.EndDate)
}

func TestDeleteSprint_DetachesChildren(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")
	sprint, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
	})
	require.NoError(t, err)

	story, err := env.backlog.CreateStory(CreateStoryInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Title:     "Story X",
	})
	require.NoError(t, err)
	_, err = env.backlog.AssignStoryToSprint(owner.ID, story.ID, sprint.ID)
	require.NoError(t, err)

	task, err := env.backlog.CreateTask(CreateTaskInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Title:     "Task Y",
		SprintID:  &sprint.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.sprint.DeleteSprint(owner.ID, sprint.ID))

	// The sprint is gone; its children survive with no sprint reference.
	_, err = env.sprintRepo.FindByID(sprint.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	freshStory, err := env.storyRepo.FindByID(story.ID)
	require.NoError(t, err)
	assert.Nil(t, freshStory.SprintID)

	freshTask, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	assert.Nil(t, freshTask.SprintID)
}

func TestDeleteSprint_MemberDenied(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")
	env.addMember(t, owner.ID, project.ID, member.ID)
	sprint, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
	})
	require.NoError(t, err)

	err = env.sprint.DeleteSprint(member.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSprintDetails_PartitionsStories(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")
	sprint, err := env.sprint.CreateSprint(CreateSprintInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Name:      "Sprint 1",
	})
	require.NoError(t, err)

	assigned, err := env.backlog.CreateStory(CreateStoryInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Title:     "Story X",
	})
	require.NoError(t, err)
	backlog, err := env.backlog.CreateStory(CreateStoryInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		Title:     "Story Z",
	})
	require.NoError(t, err)

	_, err = env.backlog.AssignStoryToSprint(owner.ID, assigned.ID, sprint.ID)
	require.NoError(t, err)

	details, err := env.sprint.GetSprintDetails(owner.ID, sprint.ID)
	require.NoError(t, err)

	require.Len(t, details.SprintStories, 1)
	assert.Equal(t, assigned.ID, details.SprintStories[0].ID)
	require.Len(t, details.AvailableStories, 1)
	assert.Equal(t, backlog.ID, details.AvailableStories[0].ID)
}

func TestGetSprintDetails_NotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")

	_, err := env.sprint.GetSprintDetails(owner.ID, 42)
	assert.ErrorIs(t, err, ErrSprintNotFound)
}
