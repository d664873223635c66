package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sprintboard/sprintboard/internal/constants"
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/utils"
)

func TestCreateProject_OwnerMembershipCreatedAtomically(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")

	project := env.createProject(t, owner.ID, "Alpha")

	// Owner is a member immediately after creation, with the
	// "Product Owner" role.
	membership, err := env.projectRepo.FindMembership(project.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleProductOwner, membership.Role)

	ok, err := env.access.CanAccess(owner.ID, project)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.access.CanManage(owner.ID, project))
}

func TestCreateProject_EmptyName(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")

	_, err := env.project.CreateProject(CreateProjectInput{
		Name:    "   ",
		OwnerID: owner.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidProjectName)
}

func TestAccess_MemberCanViewButNotManage(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")
	env.addMember(t, owner.ID, project.ID, member.ID)

	ok, err := env.access.CanAccess(member.ID, project)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, env.access.CanManage(member.ID, project))
}

func TestAccess_StrangerCannotView(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	stranger := env.createUser(t, "mallory")
	project := env.createProject(t, owner.ID, "Alpha")

	ok, err := env.access.CanAccess(stranger.ID, project)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddMember_Duplicate(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")

	env.addMember(t, owner.ID, project.ID, member.ID)

	_, err := env.project.AddMember(AddMemberInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleDeveloper,
	})
	assert.ErrorIs(t, err, ErrDuplicateMembership)
}

func TestAddMember_UnrecognizedRole(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")

	_, err := env.project.AddMember(AddMemberInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.MembershipRole("Wizard"),
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAddMember_NonOwnerDenied(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	third := env.createUser(t, "carol")
	project := env.createProject(t, owner.ID, "Alpha")
	env.addMember(t, owner.ID, project.ID, member.ID)

	_, err := env.project.AddMember(AddMemberInput{
		ActorID:   member.ID,
		ProjectID: project.ID,
		UserID:    third.ID,
		Role:      models.RoleDeveloper,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRemoveMember_OwnerProtected(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	project := env.createProject(t, owner.ID, "Alpha")

	ownerMembership, err := env.projectRepo.FindMembership(project.ID, owner.ID)
	require.NoError(t, err)

	err = env.project.RemoveMember(owner.ID, project.ID, ownerMembership.ID)
	assert.ErrorIs(t, err, ErrOwnerProtected)
}

func TestRemoveMember_Success(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")
	membership := env.addMember(t, owner.ID, project.ID, member.ID)

	require.NoError(t, env.project.RemoveMember(owner.ID, project.ID, membership.ID))

	ok, err := env.access.CanAccess(member.ID, project)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveMember_WrongProject(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	alpha := env.createProject(t, owner.ID, "Alpha")
	beta := env.createProject(t, owner.ID, "Beta")
	membership := env.addMember(t, owner.ID, alpha.ID, member.ID)

	err := env.project.RemoveMember(owner.ID, beta.ID, membership.ID)
	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestListProjects_NoDuplicateForOwner(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	owned := env.createProject(t, owner.ID, "Alpha")
	joined := env.createProject(t, other.ID, "Beta")
	env.addMember(t, other.ID, joined.ID, owner.ID)

	// The owner also holds a membership row in the owned project; the
	// accessible set must still list it once.
	params := utils.PaginationParams{Page: 1, Limit: constants.DefaultPageSize}
	projects, total, err := env.project.ListProjects(owner.ID, params)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.EqualValues(t, 2, total)

	ids := []uint64{projects[0].ID, projects[1].ID}
	assert.Contains(t, ids, owned.ID)
	assert.Contains(t, ids, joined.ID)
}

func TestListMembers_AvailableUsersExcludeMembers(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	outsider := env.createUser(t, "carol")
	project := env.createProject(t, owner.ID, "Alpha")
	env.addMember(t, owner.ID, project.ID, member.ID)

	members, available, err := env.project.ListMembers(owner.ID, project.ID)
	require.NoError(t, err)

	assert.Len(t, members, 2) // owner + bob
	require.Len(t, available, 1)
	assert.Equal(t, outsider.ID, available[0].ID)
}

func TestListMembers_MemberDenied(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	project := env.createProject(t, owner.ID, "Alpha")
	env.addMember(t, owner.ID, project.ID, member.ID)

	_, _, err := env.project.ListMembers(member.ID, project.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
