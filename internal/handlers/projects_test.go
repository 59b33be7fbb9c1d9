package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"github.com/petroapi-dev/petroapi/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetProject(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	token := login(t, r, "bob", testutil.UserPassword)

	w := do(t, r, http.MethodPost, "/projects", token, gin.H{
		"name":        "Mnich",
		"description": "Reconstruction of UHP history",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created types.ProjectResponse
	decode(t, w, &created)
	assert.Equal(t, "Mnich", created.Name)
	assert.Equal(t, "Reconstruction of UHP history", created.Description)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched types.ProjectResponse
	decode(t, w, &fetched)
	assert.Equal(t, created, fetched)
}

func TestCreateProjectDuplicateNameSameOwner(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	token := login(t, r, "bob", testutil.UserPassword)

	createProject(t, r, token, "Mnich")

	w := do(t, r, http.MethodPost, "/projects", token, gin.H{"name": "Mnich"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Project with same name already exists")
}

func TestProjectNameUniquenessScopedToOwners(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	testutil.CreateUser(t, gdb, "alice")

	bobToken := login(t, r, "bob", testutil.UserPassword)
	aliceToken := login(t, r, "alice", testutil.UserPassword)

	createProject(t, r, bobToken, "Mnich")

	// A different user group may reuse the name.
	w := do(t, r, http.MethodPost, "/projects", aliceToken, gin.H{"name": "Mnich"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListProjectsOnlyOwn(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	testutil.CreateUser(t, gdb, "alice")

	bobToken := login(t, r, "bob", testutil.UserPassword)
	aliceToken := login(t, r, "alice", testutil.UserPassword)

	createProject(t, r, bobToken, "bob-1")
	createProject(t, r, bobToken, "bob-2")
	createProject(t, r, aliceToken, "alice-1")

	w := do(t, r, http.MethodGet, "/projects", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []types.ProjectResponse
	decode(t, w, &projects)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.Contains(t, []string{"bob-1", "bob-2"}, p.Name)
	}
}

func TestGetProjectOfOtherUserIsNotFound(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	testutil.CreateUser(t, gdb, "alice")

	bobToken := login(t, r, "bob", testutil.UserPassword)
	aliceToken := login(t, r, "alice", testutil.UserPassword)

	project := createProject(t, r, bobToken, "secret")

	// Inaccessible and missing are the same 404.
	w := do(t, r, http.MethodGet, fmt.Sprintf("/projects/%d", project.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")

	w = do(t, r, http.MethodGet, "/projects/99999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")
}

func TestUpdateProjectPartial(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	token := login(t, r, "bob", testutil.UserPassword)

	w := do(t, r, http.MethodPost, "/projects", token, gin.H{
		"name":        "Mnich",
		"description": "original",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var project types.ProjectResponse
	decode(t, w, &project)

	// Only the supplied field changes.
	w = do(t, r, http.MethodPut, fmt.Sprintf("/projects/%d", project.ID), token, gin.H{
		"description": "updated",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated types.ProjectResponse
	decode(t, w, &updated)
	assert.Equal(t, "Mnich", updated.Name)
	assert.Equal(t, "updated", updated.Description)
}

func TestDeleteProjectCascades(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	token := login(t, r, "bob", testutil.UserPassword)

	project := createProject(t, r, token, "Mnich")
	sample := createSample(t, r, token, project.ID, "SX17")

	w := do(t, r, http.MethodPost, fmt.Sprintf("/spot/%d/%d", project.ID, sample.ID), token, gin.H{
		"label":  "pl-1",
		"values": gin.H{"SiO2": 65.9},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	profile := createProfile(t, r, token, project.ID, sample.ID, "prf1", "Grt")

	w = do(t, r, http.MethodPost, fmt.Sprintf("/profilespot/%d/%d/%d", project.ID, sample.ID, profile.ID), token, gin.H{
		"index":  0,
		"values": gin.H{"CaO": 10.3},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/projects/%d", project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Project deleted successfully")

	for _, model := range []interface{}{
		&models.Sample{}, &models.Spot{}, &models.Profile{}, &models.ProfileSpot{},
	} {
		var count int64
		require.NoError(t, gdb.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows survived project deletion", model)
	}
}

func TestAddAndRemoveProjectMember(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	testutil.CreateUser(t, gdb, "alice")

	bobToken := login(t, r, "bob", testutil.UserPassword)
	aliceToken := login(t, r, "alice", testutil.UserPassword)

	project := createProject(t, r, bobToken, "shared")
	sample := createSample(t, r, bobToken, project.ID, "SX17")

	projectPath := fmt.Sprintf("/projects/%d", project.ID)

	// Not a member yet.
	w := do(t, r, http.MethodGet, projectPath, aliceToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, projectPath+"/adduser", bobToken, gin.H{"username": "alice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Membership grants access down the whole chain.
	w = do(t, r, http.MethodGet, projectPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/samples/%d/%d", project.ID, sample.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, projectPath+"/removeuser", bobToken, gin.H{"username": "alice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Revocation is immediate, and reads go back to 404, not 403.
	w = do(t, r, http.MethodGet, projectPath, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMembershipConflicts(t *testing.T) {
	r, gdb := newTestServer(t)
	testutil.CreateUser(t, gdb, "bob")
	testutil.CreateUser(t, gdb, "alice")

	bobToken := login(t, r, "bob", testutil.UserPassword)
	project := createProject(t, r, bobToken, "shared")
	projectPath := fmt.Sprintf("/projects/%d", project.ID)

	// Adding yourself is rejected.
	w := do(t, r, http.MethodPut, projectPath+"/adduser", bobToken, gin.H{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You are already there")

	// Removing yourself is rejected.
	w = do(t, r, http.MethodPut, projectPath+"/removeuser", bobToken, gin.H{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You cannot remove yourself")

	// Removing a non-member is a conflict.
	w = do(t, r, http.MethodPut, projectPath+"/removeuser", bobToken, gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username not in project")

	// Adding twice is a conflict.
	w = do(t, r, http.MethodPut, projectPath+"/adduser", bobToken, gin.H{"username": "alice"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, projectPath+"/adduser", bobToken, gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already in project")

	// Unknown target user.
	w = do(t, r, http.MethodPut, projectPath+"/adduser", bobToken, gin.H{"username": "nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}
