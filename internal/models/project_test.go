package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatus_Valid(t *testing.T) {
	assert.True(t, StatusOpen.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, ProjectStatus("archived").Valid())
	assert.False(t, ProjectStatus("").Valid())
}

func TestProjectStatus_Active(t *testing.T) {
	assert.True(t, StatusOpen.Active())
	assert.True(t, StatusInProgress.Active())
	assert.False(t, StatusCompleted.Active())
}

func TestProject_MembershipChecks(t *testing.T) {
	p := &Project{
		OwnerID:         "u1",
		Members:         []string{"u1", "u2"},
		PendingRequests: []string{"u3"},
	}

	assert.True(t, p.IsMember("u1"))
	assert.True(t, p.IsMember("u2"))
	assert.False(t, p.IsMember("u3"))
	assert.True(t, p.IsPending("u3"))
	assert.False(t, p.IsPending("u2"))
}

func TestGroupFromProject(t *testing.T) {
	p := &Project{ID: "p1", Title: "Elevatify", Members: []string{"u1", "u2"}}

	g := GroupFromProject(p)
	assert.Equal(t, "p1", g.ID)
	assert.Equal(t, "Elevatify", g.Name)
	assert.Equal(t, []string{"u1", "u2"}, g.Members)
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory("Web Development"))
	assert.True(t, KnownCategory(CategoryOther))
	assert.False(t, KnownCategory("Underwater Basket Weaving"))
}
