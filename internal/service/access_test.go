package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/grievance-desk/internal/models"
)

func TestCanView_PrivilegedSeesEverything(t *testing.T) {
	grievance := models.Grievance{ID: "g-1", EmployeeID: "emp-1"}

	assert.True(t, CanView(models.Principal{ID: "adm-1", Role: models.RoleAdmin}, grievance))
	assert.True(t, CanView(models.Principal{ID: "hr-1", Role: models.RoleHR}, grievance))
}

func TestCanView_RestrictedSeesOnlyOwn(t *testing.T) {
	owner := models.Principal{ID: "emp-1", Role: models.RoleEmployee}
	other := models.Principal{ID: "emp-2", Role: models.RoleEmployee}
	grievance := models.Grievance{ID: "g-1", EmployeeID: "emp-1"}

	assert.True(t, CanView(owner, grievance))
	assert.False(t, CanView(other, grievance))
}

func TestFilterVisible_PreservesOrderAndInput(t *testing.T) {
	grievances := []models.Grievance{
		{ID: "g-1", EmployeeID: "emp-1"},
		{ID: "g-2", EmployeeID: "emp-2"},
		{ID: "g-3", EmployeeID: "emp-1"},
	}
	restricted := models.Principal{ID: "emp-1", Role: models.RoleEmployee}

	visible := FilterVisible(restricted, grievances)

	assert.Len(t, visible, 2)
	assert.Equal(t, "g-1", visible[0].ID)
	assert.Equal(t, "g-3", visible[1].ID)
	assert.Len(t, grievances, 3)
	assert.Equal(t, "g-2", grievances[1].ID)
}

func TestFilterVisible_MatchesCanViewElementwise(t *testing.T) {
	grievances := []models.Grievance{
		{ID: "g-1", EmployeeID: "emp-1"},
		{ID: "g-2", EmployeeID: "emp-2"},
		{ID: "g-3", EmployeeID: "emp-3"},
	}

	for _, p := range []models.Principal{
		{ID: "emp-2", Role: models.RoleEmployee},
		{ID: "adm-1", Role: models.RoleAdmin},
	} {
		visible := FilterVisible(p, grievances)
		for _, g := range visible {
			assert.True(t, CanView(p, g))
		}

		// filtering an already filtered set changes nothing
		assert.Equal(t, visible, FilterVisible(p, visible))
	}
}

func TestFilterVisible_PrivilegedGetsFreshSlice(t *testing.T) {
	grievances := []models.Grievance{
		{ID: "g-1", EmployeeID: "emp-1"},
		{ID: "g-2", EmployeeID: "emp-2"},
	}
	admin := models.Principal{ID: "adm-1", Role: models.RoleAdmin}

	visible := FilterVisible(admin, grievances)
	assert.Equal(t, grievances, visible)

	visible[0].ID = "mutated"
	assert.Equal(t, "g-1", grievances[0].ID)
}
