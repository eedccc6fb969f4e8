package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhangmm/zblog/pkg/internal/models"
)

var allPermissions = []models.Permission{
	models.PermissionComment,
	models.PermissionWriteArticles,
	models.PermissionModerateComments,
	models.PermissionAdminister,
}

func TestRoleCan(t *testing.T) {
	role := models.Role{}
	role.AddPermissions(models.PermissionComment, models.PermissionWriteArticles)

	assert.True(t, role.Can(models.PermissionComment))
	assert.True(t, role.Can(models.PermissionWriteArticles))
	assert.True(t, role.Can(models.PermissionComment|models.PermissionWriteArticles))
	assert.False(t, role.Can(models.PermissionModerateComments))
	assert.False(t, role.Can(models.PermissionAdminister))
	assert.False(t, role.Can(models.PermissionComment|models.PermissionAdminister))
}

func TestAdministratorCanEverything(t *testing.T) {
	role := models.Role{}
	role.AddPermissions(allPermissions...)

	for _, perm := range allPermissions {
		assert.True(t, role.Can(perm))
	}
}

func TestRemoveAndResetPermissions(t *testing.T) {
	role := models.Role{}
	role.AddPermissions(allPermissions...)

	role.RemovePermissions(models.PermissionModerateComments)
	assert.False(t, role.Can(models.PermissionModerateComments))
	assert.True(t, role.Can(models.PermissionComment))

	role.ResetPermissions()
	for _, perm := range allPermissions {
		assert.False(t, role.Can(perm))
	}
}

func TestUnknownPermissionBitIsFalse(t *testing.T) {
	role := models.Role{}
	role.AddPermissions(allPermissions...)
	assert.False(t, role.Can(models.Permission(1<<12)))
}

func TestNilAccountHasNoPermissions(t *testing.T) {
	var account *models.Account
	for _, perm := range allPermissions {
		assert.False(t, account.Can(perm))
	}
}
