package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"gorm.io/gorm"
)

// The fixed role table. Seeding updates masks by name match, so re-running
// after a deploy that changed a mask fixes existing rows in place.
var presetRoles = []struct {
	Name        string
	Permissions models.Permission
	IsDefault   bool
}{
	{"User", models.PermissionComment | models.PermissionWriteArticles, true},
	{"Moderator", models.PermissionComment | models.PermissionWriteArticles | models.PermissionModerateComments, false},
	{"Administrator", models.PermissionComment | models.PermissionWriteArticles | models.PermissionModerateComments | models.PermissionAdminister, false},
}

// SeedRoles makes the role table match the preset above. Idempotent; safe
// to run on every boot. Exactly one role holds the default flag afterwards.
func SeedRoles() error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		for _, preset := range presetRoles {
			var role models.Role
			err := tx.Where("name = ?", preset.Name).First(&role).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			role.Name = preset.Name
			role.ResetPermissions()
			role.AddPermissions(preset.Permissions)
			role.IsDefault = preset.IsDefault

			if err := tx.Save(&role).Error; err != nil {
				return fmt.Errorf("unable to seed role %s: %v", preset.Name, err)
			}
		}

		// Anything outside the preset table loses the default flag so the
		// single-default invariant holds.
		var presetNames []string
		for _, preset := range presetRoles {
			presetNames = append(presetNames, preset.Name)
		}
		if err := tx.Model(&models.Role{}).
			Where("is_default = ? AND name NOT IN ?", true, presetNames).
			Update("is_default", false).Error; err != nil {
			return err
		}

		log.Info().Int("count", len(presetRoles)).Msg("Roles are seeded.")
		return nil
	})
}

func GetRole(name string) (models.Role, error) {
	var role models.Role
	if err := database.C.Where("name = ?", name).First(&role).Error; err != nil {
		return role, err
	}
	return role, nil
}

func GetRoleWithID(id uint) (models.Role, error) {
	var role models.Role
	if err := database.C.Where("id = ?", id).First(&role).Error; err != nil {
		return role, err
	}
	return role, nil
}

// GetDefaultRole returns the role assigned to fresh registrations.
func GetDefaultRole() (models.Role, error) {
	var role models.Role
	if err := database.C.Where("is_default = ?", true).First(&role).Error; err != nil {
		return role, fmt.Errorf("unable to find the default role, did the seeder run: %v", err)
	}
	return role, nil
}
