package database

import (
	"github.com/zhangmm/zblog/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Role{},
	&models.Account{},
	&models.Tag{},
	&models.Post{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.SetupJoinTable(&models.Post{}, "Tags", &models.PostTag{}); err != nil {
		return err
	}
	if err := source.SetupJoinTable(&models.Tag{}, "Posts", &models.PostTag{}); err != nil {
		return err
	}

	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PostTag{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
