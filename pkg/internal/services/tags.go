package services

import (
	"errors"
	"strings"

	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"gorm.io/gorm"
)

func ListTag(take int, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	err := database.C.Offset(offset).Limit(take).Find(&tags).Error
	return tags, err
}

func GetTag(alias string) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where("alias = ?", strings.ToLower(alias)).First(&tag).Error; err != nil {
		return tag, err
	}
	return tag, nil
}

func GetTagOrCreate(alias, name string) (models.Tag, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	var tag models.Tag
	if err := database.C.Where("alias = ?", alias).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{
				Alias: alias,
				Name:  name,
			}
			err := database.C.Save(&tag).Error
			return tag, err
		}
		return tag, err
	}
	return tag, nil
}

// DeleteTag removes a tag together with its post associations.
func DeleteTag(tag models.Tag) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
