package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"gorm.io/gorm"
)

func FilterPostWithTag(tx *gorm.DB, alias string) *gorm.DB {
	aliases := strings.Split(strings.ToLower(alias), ",")
	return tx.Joins("JOIN post_tags ON posts.id = post_tags.post_id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.alias IN ?", aliases).
		Group("posts.id").
		Having("COUNT(DISTINCT tags.id) = ?", len(aliases))
}

func FilterPostWithAuthor(tx *gorm.DB, name string) (*gorm.DB, error) {
	var author models.Account
	if err := database.C.Where("name = ?", name).First(&author).Error; err != nil {
		return tx, err
	}
	return tx.Where("author_id = ?", author.ID), nil
}

func PreloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Tags").Preload("Author").Preload("Author.Role")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadPostGeneral(tx).Where("posts.id = ?", id).First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

// GetPostBySlug returns the earliest post carrying the slug. Slugs are not
// unique; phonetically identical titles collide and that is accepted.
func GetPostBySlug(tx *gorm.DB, slug string) (models.Post, error) {
	var item models.Post
	if err := PreloadPostGeneral(tx).
		Where("slug = ?", slug).
		Order("created_at ASC, id ASC").
		First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int) ([]models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Post
	if err := PreloadPostGeneral(tx).
		Limit(take).Offset(offset).
		Order("published_at DESC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// NewPost persists a fresh post for an author. Derived fields (slug, HTML,
// language) are recomputed here rather than trusted from the caller, and
// tags resolve through GetTagOrCreate so the join rows stay unique.
func NewPost(author models.Account, title, body string, tags []string) (models.Post, error) {
	var item models.Post

	if len(body) == 0 {
		return item, fmt.Errorf("post does not have a body")
	}

	item = models.Post{
		AuthorID:    author.ID,
		Author:      author,
		PublishedAt: time.Now(),
		Language:    DetectLanguage(body),
	}
	item.SetTitle(title)
	item.SetBody(body)

	for _, alias := range lo.Uniq(tags) {
		tag, err := GetTagOrCreate(alias, alias)
		if err != nil {
			return item, fmt.Errorf("unable to prepare tag %s: %v", alias, err)
		}
		item.Tags = append(item.Tags, tag)
	}

	if err := database.C.Save(&item).Error; err != nil {
		return item, err
	}

	log.Info().Uint("id", item.ID).Uint("author", author.ID).Msg("New post has been created.")
	return item, nil
}

// EditPost applies a new title, body and tag set, re-deriving every derived
// field. The tag associations are replaced atomically with the column
// update so a failure cannot leave the post half-edited.
func EditPost(item models.Post, title, body string, tags []string) (models.Post, error) {
	if len(body) == 0 {
		return item, fmt.Errorf("post does not have a body")
	}

	item.SetTitle(title)
	item.SetBody(body)
	item.Language = DetectLanguage(body)

	var newTags []models.Tag
	for _, alias := range lo.Uniq(tags) {
		tag, err := GetTagOrCreate(alias, alias)
		if err != nil {
			return item, fmt.Errorf("unable to prepare tag %s: %v", alias, err)
		}
		newTags = append(newTags, tag)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags").Save(&item).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(&item).Association("Tags").Replace(newTags); err != nil {
				return err
			}
			item.Tags = newTags
		}
		return nil
	})

	return item, err
}

// DeletePost removes a post together with its tag associations; the join
// table never keeps orphaned rows.
func DeletePost(item models.Post) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// IsPostNotFound tells a missing-row failure apart from a real one at the
// request boundary.
func IsPostNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
