package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"github.com/zhangmm/zblog/pkg/internal/services"
)

// Bulk generation goes through the same write path as the edit form, so
// every generated row carries its derived fields.
func TestGenerateFakeDataDerivesFields(t *testing.T) {
	setupDatabase(t)

	require.NoError(t, services.GenerateFakeData(3, 10))

	var posts []models.Post
	require.NoError(t, database.C.Find(&posts).Error)
	require.Len(t, posts, 10)

	for _, post := range posts {
		assert.NotEmpty(t, post.Slug)
		assert.NotEmpty(t, post.BodyHTML)
		assert.Contains(t, post.BodyHTML, "<em>")
	}
}

func TestGenerateFakeDataIsRepeatable(t *testing.T) {
	setupDatabase(t)

	require.NoError(t, services.GenerateFakeData(2, 2))
	require.NoError(t, services.GenerateFakeData(2, 2))

	var count int64
	require.NoError(t, database.C.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "existing demo accounts are reused")
}
