package services

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
)

// DoAutoDatabaseCleanup runs on the maintenance schedule. It hard-deletes
// posts that stayed soft-deleted past the grace window and prunes tags no
// post references anymore.
func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", deadline).
			Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto maintain...")
		}
		count += tx.RowsAffected
	}

	tx := database.C.
		Where("id NOT IN (?)", database.C.Model(&models.PostTag{}).Distinct("tag_id").Select("tag_id")).
		Delete(&models.Tag{})
	if tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when pruning unused tags...")
	}
	count += tx.RowsAffected

	log.Info().Int64("affected", count).Msg("Auto maintain finished.")
}
