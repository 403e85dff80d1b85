package migrations

import (
	"github.com/Midoriya12/calsnap/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NormalizeRecipeArrays replaces NULL ingredient and dietary tag arrays with
// empty arrays and adds the index that backs catalog ordering. Rows written
// before the columns were declared NOT NULL can carry NULLs.
//
// This migration is idempotent.
func NormalizeRecipeArrays(db *gorm.DB) error {
	for _, column := range []string{"ingredients", "dietary_tags"} {
		result := db.Exec("UPDATE recipes SET " + column + " = '{}' WHERE " + column + " IS NULL")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			logger.Get().Info("normalized NULL recipe arrays",
				zap.String("column", column),
				zap.Int64("rows", result.RowsAffected))
		}
	}

	return db.Exec("CREATE INDEX IF NOT EXISTS idx_recipes_created_at_id ON recipes (created_at, id)").Error
}
