package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-papeleria-pos/internal/model"
)

// SequenceRepository issues human-readable document numbers shaped
// V-20060102-0001. The counter lives in its own row per (kind, day) and is
// bumped with an upsert, so two transactions creating documents at the same
// moment get distinct numbers. The day key makes the counter reset daily.
type SequenceRepository interface {
	NextNumber(tx *gorm.DB, kind string, at time.Time) (string, error)
}

type sequenceRepo struct{}

func NewSequenceRepo() SequenceRepository {
	return &sequenceRepo{}
}

func (r *sequenceRepo) NextNumber(tx *gorm.DB, kind string, at time.Time) (string, error) {
	day := at.Format("20060102")

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "kind"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"counter": gorm.Expr("document_counters.counter + 1"),
		}),
	}).Create(&model.DocumentCounter{Kind: kind, Day: day, Counter: 1}).Error
	if err != nil {
		return "", err
	}

	var counter model.DocumentCounter
	if err := tx.Where("kind = ? AND day = ?", kind, day).First(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", kind, day, counter.Counter), nil
}
