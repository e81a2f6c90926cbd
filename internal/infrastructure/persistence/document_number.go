package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// generateDocumentNumber produces the next sequential document number for a
// company. Format: PREFIX-YYYY-NNNNN (e.g. PO-2026-00001). The sequence
// restarts each year; collisions with concurrent generators are resolved by
// probing forward.
func generateDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, numberColumn, prefix string, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, year)

	var lastNumber string
	err := db.WithContext(ctx).
		Model(model).
		Select(numberColumn).
		Where("company_id = ? AND "+numberColumn+" LIKE ?", companyID, yearPrefix+"%").
		Order(numberColumn + " DESC").
		Limit(1).
		Scan(&lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	for i := 0; i < 100; i++ {
		number := fmt.Sprintf("%s%05d", yearPrefix, nextNum)
		var count int64
		if err := db.WithContext(ctx).
			Model(model).
			Where("company_id = ? AND "+numberColumn+" = ?", companyID, number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
		nextNum++
	}
	return "", fmt.Errorf("could not generate a unique %s number", prefix)
}
