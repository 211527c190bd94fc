package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// LogsStats returns the number of integration log rows matching f and the
// greatest UpdatedAt among them, for weak ETags on the admin listing. When
// nothing matches, count is 0 and maxUpdatedAt is nil.
func LogsStats(ctx context.Context, db *gorm.DB, f LogFilter) (count int64, maxUpdatedAt *time.Time, err error) {
	q := func() *gorm.DB {
		return f.apply(db.WithContext(ctx).Model(&domain.IntegrationLog{}))
	}

	if err = q().Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Order+Limit instead of MAX(): SQLite returns MAX() on DATETIME as TEXT.
	var row struct {
		UpdatedAt time.Time
	}
	if err = q().Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
