package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

func TestLogsStats(t *testing.T) {
	ctx := context.Background()

	if _, _, err := LogsStats(ctx, newEmptyDB(t), LogFilter{}); err == nil {
		t.Fatalf("expected error without table")
	}

	db := newTestDB(t)
	count, maxAt, err := LogsStats(ctx, db, LogFilter{})
	if err != nil || count != 0 || maxAt != nil {
		t.Fatalf("empty stats = (%d, %v, %v)", count, maxAt, err)
	}

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	for _, r := range []domain.IntegrationLog{
		{Service: domain.ServiceMockMail, EventType: domain.EventTaskAssigned, CreatedAt: t1, UpdatedAt: t1},
		{Service: domain.ServiceMockMail, EventType: domain.EventTaskAssigned, CreatedAt: t2, UpdatedAt: t2},
		{Service: domain.ServiceMockChat, EventType: domain.EventTaskAssigned, CreatedAt: t1, UpdatedAt: t1},
	} {
		row := r
		if err := CreateIntegrationLog(ctx, db, &row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	count, maxAt, err = LogsStats(ctx, db, LogFilter{Service: domain.ServiceMockMail})
	if err != nil || count != 2 || maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("stats = (%d, %v, %v); want (2, %v)", count, maxAt, err, t2)
	}
}
