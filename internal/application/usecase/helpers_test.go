package usecase_test

import (
	"testing"
	"time"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocat-api/internal/testutil"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

var testStart = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ws    *memory.Workspace
	ids   *testutil.SequenceIDs
	clock *testutil.StepClock
	log   *logger.Logger
}

func newFixture(t *testing.T, initial *entity.Snapshot) fixture {
	t.Helper()
	if initial == nil {
		initial = &entity.Snapshot{Settings: entity.Settings{LowStockThreshold: entity.DefaultLowStockThreshold}}
	}
	return fixture{
		ws:    memory.NewWorkspace(initial, nil, logger.Nop()),
		ids:   testutil.NewSequenceIDs("id"),
		clock: testutil.NewStepClock(testStart),
		log:   logger.Nop(),
	}
}

func strPtr(s string) *string { return &s }
