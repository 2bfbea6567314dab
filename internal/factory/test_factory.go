package factory

import (
	"time"

	"github.com/mcoot/elotrack/internal/dependencies/mocks"
	"github.com/mcoot/elotrack/internal/storage/memory"
	"github.com/mcoot/elotrack/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MemoryStore *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, Config{}, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MemoryStore: store,
	}
}
