package factory

import (
	"time"

	"github.com/tablekit/tablekit/internal/dependencies/mocks"
	"github.com/tablekit/tablekit/internal/sse"
	"github.com/tablekit/tablekit/internal/storage/memory"
	"github.com/tablekit/tablekit/internal/testutil"
)

// TestSessionSecret signs tokens in tests
const TestSessionSecret = "test-session-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, sessionConfig{
		secret:   TestSessionSecret,
		tokenTTL: 12 * time.Hour,
		sse:      sse.Config{},
	}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
