package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameal/cocina/internal/manager"
	"github.com/ameal/cocina/internal/model"
)

// recordingReporter captures output lines by kind.
type recordingReporter struct {
	titles  []string
	lines   []string
	success []string
}

func (r *recordingReporter) Title(text string)   { r.titles = append(r.titles, text) }
func (r *recordingReporter) Println(text string) { r.lines = append(r.lines, text) }
func (r *recordingReporter) Success(text string) { r.success = append(r.success, text) }

func TestStepPause(t *testing.T) {
	tests := []struct {
		name     string
		prepTime int
		steps    int
		want     time.Duration
	}{
		{"even split", 30, 3, 10 * time.Second},
		{"truncating split", 10, 3, 3 * time.Second},
		{"more steps than minutes", 2, 5, time.Second},
		{"single step", 45, 1, 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepPause(tt.prepTime, tt.steps); got != tt.want {
				t.Errorf("StepPause(%d, %d) = %v, want %v", tt.prepTime, tt.steps, got, tt.want)
			}
		})
	}
}

func TestCookPacesEveryStep(t *testing.T) {
	mgr := manager.New()
	mgr.Add(model.Recipe{
		Name:        "Soup",
		Category:    model.Dinner,
		Ingredients: []string{"water", "salt"},
		Steps:       []string{"a", "b", "c"},
		PrepTime:    10,
	})

	var pauses []time.Duration
	out := &recordingReporter{}
	sim := New(mgr, out, WithSleep(func(d time.Duration) {
		pauses = append(pauses, d)
	}))

	require.NoError(t, sim.Cook("Soup"))

	// 10 minutes over 3 steps truncates to 3 units per step.
	require.Len(t, pauses, 3)
	for _, d := range pauses {
		assert.Equal(t, 3*time.Second, d)
	}

	require.Len(t, out.lines, 4) // ingredient line + one per step
	assert.Contains(t, out.lines[1], "Step 1/3: a")
	assert.Contains(t, out.lines[2], "Step 2/3: b")
	assert.Contains(t, out.lines[3], "Step 3/3: c")
	require.Len(t, out.success, 1)
	assert.Contains(t, out.success[0], "ready in 10 minutes")
}

func TestCookUnknownRecipe(t *testing.T) {
	mgr := manager.New()
	out := &recordingReporter{}

	var paused bool
	sim := New(mgr, out, WithSleep(func(time.Duration) { paused = true }))

	err := sim.Cook("Ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, paused, "no step may run for an unknown recipe")
	assert.Empty(t, out.titles)
	assert.Empty(t, out.lines)
}
