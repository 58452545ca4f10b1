package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobTracker_Lifecycle(t *testing.T) {
	tracker := NewJobTracker()
	tracker.CreateJob("job-1", "src-1")

	job, ok := tracker.GetJob("job-1")
	require.True(t, ok)
	assert.Equal(t, "running", job.Status)
	assert.Equal(t, "src-1", job.SourceID)

	tracker.UpdateJob("job-1", "users", 1, 3, "running")
	tracker.UpdateJob("job-1", "orders", 2, 3, "running")
	tracker.UpdateJob("job-1", "items", 3, 3, "complete")

	job, ok = tracker.GetJob("job-1")
	require.True(t, ok)
	assert.Equal(t, "complete", job.Status)
	assert.Equal(t, 3, job.Progress)
	assert.Equal(t, 3, job.Total)
	assert.Equal(t, []string{"users", "orders", "items"}, job.Results)
	assert.False(t, job.CompletedAt.IsZero())
}

func TestJobTracker_UnknownJob(t *testing.T) {
	tracker := NewJobTracker()

	_, ok := tracker.GetJob("missing")
	assert.False(t, ok)

	// Updating a job that was never created is a no-op.
	tracker.UpdateJob("missing", "users", 1, 1, "complete")
	_, ok = tracker.GetJob("missing")
	assert.False(t, ok)
}

func TestJobTracker_FailJob(t *testing.T) {
	tracker := NewJobTracker()
	tracker.CreateJob("job-2", "src-2")

	tracker.FailJob("job-2", "connection refused")

	job, ok := tracker.GetJob("job-2")
	require.True(t, ok)
	assert.Equal(t, "error", job.Status)
	assert.Equal(t, "connection refused", job.Error)
}

func TestJobTracker_Subscribe(t *testing.T) {
	tracker := NewJobTracker()
	tracker.CreateJob("job-3", "src-3")

	ch := tracker.Subscribe("job-3")
	tracker.UpdateJob("job-3", "users", 1, 1, "complete")

	update := <-ch
	assert.Equal(t, "complete", update.Status)
	assert.Equal(t, "users", update.Current)

	tracker.Unsubscribe("job-3", ch)
	_, open := <-ch
	assert.False(t, open)
}
