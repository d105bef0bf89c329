package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/app/models"
)

func msgAt(id int64, parentID *int64, created time.Time) models.ContactMessage {
	return models.ContactMessage{ID: id, StudentID: 1, ParentID: parentID, Created: created}
}

func ptr(v int64) *int64 { return &v }

func TestBuildThreadsGroupsRepliesUnderRoots(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	messages := []models.ContactMessage{
		msgAt(1, nil, base),
		msgAt(2, ptr(1), base.Add(time.Hour)),
		msgAt(3, nil, base.Add(2*time.Hour)),
		msgAt(4, ptr(1), base.Add(3*time.Hour)),
	}

	threads := buildThreads(messages)
	require.Len(t, threads, 2)

	// Newest root first.
	assert.Equal(t, int64(3), threads[0].ID)
	assert.Empty(t, threads[0].Children)

	assert.Equal(t, int64(1), threads[1].ID)
	require.Len(t, threads[1].Children, 2)
	assert.Equal(t, int64(2), threads[1].Children[0].ID)
	assert.Equal(t, int64(4), threads[1].Children[1].ID)
}

func TestBuildThreadsOrphanBecomesRoot(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	messages := []models.ContactMessage{
		msgAt(5, ptr(99), base),
		msgAt(6, nil, base.Add(time.Minute)),
	}

	threads := buildThreads(messages)
	require.Len(t, threads, 2)
	assert.Equal(t, int64(6), threads[0].ID)
	assert.Equal(t, int64(5), threads[1].ID)
}

func TestBuildThreadsEmpty(t *testing.T) {
	assert.Empty(t, buildThreads(nil))
}
