//go:build testutil
// +build testutil

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
)

func TestAnnouncementDismissalScopedToStudent(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	announcementSvc := NewAnnouncementService(repos.AnnouncementRepository)

	alice := addStudent(t, studentSvc, "Alice")
	bob := addStudent(t, studentSvc, "Bob")

	id, err := announcementSvc.CreateAnnouncement(ctx, CreateAnnouncementInput{
		Title:   "Hostel maintenance",
		Message: "Water off on Saturday",
	})
	require.NoError(t, err)

	require.NoError(t, announcementSvc.DismissAnnouncement(ctx, alice, id))

	forAlice, err := announcementSvc.AnnouncementsForStudent(ctx, alice, false)
	require.NoError(t, err)
	assert.Empty(t, forAlice)

	forBob, err := announcementSvc.AnnouncementsForStudent(ctx, bob, false)
	require.NoError(t, err)
	require.Len(t, forBob, 1)
	assert.Equal(t, "Hostel maintenance", forBob[0].Title)

	// Dismissed ones come back flagged when asked for.
	flagged, err := announcementSvc.AnnouncementsForStudent(ctx, alice, true)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.True(t, flagged[0].Dismissed)
}

func TestAnnouncementScheduleWindow(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	announcementSvc := NewAnnouncementService(repos.AnnouncementRepository)

	past := time.Now().AddDate(0, 0, -10)
	pastEnd := time.Now().AddDate(0, 0, -5)
	_, err := announcementSvc.CreateAnnouncement(ctx, CreateAnnouncementInput{
		Title:     "Expired",
		Message:   "old news",
		StartDate: &past,
		EndDate:   &pastEnd,
	})
	require.NoError(t, err)

	_, err = announcementSvc.CreateAnnouncement(ctx, CreateAnnouncementInput{
		Title:   "Current",
		Message: "fresh",
	})
	require.NoError(t, err)

	listed, err := announcementSvc.ListAnnouncements(ctx, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Current", listed[0].Title)
}

func TestReplyAttachesToThreadRootAndMarkRead(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	messageSvc := NewMessageService(repos.MessageRepository)

	alice := addStudent(t, studentSvc, "Alice")

	rootID, err := messageSvc.RecordMessage(ctx, RecordMessageInput{
		StudentID: alice,
		Subject:   "Room heater broken",
		Message:   "The heater in A-101 stopped working",
	})
	require.NoError(t, err)

	replyID, err := messageSvc.Reply(ctx, rootID, string(models.RoleAdmin), 1, "Maintenance scheduled for tomorrow")
	require.NoError(t, err)

	// Replying to the reply still lands on the root.
	reply2ID, err := messageSvc.Reply(ctx, replyID, string(models.RoleAdmin), 1, "Done, please confirm")
	require.NoError(t, err)

	reply2, err := messageSvc.GetMessage(ctx, reply2ID)
	require.NoError(t, err)
	require.NotNil(t, reply2.ParentID)
	assert.Equal(t, rootID, *reply2.ParentID)

	threads, err := messageSvc.ThreadsForStudent(ctx, alice)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, rootID, threads[0].ID)
	assert.Len(t, threads[0].Children, 2)

	// Thread from a reply id resolves to the root with all replies, and is
	// scoped to the owning student.
	thread, err := messageSvc.Thread(ctx, alice, replyID)
	require.NoError(t, err)
	assert.Equal(t, rootID, thread.ID)
	assert.Len(t, thread.Children, 2)

	bob := addStudent(t, studentSvc, "Bob")
	_, err = messageSvc.Thread(ctx, bob, rootID)
	assert.ErrorIs(t, err, apperrors.ErrMessageNotFound)

	// Mark-read from a reply covers the whole thread.
	require.NoError(t, messageSvc.MarkThreadRead(ctx, replyID))
	threads, err = messageSvc.ThreadsForStudent(ctx, alice)
	require.NoError(t, err)
	assert.True(t, threads[0].IsRead)
	for _, child := range threads[0].Children {
		assert.True(t, child.IsRead)
	}
}

func TestMessagesSurviveStudentDelete(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	messageSvc := NewMessageService(repos.MessageRepository)

	alice := addStudent(t, studentSvc, "Alice")

	rootID, err := messageSvc.RecordMessage(ctx, RecordMessageInput{
		StudentID: alice,
		Subject:   "Route change request",
		Message:   "Please move me to route 2",
	})
	require.NoError(t, err)
	replyID, err := messageSvc.Reply(ctx, rootID, string(models.RoleAdmin), 1, "Noted")
	require.NoError(t, err)

	require.NoError(t, studentSvc.DeleteStudent(ctx, alice))

	// The thread stays readable; only the joined name is gone.
	msg, err := messageSvc.GetMessage(ctx, rootID)
	require.NoError(t, err)
	assert.Empty(t, msg.StudentName)

	reply, err := messageSvc.GetMessage(ctx, replyID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, rootID, *reply.ParentID)

	require.NoError(t, messageSvc.MarkThreadRead(ctx, replyID))
}
