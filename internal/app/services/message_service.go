package services

import (
	"context"
	"sort"
	"time"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

// MessageService handles contact messages between students and staff and the
// per-student thread view built from them.
type MessageService struct {
	messageRepo *repositories.MessageRepository
}

// NewMessageService creates a new message service.
func NewMessageService(messageRepo *repositories.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// RecordMessageInput carries the fields of a new contact message.
type RecordMessageInput struct {
	StudentID int64
	ToRole    string
	ToID      *int64
	Subject   string
	Message   string
}

// RecordMessage stores a new message from a student, starting a thread.
func (s *MessageService) RecordMessage(ctx context.Context, in RecordMessageInput) (int64, error) {
	if in.Message == "" {
		return 0, apperrors.NewValidationError("message body is required")
	}
	if in.ToRole == "" {
		in.ToRole = string(models.RoleAdmin)
	}

	senderRole := string(models.RoleStudent)
	msg := &models.ContactMessage{
		StudentID:  in.StudentID,
		ToRole:     in.ToRole,
		ToID:       in.ToID,
		Subject:    in.Subject,
		Message:    in.Message,
		Created:    time.Now(),
		SenderRole: &senderRole,
		SenderID:   &in.StudentID,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return 0, err
	}

	logger.Info().Int64("messageId", msg.ID).Int64("studentId", in.StudentID).Msg("Contact message recorded")
	return msg.ID, nil
}

// Reply attaches a staff reply to the thread of the given message. Replies to
// a reply land on the thread root, so threads stay one level deep.
func (s *MessageService) Reply(ctx context.Context, messageID int64, senderRole string, senderID int64, body string) (int64, error) {
	if body == "" {
		return 0, apperrors.NewValidationError("reply body is required")
	}

	root, err := s.threadRoot(ctx, messageID)
	if err != nil {
		return 0, err
	}

	reply := &models.ContactMessage{
		StudentID:  root.StudentID,
		ToRole:     string(models.RoleStudent),
		Subject:    root.Subject,
		Message:    body,
		Created:    time.Now(),
		SenderRole: &senderRole,
		SenderID:   &senderID,
		ParentID:   &root.ID,
	}
	if err := s.messageRepo.Create(ctx, reply); err != nil {
		return 0, err
	}
	return reply.ID, nil
}

// GetMessage returns one message with the student's name joined in.
func (s *MessageService) GetMessage(ctx context.Context, id int64) (*models.ContactMessage, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// ListMessages returns the newest messages across all students, up to limit.
func (s *MessageService) ListMessages(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 200
	}
	return s.messageRepo.List(ctx, limit)
}

// ThreadsForStudent groups one student's messages into threads: each root
// message with its replies beneath it, roots newest first and replies oldest
// first. A reply whose parent is missing stands as its own root.
func (s *MessageService) ThreadsForStudent(ctx context.Context, studentID int64) ([]*models.MessageThread, error) {
	messages, err := s.messageRepo.ForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return buildThreads(messages), nil
}

// Thread returns the full thread containing the given message for one
// student. A message belonging to another student comes back as not found.
func (s *MessageService) Thread(ctx context.Context, studentID, messageID int64) (*models.MessageThread, error) {
	root, err := s.threadRoot(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if root.StudentID != studentID {
		return nil, apperrors.ErrMessageNotFound
	}

	messages, err := s.messageRepo.ForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, thread := range buildThreads(messages) {
		if thread.ID == root.ID {
			return thread, nil
		}
	}
	return nil, apperrors.ErrMessageNotFound
}

// MarkThreadRead marks the thread of the given message as read, the root and
// its replies both.
func (s *MessageService) MarkThreadRead(ctx context.Context, messageID int64) error {
	root, err := s.threadRoot(ctx, messageID)
	if err != nil {
		return err
	}
	return s.messageRepo.MarkThreadRead(ctx, root.ID)
}

// threadRoot walks ParentID links up to the root of a thread.
func (s *MessageService) threadRoot(ctx context.Context, messageID int64) (*models.ContactMessage, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	for msg.ParentID != nil {
		parent, err := s.messageRepo.GetByID(ctx, *msg.ParentID)
		if err != nil {
			// Orphaned reply, treat it as its own root.
			break
		}
		msg = parent
	}
	return msg, nil
}

// buildThreads assembles the thread forest from a flat slice ordered oldest
// first.
func buildThreads(messages []models.ContactMessage) []*models.MessageThread {
	nodes := make(map[int64]*models.MessageThread, len(messages))
	for i := range messages {
		nodes[messages[i].ID] = &models.MessageThread{ContactMessage: messages[i]}
	}

	var roots []*models.MessageThread
	for i := range messages {
		node := nodes[messages[i].ID]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Created.After(roots[j].Created)
	})
	return roots
}
