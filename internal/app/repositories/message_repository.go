package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
)

// MessageRepository handles contact/help messages.
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new contact message and fills in its id.
func (r *MessageRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages
			(student_id, to_role, to_id, subject, message, created, sender_role, sender_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		m.StudentID, m.ToRole, m.ToID, m.Subject, m.Message, m.Created,
		m.SenderRole, m.SenderID, m.ParentID,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("error creating contact message: %w", err)
	}
	return nil
}

// GetByID retrieves a message with the student name joined in. Messages from
// deleted students survive with an empty name.
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.ContactMessage, error) {
	query := `
		SELECT m.id, m.student_id, m.to_role, m.to_id, m.subject, m.message, m.created,
		       m.sender_role, m.sender_id, m.parent_id, m.is_read, COALESCE(s.name, '')
		FROM contact_messages m
		LEFT JOIN students s ON m.student_id = s.id
		WHERE m.id = $1
	`

	var m models.ContactMessage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.StudentID, &m.ToRole, &m.ToID, &m.Subject, &m.Message, &m.Created,
		&m.SenderRole, &m.SenderID, &m.ParentID, &m.IsRead, &m.StudentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving contact message: %w", err)
	}
	return &m, nil
}

// List returns the newest messages with student names, up to limit.
func (r *MessageRepository) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	query := `
		SELECT m.id, m.student_id, m.to_role, m.to_id, m.subject, m.message, m.created,
		       m.sender_role, m.sender_id, m.parent_id, m.is_read, COALESCE(s.name, '')
		FROM contact_messages m
		LEFT JOIN students s ON m.student_id = s.id
		ORDER BY m.created DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ForStudent returns every message in a student's inbox, oldest first, ready
// for thread assembly.
func (r *MessageRepository) ForStudent(ctx context.Context, studentID int64) ([]models.ContactMessage, error) {
	query := `
		SELECT m.id, m.student_id, m.to_role, m.to_id, m.subject, m.message, m.created,
		       m.sender_role, m.sender_id, m.parent_id, m.is_read, COALESCE(s.name, '')
		FROM contact_messages m
		LEFT JOIN students s ON m.student_id = s.id
		WHERE m.student_id = $1
		ORDER BY m.created ASC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// MarkThreadRead marks a thread root and its direct replies as read.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, rootID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE contact_messages SET is_read = TRUE WHERE id = $1 OR parent_id = $1`, rootID)
	if err != nil {
		return fmt.Errorf("error marking thread read: %w", err)
	}
	return nil
}

func scanMessages(rows pgx.Rows) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.StudentID, &m.ToRole, &m.ToID, &m.Subject, &m.Message, &m.Created,
			&m.SenderRole, &m.SenderID, &m.ParentID, &m.IsRead, &m.StudentName,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
