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

// AnnouncementFilter narrows announcement listings.
type AnnouncementFilter struct {
	// OnlyActive: nil = all, true = active only, false = inactive only.
	OnlyActive *bool
	// StudentID, when set, applies that student's dismissals.
	StudentID *int64
	// IncludeDismissed keeps dismissed announcements in the listing (marked)
	// instead of dropping them. Only meaningful with StudentID.
	IncludeDismissed bool
	// Ascending orders oldest first; the default is newest first.
	Ascending bool
}

// AnnouncementRepository handles announcements and per-student dismissals.
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create inserts a new announcement and fills in its id.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (title, message, created, start_date, end_date, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, a.Title, a.Message, a.Created, a.StartDate, a.EndDate, a.Active).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("error creating announcement: %w", err)
	}
	return nil
}

// GetByID retrieves an announcement by id.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `
		SELECT id, title, message, created, start_date, end_date, active
		FROM announcements
		WHERE id = $1
	`

	var a models.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Title, &a.Message, &a.Created, &a.StartDate, &a.EndDate, &a.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}
	return &a, nil
}

// List returns announcements matching the filter. The schedule window is
// always applied: only announcements valid today are returned.
func (r *AnnouncementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error) {
	where := `(a.start_date IS NULL OR a.start_date <= CURRENT_DATE)
	      AND (a.end_date IS NULL OR a.end_date >= CURRENT_DATE)`
	if filter.OnlyActive != nil {
		if *filter.OnlyActive {
			where += ` AND a.active`
		} else {
			where += ` AND NOT a.active`
		}
	}

	order := "DESC"
	if filter.Ascending {
		order = "ASC"
	}

	var query string
	var args []any
	switch {
	case filter.StudentID != nil && filter.IncludeDismissed:
		query = fmt.Sprintf(`
			SELECT a.id, a.title, a.message, a.created, a.start_date, a.end_date, a.active,
			       d.id IS NOT NULL AS dismissed
			FROM announcements a
			LEFT JOIN dismissed_announcements d
			       ON a.id = d.announcement_id AND d.student_id = $1
			WHERE %s
			ORDER BY a.created %s`, where, order)
		args = append(args, *filter.StudentID)
	case filter.StudentID != nil:
		query = fmt.Sprintf(`
			SELECT a.id, a.title, a.message, a.created, a.start_date, a.end_date, a.active,
			       FALSE AS dismissed
			FROM announcements a
			LEFT JOIN dismissed_announcements d
			       ON a.id = d.announcement_id AND d.student_id = $1
			WHERE %s AND d.id IS NULL
			ORDER BY a.created %s`, where, order)
		args = append(args, *filter.StudentID)
	default:
		query = fmt.Sprintf(`
			SELECT a.id, a.title, a.message, a.created, a.start_date, a.end_date, a.active,
			       FALSE AS dismissed
			FROM announcements a
			WHERE %s
			ORDER BY a.created %s`, where, order)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.Created, &a.StartDate, &a.EndDate, &a.Active, &a.Dismissed); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	return announcements, rows.Err()
}

// Update applies the non-nil fields of upd to the announcement row.
func (r *AnnouncementRepository) Update(ctx context.Context, id int64, upd models.AnnouncementUpdate) error {
	set, args := buildSet([]setClause{
		{"title", upd.Title},
		{"message", upd.Message},
		{"start_date", upd.StartDate},
		{"end_date", upd.EndDate},
		{"active", upd.Active},
	})
	if set == "" {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE announcements SET %s WHERE id = $%d`, set, len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes an announcement and its dismissals.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM dismissed_announcements WHERE announcement_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting dismissals: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// InsertDismissal records that a student dismissed an announcement.
func (r *AnnouncementRepository) InsertDismissal(ctx context.Context, studentID, announcementID int64) (int64, error) {
	var id int64
	query := `
		INSERT INTO dismissed_announcements (announcement_id, student_id)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRow(ctx, query, announcementID, studentID).Scan(&id); err != nil {
		return 0, fmt.Errorf("error recording dismissal: %w", err)
	}
	return id, nil
}
