package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/dberrors"
)

// RoomRepository handles database operations for hostel rooms.
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a new room and fills in its id.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO hostel_rooms (block, room_no, capacity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, room.Block, room.RoomNo, room.Capacity).Scan(&room.ID)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrConstraint
		}
		return fmt.Errorf("error creating room: %w", err)
	}
	return nil
}

// GetAll retrieves all rooms.
func (r *RoomRepository) GetAll(ctx context.Context) ([]*models.Room, error) {
	query := `SELECT id, block, room_no, capacity FROM hostel_rooms ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Block, &room.RoomNo, &room.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

// CapacityForUpdate reads a room's capacity through q, locking the row when q
// is a transaction so concurrent allocators serialize on it.
func (r *RoomRepository) CapacityForUpdate(ctx context.Context, q Querier, roomID int64) (int, error) {
	var capacity int
	err := q.QueryRow(ctx, `SELECT capacity FROM hostel_rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrRoomNotFound
		}
		return 0, fmt.Errorf("error reading room capacity: %w", err)
	}
	return capacity, nil
}
