package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so
// repository methods can run standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances.
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	StudentRepository      *StudentRepository
	RoomRepository         *RoomRepository
	HostelRepository       *HostelRepository
	DriverRepository       *DriverRepository
	BusRepository          *BusRepository
	RouteRepository        *RouteRepository
	TransportRepository    *TransportRepository
	AnnouncementRepository *AnnouncementRepository
	MessageRepository      *MessageRepository
}

// NewRepositories initializes all repositories over the shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		StudentRepository:      NewStudentRepository(db),
		RoomRepository:         NewRoomRepository(db),
		HostelRepository:       NewHostelRepository(db),
		DriverRepository:       NewDriverRepository(db),
		BusRepository:          NewBusRepository(db),
		RouteRepository:        NewRouteRepository(db),
		TransportRepository:    NewTransportRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		MessageRepository:      NewMessageRepository(db),
	}
}
