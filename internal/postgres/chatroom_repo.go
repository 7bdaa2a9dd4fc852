package postgres

import (
	"context"
	"errors"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRoomRepository struct {
	db *pgxpool.Pool
}

func NewChatRoomRepository(db *pgxpool.Pool) *ChatRoomRepository {
	return &ChatRoomRepository{db: db}
}

func (r *ChatRoomRepository) Get(ctx context.Context, id int64) (*domain.ChatRoom, error) {
	var c domain.ChatRoom
	query := `
		SELECT cr.id, cl.email, ct.email, cr.created_at
		FROM chat_rooms cr
		JOIN app_users cl ON cl.id = cr.client_id
		JOIN app_users ct ON ct.id = cr.caretaker_id
		WHERE cr.id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.ClientEmail, &c.CaretakerEmail, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return &c, nil
}

// IsParticipant checks membership without loading the whole row; used on the
// hot history path where the room itself is not needed.
func (r *ChatRoomRepository) IsParticipant(ctx context.Context, id int64, email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM chat_rooms cr
			JOIN app_users cl ON cl.id = cr.client_id
			JOIN app_users ct ON ct.id = cr.caretaker_id
			WHERE cr.id=$1 AND (cl.email=$2 OR ct.email=$2)
		)`, id, email).Scan(&ok)
	return ok, err
}
