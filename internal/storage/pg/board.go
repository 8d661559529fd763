package pg

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pinboard-dev/pinboard/internal/domain"
	internal_errors "github.com/pinboard-dev/pinboard/internal/errors"
)

// SaveBoard inserts a board. The (email, name) unique constraint maps a
// duplicate per-user board name to Conflict.
func (s *Storage) SaveBoard(board domain.Board) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveBoard(tx, board)
		return err
	})
	return id, err
}

// Boards returns all boards owned by the given email.
func (s *Storage) Boards(email string) ([]domain.Board, error) {
	rows, err := s.db.Query("SELECT id, email, name, created_at FROM boards WHERE email = $1 ORDER BY id", email)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.Id, &b.Email, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate boards: %w", err)
	}
	return boards, nil
}

func (s *Storage) saveBoard(q Querier, board domain.Board) (int64, error) {
	var id int64
	err := q.QueryRow("INSERT INTO boards(email, name) VALUES($1, $2) RETURNING id",
		board.Email, board.Name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Board already exists", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert board: %w", err)
	}
	return id, nil
}
