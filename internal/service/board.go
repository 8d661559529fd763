package service

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pinboard-dev/pinboard/internal/domain"
	"github.com/pinboard-dev/pinboard/internal/errors"
)

const maxBoardNameLen = 50

type BoardService interface {
	Create(email, name string) error
	Boards(email string) ([]domain.Board, error)
}

type BoardStorage interface {
	SaveBoard(board domain.Board) (int64, error)
	Boards(email string) ([]domain.Board, error)
}

type Board struct {
	storage BoardStorage
}

func NewBoard(storage BoardStorage) *Board {
	return &Board{storage: storage}
}

// Create persists a board. Duplicate (email, name) comes back from the
// storage layer as Conflict.
func (b *Board) Create(email, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &errors.ErrorWithStatusCode{Message: "Board name is required", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(name) > maxBoardNameLen {
		return &errors.ErrorWithStatusCode{Message: "Board name is too long", StatusCode: http.StatusBadRequest}
	}

	_, err := b.storage.SaveBoard(domain.Board{Email: email, Name: name})
	return err
}

// Boards lists the boards owned by an email; an empty result is a 404
// per the API contract.
func (b *Board) Boards(email string) ([]domain.Board, error) {
	boards, err := b.storage.Boards(email)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, &errors.ErrorWithStatusCode{Message: "No boards found", StatusCode: http.StatusNotFound}
	}
	return boards, nil
}
