package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinboard-dev/pinboard/internal/domain"
	internal_errors "github.com/pinboard-dev/pinboard/internal/errors"
)

func TestCreateBoardHandler_Success(t *testing.T) {
	var gotEmail, gotName string
	boards := &MockBoardService{
		CreateFunc: func(email, name string) error {
			gotEmail, gotName = email, name
			return nil
		},
	}
	router := newTestRouter(testDeps{boards: boards})

	body := `{"email":"a@x.com","boardname":"travel"}`
	req := httptest.NewRequest("POST", "/boards", strings.NewReader(body))
	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, "travel", gotName)
	assert.Equal(t, "Board created", decodeEnvelope(t, rr).Message)
}

func TestCreateBoardHandler_MissingFields(t *testing.T) {
	router := newTestRouter(testDeps{})

	for name, body := range map[string]string{
		"no boardname": `{"email":"a@x.com"}`,
		"no email":     `{"boardname":"travel"}`,
		"bad email":    `{"email":"nope","boardname":"travel"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/boards", strings.NewReader(body))
			rr := serve(router, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCreateBoardHandler_Duplicate(t *testing.T) {
	boards := &MockBoardService{
		CreateFunc: func(email, name string) error {
			return &internal_errors.ErrorWithStatusCode{Message: "Board already exists", StatusCode: http.StatusConflict}
		},
	}
	router := newTestRouter(testDeps{boards: boards})

	body := `{"email":"a@x.com","boardname":"travel"}`
	req := httptest.NewRequest("POST", "/boards", strings.NewReader(body))
	rr := serve(router, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Board already exists", decodeEnvelope(t, rr).Message)
}

func TestGetBoardsHandler_Success(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	boards := &MockBoardService{
		BoardsFunc: func(email string) ([]domain.Board, error) {
			return []domain.Board{
				{Id: 1, Email: email, Name: "travel", CreatedAt: created},
				{Id: 2, Email: email, Name: "food", CreatedAt: created},
			}, nil
		},
	}
	router := newTestRouter(testDeps{boards: boards})

	req := httptest.NewRequest("POST", "/boards/a@x.com", nil)
	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp boardsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Boards found", resp.Message)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(1), resp.Data[0].Id)
	assert.Equal(t, "travel", resp.Data[0].Name)
	assert.Equal(t, "a@x.com", resp.Data[0].Email)
}

func TestGetBoardsHandler_Empty(t *testing.T) {
	boards := &MockBoardService{
		BoardsFunc: func(email string) ([]domain.Board, error) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "No boards found", StatusCode: http.StatusNotFound}
		},
	}
	router := newTestRouter(testDeps{boards: boards})

	req := httptest.NewRequest("POST", "/boards/a@x.com", nil)
	rr := serve(router, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "No boards found", decodeEnvelope(t, rr).Message)
}
