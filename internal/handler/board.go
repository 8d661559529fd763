package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pinboard-dev/pinboard/internal/utils"
)

type createBoardRequest struct {
	Email string `validate:"required,email" json:"email"`
	Name  string `validate:"required" json:"boardname"`
}

type boardPayload struct {
	Id        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"boardname"`
	CreatedAt time.Time `json:"createdAt"`
}

type boardsResponse struct {
	utils.Response
	Data []boardPayload `json:"data"`
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.boards.Create(req.Email, req.Name); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Board created", true)
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	boards, err := h.boards.Boards(email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	data := make([]boardPayload, 0, len(boards))
	for _, b := range boards {
		data = append(data, boardPayload{Id: b.Id, Email: b.Email, Name: b.Name, CreatedAt: b.CreatedAt})
	}

	utils.WriteJSON(w, http.StatusOK, boardsResponse{
		Response: utils.Response{Status: http.StatusOK, Message: "Boards found", Result: true},
		Data:     data,
	})
}
