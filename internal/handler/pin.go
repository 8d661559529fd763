package handler

import (
	"net/http"

	"github.com/pinboard-dev/pinboard/internal/utils"
)

// Uploads above this size are buffered to disk by the multipart reader.
const maxUploadMemory = 32 << 20

type pinResponse struct {
	utils.Response
	Name string `json:"name"`
	Path string `json:"path"`
}

func (h *Handler) UploadPin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Could not parse upload", false)
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Image not found", false)
		return
	}

	pin, err := h.pins.Upload(fileHeader)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, pinResponse{
		Response: utils.Response{Status: http.StatusOK, Message: "File upload successful", Result: true},
		Name:     pin.Name,
		Path:     pin.Path,
	})
}
