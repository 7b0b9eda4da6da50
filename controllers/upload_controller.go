package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/hongphuc2004/Music-Flow/pkg/response"
	"github.com/hongphuc2004/Music-Flow/platform/storage"
)

type UploadController struct {
	media MediaStore
}

func NewUploadController(media MediaStore) *UploadController {
	return &UploadController{media: media}
}

// Audio relays a raw audio upload to the media store and returns its durable
// URL. The temp copy is removed on success and failure alike.
func (u *UploadController) Audio(c *gin.Context) {
	header, err := c.FormFile("audio")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "No file uploaded. Field name must be 'audio'")
		return
	}

	path, err := saveTempFile(c, header)
	if err != nil {
		log.Printf("Error saving audio upload: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}
	defer os.Remove(path)

	result, err := u.media.UploadFile(c.Request.Context(), storage.KindAudio, audioFolder, path)
	if err != nil {
		log.Printf("Error relaying audio: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	response.OK(c, gin.H{"url": result.URL})
}
