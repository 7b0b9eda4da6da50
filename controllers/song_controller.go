package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongphuc2004/Music-Flow/models"
	"github.com/hongphuc2004/Music-Flow/pkg/response"
	"github.com/hongphuc2004/Music-Flow/platform/storage"
	"github.com/hongphuc2004/Music-Flow/repository"
)

const (
	songListCacheKey = "catalog:songs"
	audioFolder      = "musicflow/audio"
	imageFolder      = "musicflow/images"
)

type SongController struct {
	songs  SongStore
	topics TopicStore
	media  MediaStore
	cache  CatalogCache
	events EventPublisher
}

func NewSongController(songs SongStore, topics TopicStore, media MediaStore, cache CatalogCache, events EventPublisher) *SongController {
	return &SongController{songs: songs, topics: topics, media: media, cache: cache, events: events}
}

// List returns every song, newest first. The listing is served from the redis
// cache when possible; cache failures fall back to the store silently.
func (s *SongController) List(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := s.cache.Get(ctx, songListCacheKey); err == nil {
		var songs []models.Song
		if err := json.Unmarshal([]byte(cached), &songs); err == nil {
			response.OK(c, gin.H{"songs": songs})
			return
		}
	}

	songs, err := s.songs.List(ctx)
	if err != nil {
		log.Printf("Error listing songs: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get songs failed", err)
		return
	}

	if data, err := json.Marshal(songs); err == nil {
		if err := s.cache.Set(ctx, songListCacheKey, string(data)); err != nil {
			log.Printf("Error caching song list: %v", err)
		}
	}

	response.OK(c, gin.H{"songs": songs})
}

// Search filters songs by query (title or artist substring), artist
// (substring) and letter (title prefix). All filters are optional and combine
// with AND semantics.
func (s *SongController) Search(c *gin.Context) {
	songs, err := s.songs.Search(c.Request.Context(),
		c.Query("query"), c.Query("artist"), c.Query("letter"))
	if err != nil {
		log.Printf("Error searching songs: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	response.OK(c, gin.H{"songs": songs})
}

func (s *SongController) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid song ID")
		return
	}

	song, err := s.songs.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Song not found")
			return
		}
		log.Printf("Error loading song: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get song failed", err)
		return
	}

	response.OK(c, gin.H{"song": song})
}

// Upload accepts a multipart request with title, artist, topicId, optional
// lyrics, and one audio plus one image file. Both files are relayed to the
// media store; the temp copies are removed whether or not the relay succeeds.
func (s *SongController) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	title := c.PostForm("title")
	artist := c.PostForm("artist")
	topicHex := c.PostForm("topicId")
	lyrics := c.PostForm("lyrics")

	if title == "" || artist == "" || topicHex == "" {
		response.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	topicID, err := primitive.ObjectIDFromHex(topicHex)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	if _, err := s.topics.FindByID(ctx, topicID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusBadRequest, "Topic does not exist")
			return
		}
		log.Printf("Error looking up topic: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	audioHeader, err := c.FormFile("audio")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Audio or image file missing")
		return
	}
	imageHeader, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Audio or image file missing")
		return
	}

	audioPath, err := saveTempFile(c, audioHeader)
	if err != nil {
		log.Printf("Error saving audio upload: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}
	defer os.Remove(audioPath)

	imagePath, err := saveTempFile(c, imageHeader)
	if err != nil {
		log.Printf("Error saving image upload: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}
	defer os.Remove(imagePath)

	audioUpload, err := s.media.UploadFile(ctx, storage.KindAudio, audioFolder, audioPath)
	if err != nil {
		log.Printf("Error relaying audio: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	imageUpload, err := s.media.UploadFile(ctx, storage.KindImage, imageFolder, imagePath)
	if err != nil {
		log.Printf("Error relaying image: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	song := models.Song{
		Title:         title,
		Artist:        artist,
		TopicID:       topicID,
		Lyrics:        lyrics,
		AudioURL:      audioUpload.URL,
		AudioPublicID: audioUpload.PublicID,
		Duration:      audioUpload.Duration,
		ImageURL:      imageUpload.URL,
		ImagePublicID: imageUpload.PublicID,
	}

	if err := s.songs.Create(ctx, &song); err != nil {
		log.Printf("Error saving song: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	if err := s.events.Publish(ctx, "song.uploaded", song.ID.Hex(), song); err != nil {
		log.Printf("Error publishing song.uploaded event: %v", err)
	}
	s.invalidateList(c)

	response.Created(c, "Upload song successfully", gin.H{"song": song})
}

// Delete removes the stored media assets through the relay and then deletes
// the document. Relay failures are logged but do not block the delete.
func (s *SongController) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid song ID")
		return
	}

	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Song not found")
			return
		}
		log.Printf("Error loading song: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete song failed", err)
		return
	}

	if err := s.media.RemoveFile(ctx, storage.KindAudio, song.AudioPublicID); err != nil {
		log.Printf("Error removing audio asset %s: %v", song.AudioPublicID, err)
	}
	if err := s.media.RemoveFile(ctx, storage.KindImage, song.ImagePublicID); err != nil {
		log.Printf("Error removing image asset %s: %v", song.ImagePublicID, err)
	}

	if err := s.songs.Delete(ctx, id); err != nil {
		log.Printf("Error deleting song: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete song failed", err)
		return
	}

	if err := s.events.Publish(ctx, "song.deleted", id.Hex(), gin.H{"id": id.Hex()}); err != nil {
		log.Printf("Error publishing song.deleted event: %v", err)
	}
	s.invalidateList(c)

	response.Message(c, "Song deleted successfully", nil)
}

func (s *SongController) invalidateList(c *gin.Context) {
	if err := s.cache.Delete(c.Request.Context(), songListCacheKey); err != nil {
		log.Printf("Error invalidating song list cache: %v", err)
	}
}

// saveTempFile copies a multipart upload into the OS temp dir. Callers must
// remove the file on every path.
func saveTempFile(c *gin.Context, header *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%s%s", uuid.New().String(), filepath.Ext(header.Filename)))
	if err := c.SaveUploadedFile(header, path); err != nil {
		return "", err
	}
	return path, nil
}
