package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongphuc2004/Music-Flow/models"
	"github.com/hongphuc2004/Music-Flow/pkg/response"
	"github.com/hongphuc2004/Music-Flow/repository"
)

const topicListCacheKey = "catalog:topics"

type TopicController struct {
	topics TopicStore
	songs  SongStore
	cache  CatalogCache
}

func NewTopicController(topics TopicStore, songs SongStore, cache CatalogCache) *TopicController {
	return &TopicController{topics: topics, songs: songs, cache: cache}
}

type CreateTopicRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Color       string `json:"color"`
}

type UpdateTopicRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Color       *string `json:"color"`
}

func (t *TopicController) List(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := t.cache.Get(ctx, topicListCacheKey); err == nil {
		var topics []models.Topic
		if err := json.Unmarshal([]byte(cached), &topics); err == nil {
			response.OK(c, gin.H{"topics": topics})
			return
		}
	}

	topics, err := t.topics.List(ctx)
	if err != nil {
		log.Printf("Error listing topics: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get topics failed", err)
		return
	}

	if data, err := json.Marshal(topics); err == nil {
		if err := t.cache.Set(ctx, topicListCacheKey, string(data)); err != nil {
			log.Printf("Error caching topic list: %v", err)
		}
	}

	response.OK(c, gin.H{"topics": topics})
}

func (t *TopicController) Songs(c *gin.Context) {
	topicID, err := primitive.ObjectIDFromHex(c.Param("topicId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	songs, err := t.songs.FindByTopic(c.Request.Context(), topicID)
	if err != nil {
		log.Printf("Error listing songs by topic: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get songs failed", err)
		return
	}

	response.OK(c, gin.H{"songs": songs})
}

func (t *TopicController) Create(c *gin.Context) {
	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Topic name is required", err)
		return
	}

	topic := models.Topic{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Color:       req.Color,
	}
	if topic.Color == "" {
		topic.Color = models.DefaultTopicColor
	}

	if err := t.topics.Create(c.Request.Context(), &topic); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.Fail(c, http.StatusConflict, "Topic name already exists")
			return
		}
		log.Printf("Error creating topic: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Create topic failed", err)
		return
	}

	t.invalidateList(c)
	response.Created(c, "Topic created successfully", gin.H{"topic": topic})
}

func (t *TopicController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	var req UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Invalid topic data", err)
		return
	}

	topic, err := t.topics.Update(c.Request.Context(), id, req.Name, req.Description, req.ImageURL, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "Topic not found")
		case errors.Is(err, repository.ErrDuplicate):
			response.Fail(c, http.StatusConflict, "Topic name already exists")
		default:
			log.Printf("Error updating topic: %v", err)
			response.FailWith(c, http.StatusInternalServerError, "Update topic failed", err)
		}
		return
	}

	t.invalidateList(c)
	response.Message(c, "Topic updated successfully", gin.H{"topic": topic})
}

// Delete refuses to remove a topic that songs still reference, so song
// documents never end up with dangling topic ids.
func (t *TopicController) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	if _, err := t.topics.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Topic not found")
			return
		}
		log.Printf("Error loading topic: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete topic failed", err)
		return
	}

	count, err := t.songs.CountByTopic(ctx, id)
	if err != nil {
		log.Printf("Error counting songs for topic: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete topic failed", err)
		return
	}
	if count > 0 {
		response.Fail(c, http.StatusConflict, "Topic still has songs")
		return
	}

	if err := t.topics.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Topic not found")
			return
		}
		log.Printf("Error deleting topic: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete topic failed", err)
		return
	}

	t.invalidateList(c)
	response.Message(c, "Topic deleted successfully", nil)
}

func (t *TopicController) invalidateList(c *gin.Context) {
	if err := t.cache.Delete(c.Request.Context(), topicListCacheKey); err != nil {
		log.Printf("Error invalidating topic list cache: %v", err)
	}
}
