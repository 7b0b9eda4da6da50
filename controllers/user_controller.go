package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongphuc2004/Music-Flow/pkg/response"
	"github.com/hongphuc2004/Music-Flow/repository"
)

type UserController struct {
	users     UserStore
	songs     SongStore
	playlists PlaylistStore
}

func NewUserController(users UserStore, songs SongStore, playlists PlaylistStore) *UserController {
	return &UserController{users: users, songs: songs, playlists: playlists}
}

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

type FavoriteRequest struct {
	SongID string `json:"songId" binding:"required"`
}

// Me returns the caller's profile with favorites and playlists resolved to
// full documents. The password hash is never serialized.
func (u *UserController) Me(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	user, err := u.users.FindByID(c.Request.Context(), caller)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error loading user: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not load profile", err)
		return
	}

	favorites, err := u.songs.FindByIDs(c.Request.Context(), user.FavoriteSongs)
	if err != nil {
		log.Printf("Error resolving favorite songs: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not load profile", err)
		return
	}

	playlists, err := u.playlists.FindByOwner(c.Request.Context(), caller)
	if err != nil {
		log.Printf("Error resolving playlists: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not load profile", err)
		return
	}

	response.OK(c, gin.H{
		"user":          user,
		"favoriteSongs": favorites,
		"playlists":     playlists,
	})
}

func (u *UserController) UpdateProfile(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Invalid profile data", err)
		return
	}

	user, err := u.users.UpdateProfile(c.Request.Context(), caller, req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error updating profile: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not update profile", err)
		return
	}

	response.Message(c, "Profile updated successfully", gin.H{"user": user})
}

func (u *UserController) AddFavorite(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Song ID is required", err)
		return
	}

	songID, err := primitive.ObjectIDFromHex(req.SongID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if _, err := u.songs.FindByID(c.Request.Context(), songID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Song not found")
			return
		}
		log.Printf("Error looking up song: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not add favorite", err)
		return
	}

	if err := u.users.AddFavorite(c.Request.Context(), caller, songID); err != nil {
		log.Printf("Error adding favorite: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not add favorite", err)
		return
	}

	response.Message(c, "Song added to favorites", nil)
}

// RemoveFavorite is idempotent: removing a song that is not a favorite
// succeeds without effect.
func (u *UserController) RemoveFavorite(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	songID, err := primitive.ObjectIDFromHex(c.Param("songId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if err := u.users.RemoveFavorite(c.Request.Context(), caller, songID); err != nil {
		log.Printf("Error removing favorite: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not remove favorite", err)
		return
	}

	response.Message(c, "Song removed from favorites", nil)
}
