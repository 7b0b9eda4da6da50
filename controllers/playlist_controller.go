package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongphuc2004/Music-Flow/models"
	"github.com/hongphuc2004/Music-Flow/pkg/response"
	"github.com/hongphuc2004/Music-Flow/repository"
)

type PlaylistController struct {
	playlists PlaylistStore
	songs     SongStore
	users     UserStore
}

func NewPlaylistController(playlists PlaylistStore, songs SongStore, users UserStore) *PlaylistController {
	return &PlaylistController{playlists: playlists, songs: songs, users: users}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
	CoverImage  string `json:"coverImage"`
}

// UpdatePlaylistRequest uses pointer fields so an omitted field and a field
// explicitly set to its zero value stay distinguishable.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
	CoverImage  *string `json:"coverImage"`
}

type AddSongRequest struct {
	SongID string `json:"songId" binding:"required"`
}

type ReorderRequest struct {
	SongIDs []string `json:"songIds" binding:"required"`
}

// ownerView is the minimal public projection of a playlist owner.
type ownerView struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// playlistView is a playlist with its song references resolved to documents
// and the derived song count attached.
type playlistView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Owner       interface{}        `json:"userId"`
	Songs       []models.Song      `json:"songs"`
	CoverImage  string             `json:"coverImage"`
	IsPublic    bool               `json:"isPublic"`
	SongCount   int                `json:"songCount"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (p *PlaylistController) resolve(c *gin.Context, playlist *models.Playlist, owner *models.User) (playlistView, error) {
	songs, err := p.songs.FindByIDs(c.Request.Context(), playlist.Songs)
	if err != nil {
		return playlistView{}, err
	}

	view := playlistView{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Owner:       playlist.UserID,
		Songs:       songs,
		CoverImage:  playlist.CoverImage,
		IsPublic:    playlist.IsPublic,
		SongCount:   playlist.SongCount(),
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
	if owner != nil {
		view.Owner = ownerView{ID: owner.ID, Name: owner.Name, Email: owner.Email}
	}
	return view, nil
}

// loadOwned resolves the target playlist and enforces ownership. A missing
// playlist is NotFound; an existing playlist owned by someone else is
// Forbidden. Every mutating operation goes through this single check.
func (p *PlaylistController) loadOwned(c *gin.Context) (*models.Playlist, bool) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return nil, false
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid playlist ID")
		return nil, false
	}

	playlist, err := p.playlists.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Playlist not found")
			return nil, false
		}
		log.Printf("Error loading playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not load playlist", err)
		return nil, false
	}

	if !playlist.OwnedBy(caller) {
		response.Fail(c, http.StatusForbidden, "You do not own this playlist")
		return nil, false
	}

	return playlist, true
}

func (p *PlaylistController) respondResolved(c *gin.Context, message string, playlist *models.Playlist) {
	view, err := p.resolve(c, playlist, nil)
	if err != nil {
		log.Printf("Error resolving playlist songs: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Could not resolve playlist", err)
		return
	}
	response.Message(c, message, gin.H{"playlist": view})
}

// List returns the caller's playlists, newest-created first, with songs
// resolved.
func (p *PlaylistController) List(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	playlists, err := p.playlists.FindByOwner(c.Request.Context(), caller)
	if err != nil {
		log.Printf("Error listing playlists: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get playlists failed", err)
		return
	}

	views := make([]playlistView, 0, len(playlists))
	for i := range playlists {
		view, err := p.resolve(c, &playlists[i], nil)
		if err != nil {
			log.Printf("Error resolving playlist songs: %v", err)
			response.FailWith(c, http.StatusInternalServerError, "Get playlists failed", err)
			return
		}
		views = append(views, view)
	}

	response.OK(c, gin.H{"playlists": views})
}

// Get returns one playlist. Non-owners may read it only while it is public.
func (p *PlaylistController) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid playlist ID")
		return
	}

	playlist, err := p.playlists.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Playlist not found")
			return
		}
		log.Printf("Error loading playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get playlist failed", err)
		return
	}

	if !playlist.CanBeReadBy(caller) {
		response.Fail(c, http.StatusForbidden, "You do not have access to this playlist")
		return
	}

	owner, err := p.users.FindByID(c.Request.Context(), playlist.UserID)
	if err != nil {
		// A dangling owner reference should not hide the playlist.
		log.Printf("Error resolving playlist owner: %v", err)
		owner = nil
	}

	view, err := p.resolve(c, playlist, owner)
	if err != nil {
		log.Printf("Error resolving playlist songs: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Get playlist failed", err)
		return
	}

	response.OK(c, gin.H{"playlist": view})
}

// Create persists a new empty playlist and links it on the owner's document.
// The two writes are sequential and non-atomic; if the link fails the request
// reports failure even though the playlist document exists.
func (p *PlaylistController) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Playlist name is required", err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.Fail(c, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist := models.Playlist{
		Name:        name,
		Description: req.Description,
		UserID:      caller,
		Songs:       []primitive.ObjectID{},
		CoverImage:  req.CoverImage,
		IsPublic:    req.IsPublic,
	}

	if err := p.playlists.Create(c.Request.Context(), &playlist); err != nil {
		log.Printf("Error creating playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Create playlist failed", err)
		return
	}

	if err := p.users.LinkPlaylist(c.Request.Context(), caller, playlist.ID); err != nil {
		log.Printf("Error linking playlist to user: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Create playlist failed", err)
		return
	}

	view, err := p.resolve(c, &playlist, nil)
	if err != nil {
		log.Printf("Error resolving playlist songs: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Create playlist failed", err)
		return
	}

	response.Created(c, "Playlist created successfully", gin.H{"playlist": view})
}

// Update applies only the fields present in the request body.
func (p *PlaylistController) Update(c *gin.Context) {
	playlist, ok := p.loadOwned(c)
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Invalid playlist data", err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			response.Fail(c, http.StatusBadRequest, "Playlist name cannot be empty")
			return
		}
		playlist.Name = name
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.IsPublic != nil {
		playlist.IsPublic = *req.IsPublic
	}
	if req.CoverImage != nil {
		playlist.CoverImage = *req.CoverImage
	}

	if err := p.playlists.Save(c.Request.Context(), playlist); err != nil {
		log.Printf("Error updating playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Update playlist failed", err)
		return
	}

	p.respondResolved(c, "Playlist updated successfully", playlist)
}

// Delete unlinks the playlist from the owner's document first, then removes
// the playlist itself.
func (p *PlaylistController) Delete(c *gin.Context) {
	playlist, ok := p.loadOwned(c)
	if !ok {
		return
	}

	if err := p.users.UnlinkPlaylist(c.Request.Context(), playlist.UserID, playlist.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Error unlinking playlist from user: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete playlist failed", err)
		return
	}

	if err := p.playlists.Delete(c.Request.Context(), playlist.ID); err != nil {
		log.Printf("Error deleting playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Delete playlist failed", err)
		return
	}

	response.Message(c, "Playlist deleted successfully", nil)
}

// AddSong appends a song to the end of the sequence. Adding a song that is
// already present is a conflict and leaves the sequence unchanged.
func (p *PlaylistController) AddSong(c *gin.Context) {
	playlist, ok := p.loadOwned(c)
	if !ok {
		return
	}

	var req AddSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Song ID is required", err)
		return
	}

	songID, err := primitive.ObjectIDFromHex(req.SongID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if _, err := p.songs.FindByID(c.Request.Context(), songID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Song not found")
			return
		}
		log.Printf("Error looking up song: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Add song failed", err)
		return
	}

	if !playlist.AddSong(songID) {
		response.Fail(c, http.StatusConflict, "Song already in playlist")
		return
	}

	if err := p.playlists.Save(c.Request.Context(), playlist); err != nil {
		log.Printf("Error saving playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Add song failed", err)
		return
	}

	p.respondResolved(c, "Song added to playlist", playlist)
}

// RemoveSong removes every occurrence of the song id. Removing an absent id
// succeeds without effect.
func (p *PlaylistController) RemoveSong(c *gin.Context) {
	playlist, ok := p.loadOwned(c)
	if !ok {
		return
	}

	songID, err := primitive.ObjectIDFromHex(c.Param("songId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid song ID")
		return
	}

	playlist.RemoveSong(songID)

	if err := p.playlists.Save(c.Request.Context(), playlist); err != nil {
		log.Printf("Error saving playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Remove song failed", err)
		return
	}

	p.respondResolved(c, "Song removed from playlist", playlist)
}

// Reorder replaces the stored sequence verbatim with the provided one.
func (p *PlaylistController) Reorder(c *gin.Context) {
	playlist, ok := p.loadOwned(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Song ID list is required", err)
		return
	}

	songIDs := make([]primitive.ObjectID, 0, len(req.SongIDs))
	for _, hex := range req.SongIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid song ID in list")
			return
		}
		songIDs = append(songIDs, id)
	}

	playlist.Reorder(songIDs)

	if err := p.playlists.Save(c.Request.Context(), playlist); err != nil {
		log.Printf("Error saving playlist: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Reorder playlist failed", err)
		return
	}

	p.respondResolved(c, "Playlist reordered successfully", playlist)
}
