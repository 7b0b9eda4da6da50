package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongphuc2004/Music-Flow/models"
	"github.com/hongphuc2004/Music-Flow/platform/middleware"
	"github.com/hongphuc2004/Music-Flow/platform/storage"
	"github.com/hongphuc2004/Music-Flow/repository"
)

// setAuth simulates the auth middleware for handler tests.
func setAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// ---- users ----

type fakeUserStore struct {
	users   map[primitive.ObjectID]*models.User
	byEmail map[string]primitive.ObjectID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   map[primitive.ObjectID]*models.User{},
		byEmail: map[string]primitive.ObjectID{},
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, taken := f.byEmail[user.Email]; taken {
		return repository.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.FavoriteSongs == nil {
		user.FavoriteSongs = []primitive.ObjectID{}
	}
	if user.Playlists == nil {
		user.Playlists = []primitive.ObjectID{}
	}
	clone := *user
	f.users[user.ID] = &clone
	f.byEmail[user.Email] = user.ID
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *f.users[id]
	return &clone, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, name, avatar *string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name != nil {
		user.Name = *name
	}
	if avatar != nil {
		user.Avatar = *avatar
	}
	user.UpdatedAt = time.Now()
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) AddFavorite(_ context.Context, userID, songID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range user.FavoriteSongs {
		if id == songID {
			return nil
		}
	}
	user.FavoriteSongs = append(user.FavoriteSongs, songID)
	return nil
}

func (f *fakeUserStore) RemoveFavorite(_ context.Context, userID, songID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := user.FavoriteSongs[:0]
	for _, id := range user.FavoriteSongs {
		if id != songID {
			kept = append(kept, id)
		}
	}
	user.FavoriteSongs = kept
	return nil
}

func (f *fakeUserStore) LinkPlaylist(_ context.Context, userID, playlistID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Playlists = append(user.Playlists, playlistID)
	return nil
}

func (f *fakeUserStore) UnlinkPlaylist(_ context.Context, userID, playlistID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := user.Playlists[:0]
	for _, id := range user.Playlists {
		if id != playlistID {
			kept = append(kept, id)
		}
	}
	user.Playlists = kept
	return nil
}

// ---- songs ----

type fakeSongStore struct {
	songs map[primitive.ObjectID]*models.Song
	order []primitive.ObjectID

	lastQuery, lastArtist, lastLetter string
	searchResult                      []models.Song
}

func newFakeSongStore() *fakeSongStore {
	return &fakeSongStore{songs: map[primitive.ObjectID]*models.Song{}}
}

func (f *fakeSongStore) add(title, artist string) models.Song {
	song := models.Song{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Artist:    artist,
		CreatedAt: time.Now(),
	}
	f.songs[song.ID] = &song
	f.order = append(f.order, song.ID)
	return song
}

func (f *fakeSongStore) Create(_ context.Context, song *models.Song) error {
	song.ID = primitive.NewObjectID()
	song.CreatedAt = time.Now()
	song.UpdatedAt = song.CreatedAt
	clone := *song
	f.songs[song.ID] = &clone
	f.order = append(f.order, song.ID)
	return nil
}

func (f *fakeSongStore) List(_ context.Context) ([]models.Song, error) {
	songs := make([]models.Song, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		songs = append(songs, *f.songs[f.order[i]])
	}
	return songs, nil
}

func (f *fakeSongStore) Search(_ context.Context, query, artist, letter string) ([]models.Song, error) {
	f.lastQuery, f.lastArtist, f.lastLetter = query, artist, letter
	return f.searchResult, nil
}

func (f *fakeSongStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Song, error) {
	song, ok := f.songs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *song
	return &clone, nil
}

func (f *fakeSongStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Song, error) {
	songs := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if song, ok := f.songs[id]; ok {
			songs = append(songs, *song)
		}
	}
	return songs, nil
}

func (f *fakeSongStore) FindByTopic(_ context.Context, topicID primitive.ObjectID) ([]models.Song, error) {
	songs := []models.Song{}
	for i := len(f.order) - 1; i >= 0; i-- {
		if song := f.songs[f.order[i]]; song.TopicID == topicID {
			songs = append(songs, *song)
		}
	}
	return songs, nil
}

func (f *fakeSongStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.songs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.songs, id)
	kept := f.order[:0]
	for _, existing := range f.order {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	f.order = kept
	return nil
}

func (f *fakeSongStore) CountByTopic(_ context.Context, topicID primitive.ObjectID) (int64, error) {
	var count int64
	for _, song := range f.songs {
		if song.TopicID == topicID {
			count++
		}
	}
	return count, nil
}

// ---- topics ----

type fakeTopicStore struct {
	topics map[primitive.ObjectID]*models.Topic
	byName map[string]primitive.ObjectID
}

func newFakeTopicStore() *fakeTopicStore {
	return &fakeTopicStore{
		topics: map[primitive.ObjectID]*models.Topic{},
		byName: map[string]primitive.ObjectID{},
	}
}

func (f *fakeTopicStore) Create(_ context.Context, topic *models.Topic) error {
	if _, taken := f.byName[topic.Name]; taken {
		return repository.ErrDuplicate
	}
	topic.ID = primitive.NewObjectID()
	topic.CreatedAt = time.Now()
	topic.UpdatedAt = topic.CreatedAt
	clone := *topic
	f.topics[topic.ID] = &clone
	f.byName[topic.Name] = topic.ID
	return nil
}

func (f *fakeTopicStore) List(_ context.Context) ([]models.Topic, error) {
	topics := []models.Topic{}
	for _, topic := range f.topics {
		topics = append(topics, *topic)
	}
	return topics, nil
}

func (f *fakeTopicStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Topic, error) {
	topic, ok := f.topics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *topic
	return &clone, nil
}

func (f *fakeTopicStore) Update(_ context.Context, id primitive.ObjectID, name, description, imageURL, color *string) (*models.Topic, error) {
	topic, ok := f.topics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name != nil {
		if other, taken := f.byName[*name]; taken && other != id {
			return nil, repository.ErrDuplicate
		}
		delete(f.byName, topic.Name)
		topic.Name = *name
		f.byName[topic.Name] = id
	}
	if description != nil {
		topic.Description = *description
	}
	if imageURL != nil {
		topic.ImageURL = *imageURL
	}
	if color != nil {
		topic.Color = *color
	}
	topic.UpdatedAt = time.Now()
	clone := *topic
	return &clone, nil
}

func (f *fakeTopicStore) Delete(_ context.Context, id primitive.ObjectID) error {
	topic, ok := f.topics[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(f.byName, topic.Name)
	delete(f.topics, id)
	return nil
}

// ---- playlists ----

type fakePlaylistStore struct {
	playlists map[primitive.ObjectID]*models.Playlist
	order     []primitive.ObjectID
}

func newFakePlaylistStore() *fakePlaylistStore {
	return &fakePlaylistStore{playlists: map[primitive.ObjectID]*models.Playlist{}}
}

func clonePlaylist(p *models.Playlist) *models.Playlist {
	clone := *p
	clone.Songs = append([]primitive.ObjectID{}, p.Songs...)
	return &clone
}

func (f *fakePlaylistStore) Create(_ context.Context, playlist *models.Playlist) error {
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = playlist.CreatedAt
	if playlist.Songs == nil {
		playlist.Songs = []primitive.ObjectID{}
	}
	f.playlists[playlist.ID] = clonePlaylist(playlist)
	f.order = append(f.order, playlist.ID)
	return nil
}

func (f *fakePlaylistStore) FindByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	playlists := []models.Playlist{}
	for i := len(f.order) - 1; i >= 0; i-- {
		if playlist, ok := f.playlists[f.order[i]]; ok && playlist.UserID == ownerID {
			playlists = append(playlists, *clonePlaylist(playlist))
		}
	}
	return playlists, nil
}

func (f *fakePlaylistStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	playlist, ok := f.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePlaylist(playlist), nil
}

func (f *fakePlaylistStore) Save(_ context.Context, playlist *models.Playlist) error {
	if _, ok := f.playlists[playlist.ID]; !ok {
		return repository.ErrNotFound
	}
	playlist.UpdatedAt = time.Now()
	f.playlists[playlist.ID] = clonePlaylist(playlist)
	return nil
}

func (f *fakePlaylistStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.playlists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.playlists, id)
	return nil
}

// ---- media / cache / events ----

type removedAsset struct {
	kind     storage.Kind
	publicID string
}

type fakeMedia struct {
	uploads  int
	removed  []removedAsset
	duration float64
	err      error
}

func (f *fakeMedia) UploadFile(_ context.Context, kind storage.Kind, folder, _ string) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads++
	publicID := fmt.Sprintf("%s/object-%d", folder, f.uploads)
	result := &storage.UploadResult{
		URL:      "http://media.local/" + publicID,
		PublicID: publicID,
	}
	if kind == storage.KindAudio {
		result.Duration = f.duration
	}
	return result, nil
}

func (f *fakeMedia) RemoveFile(_ context.Context, kind storage.Kind, publicID string) error {
	f.removed = append(f.removed, removedAsset{kind: kind, publicID: publicID})
	return nil
}

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	value, ok := f.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

type publishedEvent struct {
	eventType string
	key       string
}

type fakeEvents struct {
	published []publishedEvent
}

func (f *fakeEvents) Publish(_ context.Context, eventType, key string, _ interface{}) error {
	f.published = append(f.published, publishedEvent{eventType: eventType, key: key})
	return nil
}
