// Package mongostore implements core.Store on MongoDB. Favorites and playlist
// songs are stored as sub-arrays of their parent documents.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection     = "users"
	playlistsCollection = "playlists"
)

// Compile-time interface check.
var _ core.Store = (*Store)(nil)

type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	users     *mongo.Collection
	playlists *mongo.Collection
}

// New connects to uri, verifies the connection and ensures indexes exist.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:    client,
		db:        db,
		users:     db.Collection(usersCollection),
		playlists: db.Collection(playlistsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	if _, err := s.playlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to create playlist indexes: %w", err)
	}
	return nil
}

// Health checks the MongoDB connection
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrRecordNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicateKey
	default:
		return err
	}
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

// User operations
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	stamp(&user.CreatedAt, &user.UpdatedAt)
	_, err := s.users.InsertOne(ctx, user)
	return translate(err)
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"googleId": googleID})
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	stamp(&user.CreatedAt, &user.UpdatedAt)
	result, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{})
}

func (s *Store) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{"role": role})
}

// Playlist operations
func (s *Store) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.Normalize()
	stamp(&playlist.CreatedAt, &playlist.UpdatedAt)
	_, err := s.playlists.InsertOne(ctx, playlist)
	return translate(err)
}

func (s *Store) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := s.playlists.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist); err != nil {
		return nil, translate(err)
	}
	playlist.Normalize()
	return &playlist, nil
}

func (s *Store) ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	cursor, err := s.playlists.Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	playlists := []models.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	for i := range playlists {
		playlists[i].Normalize()
	}
	return playlists, nil
}

func (s *Store) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.Normalize()
	stamp(&playlist.CreatedAt, &playlist.UpdatedAt)
	result, err := s.playlists.ReplaceOne(ctx, bson.M{"_id": playlist.ID}, playlist)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	result, err := s.playlists.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (s *Store) CountPlaylists(ctx context.Context) (int64, error) {
	return s.playlists.CountDocuments(ctx, bson.M{})
}
