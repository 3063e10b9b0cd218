package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matrimony/backend/internal/models"
)

type MongoFavoriteService struct {
	client       *mongo.Client
	favoritesCol *mongo.Collection
	directory    BiodataDirectory
}

func NewMongoFavoriteService(ctx context.Context, client *mongo.Client, dbName string, directory BiodataDirectory) (*MongoFavoriteService, error) {
	col := client.Database(dbName).Collection("favorites")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "biodata_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_email", Value: 1}}},
	})

	return &MongoFavoriteService{client: client, favoritesCol: col, directory: directory}, nil
}

func (s *MongoFavoriteService) Add(ctx context.Context, userEmail string, biodataID int) (*models.Favorite, error) {
	// Also guards against favorites pointing at ids that never existed.
	b, err := s.directory.GetByID(ctx, biodataID)
	if err != nil {
		return nil, err
	}

	err = s.favoritesCol.FindOne(ctx, bson.M{"user_email": userEmail, "biodata_id": biodataID}).Err()
	if err == nil {
		return nil, ErrAlreadyFavorited
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	fav := &models.Favorite{
		ID:                uuid.New().String(),
		UserEmail:         userEmail,
		BiodataID:         biodataID,
		Name:              b.Name,
		PermanentDivision: b.PermanentDivision,
		Occupation:        b.Occupation,
		CreatedAt:         time.Now().UTC(),
	}
	if _, err := s.favoritesCol.InsertOne(ctx, fav); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return fav, nil
}

func (s *MongoFavoriteService) ListByEmail(ctx context.Context, userEmail string) ([]*models.Favorite, error) {
	cur, err := s.favoritesCol.Find(ctx, bson.M{"user_email": userEmail})
	if err != nil {
		return nil, err
	}
	favorites := []*models.Favorite{}
	if err := cur.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (s *MongoFavoriteService) Remove(ctx context.Context, id, userEmail string) error {
	var fav models.Favorite
	err := s.favoritesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		return ErrFavoriteNotFound
	}
	if err != nil {
		return err
	}
	if fav.UserEmail != userEmail {
		return ErrFavoriteForbidden
	}

	_, err = s.favoritesCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
