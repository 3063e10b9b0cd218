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

type MongoStoryService struct {
	client     *mongo.Client
	storiesCol *mongo.Collection
}

func NewMongoStoryService(ctx context.Context, client *mongo.Client, dbName string) (*MongoStoryService, error) {
	col := client.Database(dbName).Collection("success_stories")

	// Best-effort index.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "marriage_date", Value: -1}},
	})

	return &MongoStoryService{client: client, storiesCol: col}, nil
}

func (s *MongoStoryService) Create(ctx context.Context, req *models.CreateStoryRequest) (*models.SuccessStory, error) {
	story := &models.SuccessStory{
		ID:               uuid.New().String(),
		SelfBiodataID:    req.SelfBiodataID,
		PartnerBiodataID: req.PartnerBiodataID,
		CoupleImage:      req.CoupleImage,
		Review:           req.Review,
		MarriageDate:     req.MarriageDate,
		CreatedAt:        time.Now().UTC(),
	}
	if _, err := s.storiesCol.InsertOne(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *MongoStoryService) List(ctx context.Context) ([]*models.SuccessStory, error) {
	cur, err := s.storiesCol.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "marriage_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	stories := []*models.SuccessStory{}
	if err := cur.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *MongoStoryService) GetByID(ctx context.Context, id string) (*models.SuccessStory, error) {
	var story models.SuccessStory
	err := s.storiesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&story)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}
