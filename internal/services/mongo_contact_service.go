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

type MongoContactService struct {
	client      *mongo.Client
	requestsCol *mongo.Collection
	directory   BiodataDirectory
}

func NewMongoContactService(ctx context.Context, client *mongo.Client, dbName string, directory BiodataDirectory) (*MongoContactService, error) {
	col := client.Database(dbName).Collection("contact_requests")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "self_email", Value: 1}, {Key: "biodata_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	return &MongoContactService{client: client, requestsCol: col, directory: directory}, nil
}

func (s *MongoContactService) Create(ctx context.Context, selfEmail string, req *models.CreateContactRequest, amount int64) (*models.ContactRequest, error) {
	err := s.requestsCol.FindOne(ctx, bson.M{"self_email": selfEmail, "biodata_id": req.BiodataID}).Err()
	if err == nil {
		return nil, ErrAlreadyRequested
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	cr := &models.ContactRequest{
		ID:              uuid.New().String(),
		BiodataID:       req.BiodataID,
		SelfEmail:       selfEmail,
		Name:            req.Name,
		Status:          models.ContactRequestPending,
		PaymentIntentID: req.PaymentIntentID,
		Amount:          amount,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := s.requestsCol.InsertOne(ctx, cr); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyRequested
		}
		return nil, err
	}
	return cr, nil
}

func (s *MongoContactService) ListByEmail(ctx context.Context, email string) ([]*models.ContactRequest, error) {
	requests, err := s.findAll(ctx, bson.M{"self_email": email})
	if err != nil {
		return nil, err
	}

	for _, cr := range requests {
		if cr.Status != models.ContactRequestApproved {
			continue
		}
		b, err := s.directory.GetByID(ctx, cr.BiodataID)
		if err != nil {
			continue
		}
		cr.MobileNumber = b.MobileNumber
		cr.ContactEmail = b.ContactEmail
	}
	return requests, nil
}

func (s *MongoContactService) ListPending(ctx context.Context) ([]*models.ContactRequest, error) {
	return s.findAll(ctx, bson.M{"status": models.ContactRequestPending})
}

func (s *MongoContactService) ListUnnotified(ctx context.Context) ([]*models.ContactRequest, error) {
	return s.findAll(ctx, bson.M{"status": models.ContactRequestApproved, "notified": false})
}

func (s *MongoContactService) findAll(ctx context.Context, query bson.M) ([]*models.ContactRequest, error) {
	cur, err := s.requestsCol.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	requests := []*models.ContactRequest{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *MongoContactService) Approve(ctx context.Context, id string) error {
	res, err := s.requestsCol.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.ContactRequestApproved}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (s *MongoContactService) Delete(ctx context.Context, id, selfEmail string) error {
	var cr models.ContactRequest
	err := s.requestsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&cr)
	if err == mongo.ErrNoDocuments {
		return ErrContactNotFound
	}
	if err != nil {
		return err
	}
	if cr.SelfEmail != selfEmail {
		return ErrContactForbidden
	}

	_, err = s.requestsCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// TotalRevenue sums the amounts paid across all contact requests.
func (s *MongoContactService) TotalRevenue(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cur, err := s.requestsCol.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (s *MongoContactService) MarkNotified(ctx context.Context, id string) error {
	res, err := s.requestsCol.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"notified": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContactNotFound
	}
	return nil
}
