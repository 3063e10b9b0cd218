package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/matrimony/backend/internal/models"
)

type MongoUserService struct {
	client   *mongo.Client
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, client *mongo.Client, dbName string) (*MongoUserService, error) {
	col := client.Database(dbName).Collection("users")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})

	return &MongoUserService{client: client, usersCol: col}, nil
}

func (s *MongoUserService) Create(ctx context.Context, req *models.RegisterRequest) (*models.CreateUserResult, error) {
	err := s.usersCol.FindOne(ctx, bson.M{"email": req.Email}).Err()
	if err == nil {
		return &models.CreateUserResult{Inserted: false}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	u := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleNormal,
		CreatedAt: time.Now().UTC(),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	res, err := s.usersCol.InsertOne(ctx, u)
	if err != nil {
		return nil, err
	}

	insertedID := ""
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		insertedID = oid.Hex()
	}
	return &models.CreateUserResult{Inserted: true, InsertedID: insertedID}, nil
}

func (s *MongoUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserService) GetRole(ctx context.Context, email string) (string, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *MongoUserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return u, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

func (s *MongoUserService) List(ctx context.Context, search string) ([]*models.User, error) {
	query := bson.M{}
	if search != "" {
		query["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cur, err := s.usersCol.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	users := []*models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserService) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	cur, err := s.usersCol.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	users := []*models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserService) CountByRole(ctx context.Context, role string) (int64, error) {
	return s.usersCol.CountDocuments(ctx, bson.M{"role": role})
}

func (s *MongoUserService) RequestPremium(ctx context.Context, email string) error {
	return s.SetRole(ctx, email, models.RolePremiumRequested)
}

func (s *MongoUserService) SetRole(ctx context.Context, email, role string) error {
	switch role {
	case models.RoleNormal, models.RolePremiumRequested, models.RolePremium, models.RoleAdmin:
	default:
		return ErrInvalidRole
	}

	res, err := s.usersCol.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
