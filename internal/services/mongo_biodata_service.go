package services

import (
	"context"
	"crypto/tls"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matrimony/backend/internal/models"
)

const biodataCounterID = "biodata_id"

type MongoBiodataService struct {
	client      *mongo.Client
	db          *mongo.Database
	biodatasCol *mongo.Collection
	usersCol    *mongo.Collection
	countersCol *mongo.Collection
}

// ConnectMongo dials the cluster once; the handle is shared by every Mongo
// service (constructed at startup, injected everywhere).
func ConnectMongo(ctx context.Context, mongoURI string) (*mongo.Client, error) {
	// Atlas occasionally fails TLS negotiation unless pinned to TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func NewMongoBiodataService(ctx context.Context, client *mongo.Client, dbName string) (*MongoBiodataService, error) {
	db := client.Database(dbName)

	s := &MongoBiodataService{
		client:      client,
		db:          db,
		biodatasCol: db.Collection("biodatas"),
		usersCol:    db.Collection("users"),
		countersCol: db.Collection("counters"),
	}

	// Best-effort indexes.
	_, _ = s.biodatasCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "contact_email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "biodata_id", Value: 1}}},
		{Keys: bson.D{{Key: "biodata_type", Value: 1}}},
	})

	if err := s.seedCounter(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// seedCounter initializes the id counter from the current maximum biodata id
// when the counter document does not exist yet. The previous scheme read the
// max on every submission without synchronization and could hand out
// duplicate ids under concurrent submissions; the counter document closes
// that gap.
func (s *MongoBiodataService) seedCounter(ctx context.Context) error {
	err := s.countersCol.FindOne(ctx, bson.M{"_id": biodataCounterID}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	var last struct {
		BiodataID int `bson:"biodata_id"`
	}
	maxID := 0
	findErr := s.biodatasCol.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "biodata_id", Value: -1}})).Decode(&last)
	if findErr == nil {
		maxID = last.BiodataID
	} else if findErr != mongo.ErrNoDocuments {
		return findErr
	}

	_, err = s.countersCol.UpdateOne(ctx,
		bson.M{"_id": biodataCounterID},
		bson.M{"$setOnInsert": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true),
	)
	return err
}

// nextID atomically increments and returns the biodata id sequence.
func (s *MongoBiodataService) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := s.countersCol.FindOneAndUpdate(ctx,
		bson.M{"_id": biodataCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func biodataFilterQuery(f *models.BiodataFilter) bson.M {
	q := bson.M{}
	if f == nil {
		return q
	}
	if f.HasAgeRange() {
		q["age"] = bson.M{"$gte": *f.AgeMin, "$lte": *f.AgeMax}
	}
	if f.BiodataType != "" {
		q["biodata_type"] = f.BiodataType
	}
	if f.Division != "" {
		q["permanent_division"] = f.Division
	}
	return q
}

func (s *MongoBiodataService) List(ctx context.Context, filter *models.BiodataFilter, page, pageSize int) (*models.DirectoryPage, error) {
	page, pageSize = NormalizePagination(page, pageSize)
	query := biodataFilterQuery(filter)
	offset := int64((page - 1) * pageSize)

	totalCount, err := s.biodatasCol.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	cur, err := s.biodatasCol.Find(ctx, query,
		options.Find().SetSkip(offset).SetLimit(int64(pageSize)))
	if err != nil {
		return nil, err
	}
	items := []*models.Biodata{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	premiumItems, err := s.premiumSlice(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}

	return &models.DirectoryPage{
		Items:        items,
		PremiumItems: premiumItems,
		TotalCount:   totalCount,
		TotalPages:   TotalPages(totalCount, pageSize),
		CurrentPage:  page,
	}, nil
}

// premiumSlice runs the featured-members pipeline: premium accounts
// left-joined to their biodata. The directory filter never applies here;
// accounts without a biodata survive the unwind.
func (s *MongoBiodataService) premiumSlice(ctx context.Context, offset int64, pageSize int) ([]*models.PremiumBiodata, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "role", Value: models.RolePremium}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "biodatas"},
			{Key: "localField", Value: "email"},
			{Key: "foreignField", Value: "contact_email"},
			{Key: "as", Value: "biodata"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$biodata"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "role", Value: 1},
			{Key: "email", Value: 1},
			{Key: "biodata_id", Value: "$biodata.biodata_id"},
			{Key: "biodata_type", Value: "$biodata.biodata_type"},
			{Key: "profile_image", Value: "$biodata.profile_image"},
			{Key: "permanent_division", Value: "$biodata.permanent_division"},
			{Key: "occupation", Value: "$biodata.occupation"},
			{Key: "age", Value: "$biodata.age"},
		}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: int64(pageSize)}},
	}

	cur, err := s.usersCol.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	premium := []*models.PremiumBiodata{}
	if err := cur.All(ctx, &premium); err != nil {
		return nil, err
	}
	return premium, nil
}

func (s *MongoBiodataService) GetByID(ctx context.Context, id int) (*models.Biodata, error) {
	var b models.Biodata
	err := s.biodatasCol.FindOne(ctx, bson.M{"biodata_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBiodataNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoBiodataService) GetByEmail(ctx context.Context, email string) (*models.Biodata, error) {
	var b models.Biodata
	err := s.biodatasCol.FindOne(ctx, bson.M{"contact_email": email}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBiodataNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoBiodataService) GetSimilar(ctx context.Context, biodataType, excludeEmail string) ([]*models.Biodata, error) {
	cur, err := s.biodatasCol.Find(ctx, bson.M{
		"biodata_type":  biodataType,
		"contact_email": bson.M{"$ne": excludeEmail},
	}, options.Find().SetLimit(similarLimit))
	if err != nil {
		return nil, err
	}
	similar := []*models.Biodata{}
	if err := cur.All(ctx, &similar); err != nil {
		return nil, err
	}
	return similar, nil
}

func (s *MongoBiodataService) Submit(ctx context.Context, req *models.SubmitBiodataRequest) (*models.SubmitResult, error) {
	if req.ContactEmail == "" {
		return nil, ErrBiodataBadInput
	}

	err := s.biodatasCol.FindOne(ctx, bson.M{"contact_email": req.ContactEmail}).Err()
	if err == nil {
		return &models.SubmitResult{Inserted: false}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	b := biodataFromRequest(req)
	b.BiodataID = id
	b.CreatedAt = time.Now().UTC()

	if _, err := s.biodatasCol.InsertOne(ctx, b); err != nil {
		return nil, err
	}
	return &models.SubmitResult{Inserted: true, BiodataID: id}, nil
}

func (s *MongoBiodataService) Update(ctx context.Context, email string, req *models.SubmitBiodataRequest) (*models.Biodata, error) {
	updated := biodataFromRequest(req)
	set := bson.M{
		"biodata_type":            updated.BiodataType,
		"name":                    updated.Name,
		"profile_image":           updated.ProfileImage,
		"date_of_birth":           updated.DateOfBirth,
		"age":                     updated.Age,
		"height":                  updated.Height,
		"weight":                  updated.Weight,
		"occupation":              updated.Occupation,
		"race":                    updated.Race,
		"fathers_name":            updated.FathersName,
		"mothers_name":            updated.MothersName,
		"permanent_division":      updated.PermanentDivision,
		"present_division":        updated.PresentDivision,
		"expected_partner_age":    updated.ExpectedPartnerAge,
		"expected_partner_height": updated.ExpectedPartnerHeight,
		"expected_partner_weight": updated.ExpectedPartnerWeight,
		"mobile_number":           updated.MobileNumber,
	}

	res, err := s.biodatasCol.UpdateOne(ctx, bson.M{"contact_email": email}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrBiodataNotFound
	}
	return s.GetByEmail(ctx, email)
}

func (s *MongoBiodataService) Counts(ctx context.Context) (total, male, female int64, err error) {
	if total, err = s.biodatasCol.CountDocuments(ctx, bson.M{}); err != nil {
		return 0, 0, 0, err
	}
	if male, err = s.biodatasCol.CountDocuments(ctx, bson.M{"biodata_type": models.BiodataTypeMale}); err != nil {
		return 0, 0, 0, err
	}
	if female, err = s.biodatasCol.CountDocuments(ctx, bson.M{"biodata_type": models.BiodataTypeFemale}); err != nil {
		return 0, 0, 0, err
	}
	return total, male, female, nil
}
