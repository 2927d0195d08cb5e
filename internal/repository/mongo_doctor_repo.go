package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docfinder/internal/models"
)

type mongoDoctorRepo struct {
	col *mongo.Collection
}

// NewMongoDoctorRepo wires the doctors collection and ensures the indexes the
// listing endpoint depends on, including the text index behind free-text
// search.
func NewMongoDoctorRepo(db *mongo.Database, collection string) DoctorRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "specializations", Value: 1}}},
		{Keys: bson.D{{Key: "gender", Value: 1}}},
		{Keys: bson.D{{Key: "experience", Value: 1}}},
		{Keys: bson.D{{Key: "clinics.consultation_fee", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "primary_specialization", Value: "text"}}},
	})
	return &mongoDoctorRepo{col: col}
}

// buildDoctorFilter translates the criteria into a single conjunctive filter.
func buildDoctorFilter(q DoctorQuery) bson.M {
	filter := bson.M{}
	if q.Specialization != "" {
		filter["specializations"] = q.Specialization
	}
	if q.Gender != "" {
		filter["gender"] = q.Gender
	}
	if q.MinExperience != nil {
		filter["experience"] = bson.M{"$gte": *q.MinExperience}
	}
	if q.MaxFee != nil {
		filter["clinics.consultation_fee"] = bson.M{"$lte": *q.MaxFee}
	}
	if q.IsOnline != nil {
		filter["is_consult_online"] = *q.IsOnline
	}
	if q.IsHomeVisit != nil {
		filter["is_home_visit"] = *q.IsHomeVisit
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	return filter
}

// buildDoctorSort maps the sort option to an ordering. Ties fall back to the
// store's natural order. Unknown options get the rating default.
func buildDoctorSort(sort string) bson.D {
	switch sort {
	case "experience-high":
		return bson.D{{Key: "experience", Value: -1}}
	case "experience-low":
		return bson.D{{Key: "experience", Value: 1}}
	case "fee-high":
		return bson.D{{Key: "clinics.consultation_fee", Value: -1}}
	case "fee-low":
		return bson.D{{Key: "clinics.consultation_fee", Value: 1}}
	case "rating":
		return bson.D{{Key: "rating", Value: -1}}
	default:
		return bson.D{{Key: "rating", Value: -1}}
	}
}

func (r *mongoDoctorRepo) Insert(ctx context.Context, d *models.Doctor) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (r *mongoDoctorRepo) InsertMany(ctx context.Context, docs []models.Doctor) error {
	now := time.Now().UTC()
	payload := make([]interface{}, len(docs))
	for i := range docs {
		docs[i].CreatedAt = now
		docs[i].UpdatedAt = now
		payload[i] = docs[i]
	}

	res, err := r.col.InsertMany(ctx, payload)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(docs) {
			docs[i].ID = oid
		}
	}
	return nil
}

func (r *mongoDoctorRepo) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	var d models.Doctor
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *mongoDoctorRepo) List(ctx context.Context, q DoctorQuery) ([]models.Doctor, int64, error) {
	filter := buildDoctorFilter(q)

	findOpts := options.Find().
		SetSort(buildDoctorSort(q.Sort)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}

func (r *mongoDoctorRepo) Update(ctx context.Context, id string, params UpdateDoctorParams) (*models.Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	set := bson.M{}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Specializations != nil {
		set["specializations"] = *params.Specializations
	}
	if params.PrimarySpecialization != nil {
		set["primary_specialization"] = *params.PrimarySpecialization
	}
	if params.Qualifications != nil {
		set["qualifications"] = *params.Qualifications
	}
	if params.Experience != nil {
		set["experience"] = *params.Experience
	}
	if params.Gender != nil {
		set["gender"] = *params.Gender
	}
	if params.Languages != nil {
		set["languages"] = *params.Languages
	}
	if params.Clinics != nil {
		set["clinics"] = *params.Clinics
	}
	if params.Availability != nil {
		set["availability"] = *params.Availability
	}
	if params.About != nil {
		set["about"] = *params.About
	}
	if params.ProfileImage != nil {
		set["profile_image"] = *params.ProfileImage
	}
	if params.Rating != nil {
		set["rating"] = *params.Rating
	}
	if params.ReviewsCount != nil {
		set["reviews_count"] = *params.ReviewsCount
	}
	if params.IsConsultOnline != nil {
		set["is_consult_online"] = *params.IsConsultOnline
	}
	if params.IsHomeVisit != nil {
		set["is_home_visit"] = *params.IsHomeVisit
	}
	set["updated_at"] = time.Now().UTC()

	var d models.Doctor
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *mongoDoctorRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDoctorNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
