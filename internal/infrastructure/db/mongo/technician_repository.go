package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

const collectionTechnicians = "technicians"

type TechnicianRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTechnicianRepository(db *mongo.Database) *TechnicianRepository {
	return &TechnicianRepository{db: db, col: db.Collection(collectionTechnicians)}
}

func (r *TechnicianRepository) CreateTechnician(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, "technicians")
	if err != nil {
		return nil, err
	}

	c := *t
	c.ID = id
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *TechnicianRepository) GetTechnician(ctx context.Context, id int64) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Technician
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TechnicianRepository) GetTechnicianByUser(ctx context.Context, userID int64) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Technician
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TechnicianRepository) ListTechnicians(ctx context.Context, companyID int64) ([]*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if companyID != 0 {
		filter["company_id"] = companyID
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	technicians := make([]*domain.Technician, 0)
	if err := cursor.All(ctx, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

func (r *TechnicianRepository) UpdateTechnician(ctx context.Context, t *domain.Technician) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTechnicianNotFound
	}
	return nil
}

func (r *TechnicianRepository) DeleteTechnician(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTechnicianNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes for technicians.
func (r *TechnicianRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
