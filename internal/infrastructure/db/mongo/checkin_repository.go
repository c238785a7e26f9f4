package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

const collectionCheckIns = "check_ins"

type CheckInRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewCheckInRepository(db *mongo.Database) *CheckInRepository {
	return &CheckInRepository{db: db, col: db.Collection(collectionCheckIns)}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CreateCheckIn counts this month's check-ins and inserts when under the cap.
// The count and insert are not one atomic step here; a race can over-admit by
// at most the number of in-flight requests, which the monthly cap tolerates.
func (r *CheckInRepository) CreateCheckIn(ctx context.Context, ci *domain.CheckIn, usageLimit int) (*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if usageLimit > 0 {
		count, err := r.CountCheckInsSince(ctx, ci.CompanyID, startOfMonth(time.Now().UTC()))
		if err != nil {
			return nil, err
		}
		if count >= usageLimit {
			return nil, domain.ErrUsageLimitReached
		}
	}

	id, err := nextID(ctx, r.db, "check_ins")
	if err != nil {
		return nil, err
	}

	c := *ci
	c.ID = id
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CheckInRepository) GetCheckIn(ctx context.Context, id int64) (*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ci domain.CheckIn
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&ci)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &ci, nil
}

func (r *CheckInRepository) FindCheckInBySyncKey(ctx context.Context, companyID int64, syncKey string) (*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ci domain.CheckIn
	err := r.col.FindOne(ctx, bson.M{"company_id": companyID, "sync_key": syncKey}).Decode(&ci)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &ci, nil
}

func (r *CheckInRepository) ListCheckIns(ctx context.Context, filter ports.CheckInFilter) ([]*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CompanyID != 0 {
		query["company_id"] = filter.CompanyID
	}
	if filter.TechnicianID != 0 {
		query["technician_id"] = filter.TechnicianID
	}

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	checkIns := make([]*domain.CheckIn, 0)
	if err := cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *CheckInRepository) CountCheckInsSince(ctx context.Context, companyID int64, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"company_id": companyID,
		"created_at": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// EnsureIndexes creates the lookup indexes for check-ins.
func (r *CheckInRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "technician_id", Value: 1}}},
		{
			Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "sync_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"sync_key": bson.M{"$gt": ""}},
			),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
