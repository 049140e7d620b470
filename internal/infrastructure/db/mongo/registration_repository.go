package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusevents/event-platform/internal/core/domain"
)

const collectionRegistrations = "registrations"

type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(collectionRegistrations)}
}

type mongoRegistration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID primitive.ObjectID `bson:"student_id"`
	EventID   primitive.ObjectID `bson:"event_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mr *mongoRegistration) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:        mr.ID.Hex(),
		StudentID: mr.StudentID.Hex(),
		EventID:   mr.EventID.Hex(),
		CreatedAt: mr.CreatedAt.UTC(),
	}
}

func parsePair(studentID, eventID string) (sid, eid primitive.ObjectID, err error) {
	if sid, err = primitive.ObjectIDFromHex(studentID); err != nil {
		return sid, eid, fmt.Errorf("invalid student id %q", studentID)
	}
	if eid, err = primitive.ObjectIDFromHex(eventID); err != nil {
		return sid, eid, fmt.Errorf("invalid event id %q", eventID)
	}
	return sid, eid, nil
}

// Create claims the (student, event) pair. The unique index turns a second
// claim into ErrAlreadyRegistered.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	sid, eid, err := parsePair(reg.StudentID, reg.EventID)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRegistration{
		ID:        primitive.NewObjectID(),
		StudentID: sid,
		EventID:   eid,
		CreatedAt: reg.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	reg.ID = doc.ID.Hex()
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, studentID, eventID string) error {
	sid, eid, err := parsePair(studentID, eventID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"student_id": sid, "event_id": eid}); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Registration, error) {
	sid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return []*domain.Registration{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"student_id": sid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}

	var docs []mongoRegistration
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	out := make([]*domain.Registration, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the unique (student_id, event_id) index.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
