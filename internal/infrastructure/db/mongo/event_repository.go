package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusevents/event-platform/internal/core/domain"
)

const collectionEvents = "events"

// hasSeatLeft matches events whose registered count is still below capacity.
var hasSeatLeft = bson.M{"$expr": bson.M{"$lt": bson.A{"$registered_count", "$capacity"}}}

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Category        string             `bson:"category"`
	Date            time.Time          `bson:"date"`
	Venue           string             `bson:"venue"`
	Capacity        int                `bson:"capacity"`
	RegisteredCount int                `bson:"registered_count"`
	OrganizerID     primitive.ObjectID `bson:"organizer_id"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (me *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:              me.ID.Hex(),
		Title:           me.Title,
		Description:     me.Description,
		Category:        me.Category,
		Date:            me.Date.UTC(),
		Venue:           me.Venue,
		Capacity:        me.Capacity,
		RegisteredCount: me.RegisteredCount,
		OrganizerID:     me.OrganizerID.Hex(),
		CreatedAt:       me.CreatedAt.UTC(),
		UpdatedAt:       me.UpdatedAt.UTC(),
	}
}

// Create inserts a new event document.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	organizerID, err := primitive.ObjectIDFromHex(e.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("insert event: invalid organizer id %q", e.OrganizerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEvent{
		ID:              primitive.NewObjectID(),
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		Date:            e.Date.UTC(),
		Venue:           e.Venue,
		Capacity:        e.Capacity,
		RegisteredCount: e.RegisteredCount,
		OrganizerID:     organizerID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves an event. A malformed id is reported as not found.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Event{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

// List returns every event in insertion order.
func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *EventRepository) ListAvailable(ctx context.Context) ([]*domain.Event, error) {
	return r.find(ctx, hasSeatLeft, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(organizerID)
	if err != nil {
		return []*domain.Event{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"organizer_id": oid}, opts)
}

// ListPopular returns the most registered events outside excludeIDs,
// optionally restricted to categories.
func (r *EventRepository) ListPopular(ctx context.Context, categories, excludeIDs []string, limit int) ([]*domain.Event, error) {
	filter := bson.M{}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}
	if excluded := objectIDs(excludeIDs); len(excluded) > 0 {
		filter["_id"] = bson.M{"$nin": excluded}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "registered_count", Value: -1},
		{Key: "_id", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// IncrementRegistered takes one seat in a single conditional update, so the
// capacity check and the increment cannot interleave with another writer.
func (r *EventRepository) IncrementRegistered(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	for k, v := range hasSeatLeft {
		filter[k] = v
	}
	update := bson.M{
		"$inc": bson.M{"registered_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("increment registered: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *EventRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	var docs []mongoEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	out := make([]*domain.Event, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the organizer listing and popularity indexes.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "registered_count", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
