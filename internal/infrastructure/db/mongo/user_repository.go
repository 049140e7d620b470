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

const collectionUsers = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	RollNo       string             `bson:"roll_no,omitempty"`
	CollegeName  string             `bson:"college_name,omitempty"`
	Branch       string             `bson:"branch,omitempty"`
	Course       string             `bson:"course,omitempty"`
	EnrollYear   *int               `bson:"enroll_year,omitempty"`
	Interests    []string           `bson:"interests"`
	Address      string             `bson:"address,omitempty"`
	ProfilePic   string             `bson:"profile_pic"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return mongoUser{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		RollNo:       u.RollNo,
		CollegeName:  u.CollegeName,
		Branch:       u.Branch,
		Course:       u.Course,
		EnrollYear:   u.EnrollYear,
		Interests:    interests,
		Address:      u.Address,
		ProfilePic:   u.ProfilePic,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (mu *mongoUser) toDomain() *domain.User {
	interests := mu.Interests
	if interests == nil {
		interests = []string{}
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		RollNo:       mu.RollNo,
		CollegeName:  mu.CollegeName,
		Branch:       mu.Branch,
		Course:       mu.Course,
		EnrollYear:   mu.EnrollYear,
		Interests:    interests,
		Address:      mu.Address,
		ProfilePic:   mu.ProfilePic,
		CreatedAt:    mu.CreatedAt.UTC(),
		UpdatedAt:    mu.UpdatedAt.UTC(),
	}
}

// Create inserts a new user. Duplicate email or roll number maps to ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// FindByIDs loads the users among ids that exist. Only the public fields are fetched.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"password_hash": 0})
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *UserRepository) UpdateInterests(ctx context.Context, id string, interests []string) (*domain.User, error) {
	if interests == nil {
		interests = []string{}
	}
	return r.update(ctx, id, bson.M{"interests": interests}, nil)
}

// UpdateProfile sets only the allow-listed fields present in update.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	set, unset := profileChanges(update)
	return r.update(ctx, id, set, unset)
}

// profileChanges splits update into $set and $unset documents. An empty roll
// number is removed rather than stored, since the sparse unique index only
// skips documents without the field.
func profileChanges(update domain.ProfileUpdate) (set, unset bson.M) {
	set, unset = bson.M{}, bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.RollNo != nil {
		if *update.RollNo == "" {
			unset["roll_no"] = ""
		} else {
			set["roll_no"] = *update.RollNo
		}
	}
	if update.CollegeName != nil {
		set["college_name"] = *update.CollegeName
	}
	if update.Branch != nil {
		set["branch"] = *update.Branch
	}
	if update.Course != nil {
		set["course"] = *update.Course
	}
	if update.EnrollYear != nil {
		set["enroll_year"] = *update.EnrollYear
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.ProfilePic != nil {
		set["profile_pic"] = *update.ProfilePic
	}
	return set, unset
}

func (r *UserRepository) update(ctx context.Context, id string, set, unset bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = time.Now().UTC()
	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, doc, opts).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique email and sparse unique roll number indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "roll_no", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
