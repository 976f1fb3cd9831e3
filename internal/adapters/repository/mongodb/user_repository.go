package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDocument struct {
	ID           uuid.UUID   `bson:"_id"`
	FirstName    string      `bson:"first_name"`
	LastName     string      `bson:"last_name"`
	Email        string      `bson:"email"`
	PasswordHash string      `bson:"password_hash"`
	IsPatient    bool        `bson:"is_patient"`
	Caregivers   []uuid.UUID `bson:"caregivers"`
	CreatedAt    time.Time   `bson:"created_at"`
}

func (d *userDocument) toDomain() *domain.User {
	caregivers := d.Caregivers
	if caregivers == nil {
		caregivers = []uuid.UUID{}
	}
	return &domain.User{
		ID:           d.ID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsPatient:    d.IsPatient,
		Caregivers:   caregivers,
		CreatedAt:    d.CreatedAt,
	}
}

type UserRepository struct {
	users *mongo.Collection
	now   func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(usersCollection),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) getOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, storageErr("get user", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		ID:           uuid.New(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsPatient:    user.IsPatient,
		Caregivers:   []uuid.UUID{},
		CreatedAt:    r.now(),
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailInUse
		}
		return storageErr("create user", err)
	}
	user.ID = doc.ID
	user.CreatedAt = doc.CreatedAt
	user.Caregivers = doc.Caregivers
	return nil
}
