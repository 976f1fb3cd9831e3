package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// The token string is the document id, so uniqueness is enforced by the primary index.
type caregiverTokenDocument struct {
	Token     string    `bson:"_id"`
	UserID    uuid.UUID `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresBy time.Time `bson:"expires_by"`
}

type CaregiverTokenRepository struct {
	tokens *mongo.Collection
}

func NewCaregiverTokenRepository(db *mongo.Database) *CaregiverTokenRepository {
	return &CaregiverTokenRepository{tokens: db.Collection(tokensCollection)}
}

func (r *CaregiverTokenRepository) Insert(ctx context.Context, token *domain.CaregiverToken) error {
	doc := caregiverTokenDocument{
		Token:     token.Token,
		UserID:    token.UserID,
		CreatedAt: token.CreatedAt,
		ExpiresBy: token.ExpiresBy,
	}
	if _, err := r.tokens.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTokenCollision
		}
		return storageErr("insert caregiver token", err)
	}
	return nil
}

func (r *CaregiverTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.D{{Key: "expires_by", Value: bson.D{{Key: "$lt", Value: now}}}}
	res, err := r.tokens.DeleteMany(ctx, filter)
	if err != nil {
		return 0, storageErr("delete expired caregiver tokens", err)
	}
	return res.DeletedCount, nil
}

func (r *CaregiverTokenRepository) Take(ctx context.Context, token string, now time.Time) (*domain.CaregiverToken, error) {
	filter := bson.D{
		{Key: "_id", Value: token},
		{Key: "expires_by", Value: bson.D{{Key: "$gte", Value: now}}},
	}
	var doc caregiverTokenDocument
	if err := r.tokens.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, storageErr("take caregiver token", err)
	}
	return &domain.CaregiverToken{
		Token:     doc.Token,
		UserID:    doc.UserID,
		CreatedAt: doc.CreatedAt,
		ExpiresBy: doc.ExpiresBy,
	}, nil
}
