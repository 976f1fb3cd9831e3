package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type refreshTokenDocument struct {
	ID        uuid.UUID `bson:"_id"`
	UserID    uuid.UUID `bson:"user_id"`
	TokenHash string    `bson:"token_hash"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoked   bool      `bson:"revoked"`
	CreatedAt time.Time `bson:"created_at"`
}

type AuthRepository struct {
	tokens *mongo.Collection
	now    func() time.Time
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{
		tokens: db.Collection(refreshTokensCollection),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *AuthRepository) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	doc := refreshTokenDocument{
		ID:        uuid.New(),
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
		Revoked:   token.Revoked,
		CreatedAt: r.now(),
	}
	if _, err := r.tokens.InsertOne(ctx, doc); err != nil {
		return storageErr("store refresh token", err)
	}
	token.ID = doc.ID
	token.CreatedAt = doc.CreatedAt
	return nil
}

func (r *AuthRepository) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var doc refreshTokenDocument
	err := r.tokens.FindOne(ctx, bson.D{{Key: "token_hash", Value: tokenHash}}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, storageErr("get refresh token", err)
	}
	return &domain.RefreshToken{
		ID:        doc.ID,
		UserID:    doc.UserID,
		TokenHash: doc.TokenHash,
		ExpiresAt: doc.ExpiresAt,
		Revoked:   doc.Revoked,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *AuthRepository) RevokeRefreshToken(ctx context.Context, id string) error {
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid refresh token id: %v", domain.ErrInvalidInput, err)
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "revoked", Value: true}}}}
	if _, err := r.tokens.UpdateByID(ctx, tokenID, update); err != nil {
		return storageErr("revoke refresh token", err)
	}
	return nil
}
