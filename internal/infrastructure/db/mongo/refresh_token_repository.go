package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/halolight/admin-backend/internal/core/domain"
)

const refreshTokensCollection = "refresh_tokens"

// RefreshTokenRepository is the durable ledger of issued refresh tokens.
//
// Rotation relies on the atomicity of a single-document delete on the
// unique token index: of two concurrent rotations exactly one delete
// matches, the other observes zero deleted rows and fails. No multi-document
// transaction is needed for that guarantee.
type RefreshTokenRepository struct {
	coll *mongo.Collection
}

func NewRefreshTokenRepository(db *mongo.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{coll: db.Collection(refreshTokensCollection)}
}

type refreshTokenDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *RefreshTokenRepository) Insert(ctx context.Context, rec *domain.RefreshTokenRecord) error {
	_, err := r.coll.InsertOne(ctx, refreshTokenDoc{
		UserID:    rec.UserID,
		Token:     rec.Token,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshTokenRecord, error) {
	var doc refreshTokenDoc
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &domain.RefreshTokenRecord{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Token:     doc.Token,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// Rotate deletes the old record and inserts the replacement. The delete is
// the race arbiter: zero deleted rows means the token was already rotated or
// revoked, and the whole call fails without inserting anything. Should the
// insert fail after a successful delete, both tokens end up dead — the
// ledger fails closed rather than leaving two live records.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldToken string, newRec *domain.RefreshTokenRecord) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"token": oldToken})
	if err != nil {
		return fmt.Errorf("delete rotated token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInvalidRefreshToken
	}
	return r.Insert(ctx, newRec)
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, userID, token string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID, "token": token})
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	return res.DeletedCount, nil
}
