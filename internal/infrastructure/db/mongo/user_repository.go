package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
)

const usersCollection = "users"

// UserRepository persists user accounts. Role membership is stored as an
// array of role ids on the user document; permissions live embedded in the
// role documents (see RoleRepository).
type UserRepository struct {
	coll  *mongo.Collection
	roles *RoleRepository
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll:  db.Collection(usersCollection),
		roles: NewRoleRepository(db),
	}
}

type userDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Email        string               `bson:"email"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	Avatar       string               `bson:"avatar,omitempty"`
	Phone        string               `bson:"phone,omitempty"`
	PasswordHash string               `bson:"password_hash"`
	Status       string               `bson:"status"`
	Department   string               `bson:"department,omitempty"`
	Position     string               `bson:"position,omitempty"`
	RoleIDs      []primitive.ObjectID `bson:"role_ids,omitempty"`
	LastLoginAt  *time.Time           `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := user.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	doc := userDoc{
		Email:        user.Email,
		Username:     user.Username,
		Name:         user.Name,
		Avatar:       user.Avatar,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Status:       string(user.Status),
		Department:   user.Department,
		Position:     user.Position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, role := range user.Roles {
		oid, err := primitive.ObjectIDFromHex(role.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid role id %q: %w", role.ID, err)
		}
		doc.RoleIDs = append(doc.RoleIDs, oid)
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return r.FindByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user := doc.toDomain()
	if len(doc.RoleIDs) > 0 {
		roles, err := r.roles.findByIDs(ctx, doc.RoleIDs)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"email": regex},
			bson.M{"username": regex},
			bson.M{"name": regex},
		}
	}
	if filter.Role != "" {
		role, err := r.roles.FindByName(ctx, filter.Role)
		if err != nil {
			// Unknown role matches nothing.
			return nil, 0, nil
		}
		oid, _ := primitive.ObjectIDFromHex(role.ID)
		query["role_ids"] = oid
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update ports.UpdateUserInput) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Department != nil {
		set["department"] = *update.Department
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"last_login_at": at}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// AssignRole appends a role membership. Used by the seed bootstrap.
func (r *UserRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	rid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return fmt.Errorf("invalid role id %q", roleID)
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$addToSet": bson.M{"role_ids": rid}})
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Username:     d.Username,
		Name:         d.Name,
		Avatar:       d.Avatar,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Status:       domain.UserStatus(d.Status),
		Department:   d.Department,
		Position:     d.Position,
		LastLoginAt:  d.LastLoginAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
