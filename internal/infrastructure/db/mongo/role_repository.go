package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/halolight/admin-backend/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository persists roles with their permissions embedded. Permission
// ids are stable ObjectIDs so the resolver can deduplicate a permission
// shared across roles.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type permissionDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Action      string             `bson:"action"`
	Resource    string             `bson:"resource"`
	Description string             `bson:"description,omitempty"`
}

type roleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Label       string             `bson:"label"`
	Description string             `bson:"description,omitempty"`
	Permissions []permissionDoc    `bson:"permissions,omitempty"`
}

// Insert creates a role. Permission entries without an id get one assigned.
func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := roleDoc{
		Name:        role.Name,
		Label:       role.Label,
		Description: role.Description,
	}
	for _, p := range role.Permissions {
		pd := permissionDoc{
			Action:      p.Action,
			Resource:    p.Resource,
			Description: p.Description,
		}
		if p.ID != "" {
			oid, err := primitive.ObjectIDFromHex(p.ID)
			if err != nil {
				return nil, fmt.Errorf("invalid permission id %q: %w", p.ID, err)
			}
			pd.ID = oid
		} else {
			pd.ID = primitive.NewObjectID()
		}
		doc.Permissions = append(doc.Permissions, pd)
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByName loads one role by its unique name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("role %q not found", name)
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) findByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Role, error) {
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

func (d *roleDoc) toDomain() *domain.Role {
	role := &domain.Role{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Label:       d.Label,
		Description: d.Description,
	}
	for _, p := range d.Permissions {
		role.Permissions = append(role.Permissions, domain.Permission{
			ID:          p.ID.Hex(),
			Action:      p.Action,
			Resource:    p.Resource,
			Description: p.Description,
		})
	}
	return role
}
