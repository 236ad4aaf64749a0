package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(db, "users"),
	}
}

// roleFilter returns the optional role clause. An empty role matches
// every account.
func roleFilter(role models.Role) bson.M {
	if role == "" {
		return bson.M{}
	}
	return bson.M{"role": role}
}

// FindByUsername looks a user up by the short portal id, optionally
// narrowed to a role so a telecaller id cannot log into the vendor form.
func (r *UserRepository) FindByUsername(ctx context.Context, username string, role models.Role) (*models.User, error) {
	filter := roleFilter(role)
	filter["username"] = username

	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByRole returns users of a role, or every account when the role is
// empty. Passwords are stripped.
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, roleFilter(role))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// StaffRefByUsername resolves an attribution id to a StaffRef snapshot.
// Unknown or empty usernames yield the "None" sentinel.
func (r *UserRepository) StaffRefByUsername(ctx context.Context, username string) models.StaffRef {
	if username == "" || username == models.AttributionNone {
		return models.StaffRef{ID: models.AttributionNone}
	}

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return models.StaffRef{ID: models.AttributionNone}
	}

	return models.StaffRef{
		ID:    user.Username,
		Name:  user.Name,
		Phone: user.Phone,
		Email: user.Email,
	}
}

// Insert stores a new user
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, user)
	return err
}
