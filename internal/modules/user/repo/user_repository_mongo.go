package repo

import (
	"context"
	"fmt"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	UserName  string               `bson:"userName"`
	FullName  string               `bson:"fullName"`
	Email     string               `bson:"email"`
	Password  string               `bson:"password"`
	Avatar    string               `bson:"avatar,omitempty"`
	Role      string               `bson:"role"`
	Posts     []primitive.ObjectID `bson:"posts"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func toUserDocument(u *model.User) (*userDocument, error) {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", u.ID, err)
	}
	posts := make([]primitive.ObjectID, 0, len(u.Posts))
	for _, p := range u.Posts {
		pid, err := primitive.ObjectIDFromHex(p)
		if err != nil {
			return nil, fmt.Errorf("invalid post id %q: %w", p, err)
		}
		posts = append(posts, pid)
	}
	return &userDocument{
		ID:        oid,
		UserName:  u.UserName,
		FullName:  u.FullName,
		Email:     u.Email,
		Password:  u.Password,
		Avatar:    u.Avatar,
		Role:      u.Role,
		Posts:     posts,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func (d *userDocument) toModel() *model.User {
	posts := make([]string, 0, len(d.Posts))
	for _, p := range d.Posts {
		posts = append(posts, p.Hex())
	}
	return &model.User{
		ID:        d.ID.Hex(),
		UserName:  d.UserName,
		FullName:  d.FullName,
		Email:     d.Email,
		Password:  d.Password,
		Avatar:    d.Avatar,
		Role:      d.Role,
		Posts:     posts,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoUserRepository struct {
	coll *mongo.Collection
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, db.TranslateError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByUserNameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"userName": identifier},
		bson.M{"email": identifier},
	}})
}

func (r *MongoUserRepository) FieldExists(ctx context.Context, field UserField, value string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{string(field): value})
	return count > 0, err
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = model.NewID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	doc, err := toUserDocument(user)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return db.TranslateError(err)
}
