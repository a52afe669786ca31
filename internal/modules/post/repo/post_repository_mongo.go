package repo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Title          string             `bson:"title"`
	AuthorName     string             `bson:"authorName"`
	ImageLink      string             `bson:"imageLink"`
	Description    string             `bson:"description"`
	Categories     []string           `bson:"categories"`
	IsFeaturedPost bool               `bson:"isFeaturedPost"`
	AuthorID       primitive.ObjectID `bson:"authorId"`
	ViewCount      int64              `bson:"viewCount"`
	TimeOfPost     time.Time          `bson:"timeOfPost"`
}

func toPostDocument(p *model.Post) (*postDocument, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", p.ID, err)
	}
	authorID, err := primitive.ObjectIDFromHex(p.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q: %w", p.AuthorID, err)
	}
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return &postDocument{
		ID:             oid,
		Title:          p.Title,
		AuthorName:     p.AuthorName,
		ImageLink:      p.ImageLink,
		Description:    p.Description,
		Categories:     categories,
		IsFeaturedPost: p.IsFeaturedPost,
		AuthorID:       authorID,
		ViewCount:      p.ViewCount,
		TimeOfPost:     p.TimeOfPost,
	}, nil
}

func (d *postDocument) toModel() model.Post {
	return model.Post{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		AuthorName:     d.AuthorName,
		ImageLink:      d.ImageLink,
		Description:    d.Description,
		Categories:     d.Categories,
		IsFeaturedPost: d.IsFeaturedPost,
		AuthorID:       d.AuthorID.Hex(),
		ViewCount:      d.ViewCount,
		TimeOfPost:     d.TimeOfPost,
	}
}

type MongoPostRepository struct {
	posts *mongo.Collection
	users *mongo.Collection
}

func (r *MongoPostRepository) CreateAndAttachToAuthor(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = model.NewID()
	}
	if post.TimeOfPost.IsZero() {
		post.TimeOfPost = time.Now()
	}
	doc, err := toPostDocument(post)
	if err != nil {
		return err
	}

	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		return db.TranslateError(err)
	}

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": doc.AuthorID},
		bson.M{"$push": bson.M{"posts": doc.ID}},
	)
	if err == nil && res.MatchedCount == 0 {
		err = db.ErrNotFound
	}
	if err != nil {
		// 关联作者失败时回滚已插入的文章，避免出现无主文章
		if _, delErr := r.posts.DeleteOne(context.WithoutCancel(ctx), bson.M{"_id": doc.ID}); delErr != nil {
			log.Printf("❌ 回滚文章 %s 失败: %v", post.ID, delErr)
		}
		return fmt.Errorf("attach post to author: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}
	var doc postDocument
	if err := r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, db.TranslateError(err)
	}
	post := doc.toModel()
	return &post, nil
}

func (r *MongoPostRepository) IncrementViewCount(ctx context.Context, id string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}
	var doc postDocument
	err = r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	post := doc.toModel()
	return &post, nil
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Post, error) {
	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	posts := make([]model.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}
	return posts, nil
}

func (r *MongoPostRepository) List(ctx context.Context, q ListQuery) ([]model.Post, int64, error) {
	filter := bson.M{}
	if q.FeaturedOnly {
		filter["isFeaturedPost"] = true
	}

	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSkip(int64(q.Skip)).SetLimit(int64(q.Limit))
	if q.NewestFirst {
		opts.SetSort(bson.D{{Key: "timeOfPost", Value: -1}, {Key: "_id", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}

	posts, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *MongoPostRepository) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	return r.find(ctx,
		bson.M{"categories": category},
		options.Find().SetSort(bson.D{{Key: "timeOfPost", Value: -1}}),
	)
}

func (r *MongoPostRepository) ListRelated(ctx context.Context, categories []string, excludeID string, limit int) ([]model.Post, error) {
	filter := bson.M{"categories": bson.M{"$in": categories}}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude id %q: %w", excludeID, err)
		}
		filter["_id"] = bson.M{"$ne": oid}
	}
	return r.find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "timeOfPost", Value: -1}}).SetLimit(int64(limit)),
	)
}

func (r *MongoPostRepository) Update(ctx context.Context, id string, update PostUpdate) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.AuthorName != nil {
		set["authorName"] = *update.AuthorName
	}
	if update.ImageLink != nil {
		set["imageLink"] = *update.ImageLink
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Categories != nil {
		set["categories"] = update.Categories
	}
	if update.IsFeaturedPost != nil {
		set["isFeaturedPost"] = *update.IsFeaturedPost
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var doc postDocument
	err = r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	post := doc.toModel()
	return &post, nil
}

func (r *MongoPostRepository) DeleteAndDetachFromAuthor(ctx context.Context, id string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}

	var doc postDocument
	if err := r.posts.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, db.TranslateError(err)
	}

	_, err = r.users.UpdateOne(context.WithoutCancel(ctx),
		bson.M{"_id": doc.AuthorID},
		bson.M{"$pull": bson.M{"posts": doc.ID}},
	)
	post := doc.toModel()
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return &post, fmt.Errorf("%w: %w", ErrAuthorDetach, err)
	}
	return &post, nil
}
