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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type galleryDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	ImageURL     string             `bson:"imageUrl"`
	CloudinaryID string             `bson:"cloudinaryId"`
	PublicID     string             `bson:"publicId"`
	UploadedBy   primitive.ObjectID `bson:"uploadedBy"`
	Tags         []string           `bson:"tags"`
	Width        int                `bson:"width,omitempty"`
	Height       int                `bson:"height,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toGalleryDocument(img *model.GalleryImage) (*galleryDocument, error) {
	oid, err := primitive.ObjectIDFromHex(img.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid gallery id %q: %w", img.ID, err)
	}
	uploader, err := primitive.ObjectIDFromHex(img.UploadedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid uploader id %q: %w", img.UploadedBy, err)
	}
	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}
	return &galleryDocument{
		ID:           oid,
		Title:        img.Title,
		Description:  img.Description,
		ImageURL:     img.ImageURL,
		CloudinaryID: img.CloudinaryID,
		PublicID:     img.PublicID,
		UploadedBy:   uploader,
		Tags:         tags,
		Width:        img.Width,
		Height:       img.Height,
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}, nil
}

func (d *galleryDocument) toModel() model.GalleryImage {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.GalleryImage{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		CloudinaryID: d.CloudinaryID,
		PublicID:     d.PublicID,
		UploadedBy:   d.UploadedBy.Hex(),
		Tags:         tags,
		Width:        d.Width,
		Height:       d.Height,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type MongoGalleryRepository struct {
	images *mongo.Collection
}

func (r *MongoGalleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	if image.ID == "" {
		image.ID = model.NewID()
	}
	now := time.Now()
	if image.CreatedAt.IsZero() {
		image.CreatedAt = now
	}
	image.UpdatedAt = now

	doc, err := toGalleryDocument(image)
	if err != nil {
		return err
	}
	_, err = r.images.InsertOne(ctx, doc)
	return db.TranslateError(err)
}

func (r *MongoGalleryRepository) FindByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}
	var doc galleryDocument
	if err := r.images.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, db.TranslateError(err)
	}
	img := doc.toModel()
	return &img, nil
}

func (r *MongoGalleryRepository) List(ctx context.Context, tag string) ([]model.GalleryImage, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}
	cursor, err := r.images.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []galleryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	images := make([]model.GalleryImage, 0, len(docs))
	for i := range docs {
		images = append(images, docs[i].toModel())
	}
	return images, nil
}

func (r *MongoGalleryRepository) Update(ctx context.Context, id string, update GalleryUpdate) (*model.GalleryImage, error) {
	if update.isEmpty() {
		return r.FindByID(ctx, id)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}

	var doc galleryDocument
	err = r.images.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	img := doc.toModel()
	return &img, nil
}

func (r *MongoGalleryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return db.ErrNotFound
	}
	res, err := r.images.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return db.ErrNotFound
	}
	return nil
}
