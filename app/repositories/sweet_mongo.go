package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/sweetshop/app/models"
)

// MongoSweetRepository is the SweetRepository backed by the sweets collection.
type MongoSweetRepository struct {
	col *mongo.Collection
}

func NewMongoSweetRepository(db *mongo.Database) *MongoSweetRepository {
	return &MongoSweetRepository{col: db.Collection("sweets")}
}

func (r *MongoSweetRepository) Insert(ctx context.Context, sweet *models.Sweet) error {
	now := time.Now().UTC()
	sweet.CreatedAt = now
	sweet.UpdatedAt = now
	if sweet.ID.IsZero() {
		sweet.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, sweet); err != nil {
		return fmt.Errorf("sweets: insert: %w", err)
	}
	return nil
}

func (r *MongoSweetRepository) FindByID(ctx context.Context, id string) (*models.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var sweet models.Sweet
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sweets: find by id: %w", err)
	}
	return &sweet, nil
}

func (r *MongoSweetRepository) Find(ctx context.Context, filter SweetFilter) ([]models.Sweet, error) {
	query := bson.M{}

	// QuoteMeta keeps user input a literal substring match, not a pattern.
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Category != "" {
		query["category"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Category), Options: "i"}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sweets: find: %w", err)
	}
	defer cur.Close(ctx)

	sweets := []models.Sweet{}
	if err := cur.All(ctx, &sweets); err != nil {
		return nil, fmt.Errorf("sweets: decode: %w", err)
	}
	return sweets, nil
}

func (r *MongoSweetRepository) Purchase(ctx context.Context, id string) (*models.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Stock-out guard and decrement in one conditional document update: the
	// filter only matches while quantity > 0, so two concurrent purchases of
	// the last unit can never both succeed.
	var sweet models.Sweet
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "quantity": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"quantity": -1, "sold": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sweet)
	if err == nil {
		return &sweet, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("sweets: purchase: %w", err)
	}

	// No match: either the item is gone or it is out of stock.
	switch err := r.col.FindOne(ctx, bson.M{"_id": oid}).Err(); {
	case err == nil:
		return nil, ErrOutOfStock
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("sweets: purchase lookup: %w", err)
	}
}

func (r *MongoSweetRepository) AddQuantity(ctx context.Context, id string, n int) (*models.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var sweet models.Sweet
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"quantity": n},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sweets: add quantity: %w", err)
	}
	return &sweet, nil
}

func (r *MongoSweetRepository) Update(ctx context.Context, id string, patch SweetPatch) (*models.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	var sweet models.Sweet
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sweets: update: %w", err)
	}
	return &sweet, nil
}

func (r *MongoSweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("sweets: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
