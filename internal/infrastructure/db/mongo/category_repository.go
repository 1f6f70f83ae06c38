package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

const categoriesCollection = "categories"

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

type mongoCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Icon        string             `bson:"icon"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mc mongoCategory) toDomain() domain.Category {
	return domain.Category{
		ID:          mc.ID.Hex(),
		Name:        mc.Name,
		Description: mc.Description,
		Icon:        mc.Icon,
		CreatedAt:   mc.CreatedAt,
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	categories := []domain.Category{}
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, mc.toDomain())
	}
	return categories, cur.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := parseID(id, domain.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	c := mc.toDomain()
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCategory{
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	oid, err := parseID(c.ID, domain.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCategory
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        c.Name,
			"description": c.Description,
			"icon":        c.Icon,
		}},
		opts,
	).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	updated := mc.toDomain()
	return &updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrCategoryNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
