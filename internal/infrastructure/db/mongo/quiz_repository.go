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

const quizzesCollection = "quizzes"

type QuizRepository struct {
	coll       *mongo.Collection
	categories *mongo.Collection
	questions  *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{
		coll:       db.Collection(quizzesCollection),
		categories: db.Collection(categoriesCollection),
		questions:  db.Collection(questionsCollection),
	}
}

type mongoQuiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CategoryID  primitive.ObjectID `bson:"category_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Difficulty  string             `bson:"difficulty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mq mongoQuiz) toDomain() domain.Quiz {
	return domain.Quiz{
		ID:          mq.ID.Hex(),
		CategoryID:  mq.CategoryID.Hex(),
		Title:       mq.Title,
		Description: mq.Description,
		Difficulty:  domain.Difficulty(mq.Difficulty),
		CreatedAt:   mq.CreatedAt,
	}
}

// List returns quizzes newest first, each with its category and question
// count attached. categoryID is an optional filter.
func (r *QuizRepository) List(ctx context.Context, categoryID string) ([]domain.Quiz, error) {
	filter := bson.M{}
	if categoryID != "" {
		oid, err := parseID(categoryID, domain.ErrCategoryNotFound)
		if err != nil {
			return nil, err
		}
		filter["category_id"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer cur.Close(ctx)

	quizzes := []domain.Quiz{}
	quizIDs := []primitive.ObjectID{}
	categoryIDs := []primitive.ObjectID{}
	for cur.Next(ctx) {
		var mq mongoQuiz
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode quiz: %w", err)
		}
		quizzes = append(quizzes, mq.toDomain())
		quizIDs = append(quizIDs, mq.ID)
		categoryIDs = append(categoryIDs, mq.CategoryID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return quizzes, nil
	}

	categories, err := r.loadCategories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	counts, err := r.countQuestions(ctx, quizIDs)
	if err != nil {
		return nil, err
	}

	for i := range quizzes {
		if c, ok := categories[quizzes[i].CategoryID]; ok {
			cat := c
			quizzes[i].Category = &cat
		}
		quizzes[i].QuestionCount = counts[quizzes[i].ID]
	}
	return quizzes, nil
}

func (r *QuizRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Quiz, error) {
	if categoryID == "" {
		return nil, domain.ErrCategoryNotFound
	}
	return r.List(ctx, categoryID)
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*domain.Quiz, error) {
	oid, err := parseID(id, domain.ErrQuizNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mq mongoQuiz
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}

	quiz := mq.toDomain()
	if categories, err := r.loadCategories(ctx, []primitive.ObjectID{mq.CategoryID}); err == nil {
		if c, ok := categories[quiz.CategoryID]; ok {
			cat := c
			quiz.Category = &cat
		}
	}
	if counts, err := r.countQuestions(ctx, []primitive.ObjectID{mq.ID}); err == nil {
		quiz.QuestionCount = counts[quiz.ID]
	}
	return &quiz, nil
}

func (r *QuizRepository) Create(ctx context.Context, q *domain.Quiz) (*domain.Quiz, error) {
	categoryOID, err := parseID(q.CategoryID, domain.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuiz{
		CategoryID:  categoryOID,
		Title:       q.Title,
		Description: q.Description,
		Difficulty:  string(q.Difficulty),
		CreatedAt:   q.CreatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *QuizRepository) Update(ctx context.Context, q *domain.Quiz) (*domain.Quiz, error) {
	oid, err := parseID(q.ID, domain.ErrQuizNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mq mongoQuiz
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"title":       q.Title,
			"description": q.Description,
			"difficulty":  string(q.Difficulty),
		}},
		opts,
	).Decode(&mq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuizNotFound
		}
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	updated := mq.toDomain()
	return &updated, nil
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrQuizNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuizNotFound
	}

	// Orphaned questions are useless without their quiz.
	if _, err := r.questions.DeleteMany(ctx, bson.M{"quiz_id": oid}); err != nil {
		return fmt.Errorf("delete quiz questions: %w", err)
	}
	return nil
}

// EnsureIndexes creates the category lookup index.
func (r *QuizRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category_id", Value: 1}},
	})
	return err
}

func (r *QuizRepository) loadCategories(ctx context.Context, ids []primitive.ObjectID) (map[string]domain.Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]domain.Category)
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out[mc.ID.Hex()] = mc.toDomain()
	}
	return out, cur.Err()
}

func (r *QuizRepository) countQuestions(ctx context.Context, quizIDs []primitive.ObjectID) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"quiz_id": bson.M{"$in": quizIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$quiz_id", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.questions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]int)
	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int                `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode question count: %w", err)
		}
		out[row.ID.Hex()] = row.Count
	}
	return out, cur.Err()
}
