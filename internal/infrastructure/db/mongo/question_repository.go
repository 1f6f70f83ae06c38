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

const questionsCollection = "questions"

type QuestionRepository struct {
	coll *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{coll: db.Collection(questionsCollection)}
}

type mongoOption struct {
	ID          string `bson:"id"`
	Text        string `bson:"text"`
	Explanation string `bson:"explanation,omitempty"`
}

type mongoQuestion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	QuizID        primitive.ObjectID `bson:"quiz_id"`
	Text          string             `bson:"question"`
	Difficulty    string             `bson:"difficulty,omitempty"`
	Options       []mongoOption      `bson:"options"`
	CorrectAnswer string             `bson:"correct_answer"`
	Explanation   string             `bson:"explanation"`
	Order         int                `bson:"order"`
}

func (mq mongoQuestion) toDomain() domain.Question {
	opts := make([]domain.QuestionOption, 0, len(mq.Options))
	for _, o := range mq.Options {
		opts = append(opts, domain.QuestionOption{
			ID:          o.ID,
			Text:        o.Text,
			Explanation: o.Explanation,
		})
	}
	return domain.Question{
		ID:            mq.ID.Hex(),
		QuizID:        mq.QuizID.Hex(),
		Text:          mq.Text,
		Difficulty:    domain.Difficulty(mq.Difficulty),
		Options:       opts,
		CorrectAnswer: mq.CorrectAnswer,
		Explanation:   mq.Explanation,
		Order:         mq.Order,
	}
}

func toMongoOptions(opts []domain.QuestionOption) []mongoOption {
	out := make([]mongoOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, mongoOption{ID: o.ID, Text: o.Text, Explanation: o.Explanation})
	}
	return out
}

// ListByQuiz returns questions in ascending order.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	oid, err := parseID(quizID, domain.ErrQuizNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"quiz_id": oid},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cur.Close(ctx)

	questions := []domain.Question{}
	for cur.Next(ctx) {
		var mq mongoQuestion
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		questions = append(questions, mq.toDomain())
	}
	return questions, cur.Err()
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	oid, err := parseID(id, domain.ErrQuestionNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mq mongoQuestion
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	q := mq.toDomain()
	return &q, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	quizOID, err := parseID(q.QuizID, domain.ErrQuizNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuestion{
		QuizID:        quizOID,
		Text:          q.Text,
		Difficulty:    string(q.Difficulty),
		Options:       toMongoOptions(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Order:         q.Order,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *QuestionRepository) Update(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	oid, err := parseID(q.ID, domain.ErrQuestionNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mq mongoQuestion
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"question":       q.Text,
			"difficulty":     string(q.Difficulty),
			"options":        toMongoOptions(q.Options),
			"correct_answer": q.CorrectAnswer,
			"explanation":    q.Explanation,
			"order":          q.Order,
		}},
		opts,
	).Decode(&mq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("update question: %w", err)
	}
	updated := mq.toDomain()
	return &updated, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrQuestionNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// EnsureIndexes creates the quiz lookup index used for ordered listing.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "quiz_id", Value: 1}, {Key: "order", Value: 1}},
	})
	return err
}
