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

const (
	attemptsCollection = "attempts"
	answersCollection  = "answers"
)

type AttemptRepository struct {
	coll    *mongo.Collection
	answers *mongo.Collection
	quizzes *QuizRepository
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{
		coll:    db.Collection(attemptsCollection),
		answers: db.Collection(answersCollection),
		quizzes: NewQuizRepository(db),
	}
}

type mongoAttempt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	QuizID      primitive.ObjectID `bson:"quiz_id"`
	Score       int                `bson:"score"`
	Percentage  float64            `bson:"percentage"`
	StartedAt   time.Time          `bson:"started_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty"`
}

func (ma mongoAttempt) toDomain() domain.Attempt {
	return domain.Attempt{
		ID:          ma.ID.Hex(),
		UserID:      ma.UserID.Hex(),
		QuizID:      ma.QuizID.Hex(),
		Score:       ma.Score,
		Percentage:  ma.Percentage,
		StartedAt:   ma.StartedAt,
		CompletedAt: ma.CompletedAt,
	}
}

type mongoAnswer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AttemptID  primitive.ObjectID `bson:"attempt_id"`
	QuestionID primitive.ObjectID `bson:"question_id"`
	UserAnswer string             `bson:"user_answer"`
	IsCorrect  bool               `bson:"is_correct"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (ma mongoAnswer) toDomain() domain.Answer {
	return domain.Answer{
		ID:         ma.ID.Hex(),
		AttemptID:  ma.AttemptID.Hex(),
		QuestionID: ma.QuestionID.Hex(),
		UserAnswer: ma.UserAnswer,
		IsCorrect:  ma.IsCorrect,
		CreatedAt:  ma.CreatedAt,
	}
}

func (r *AttemptRepository) Create(ctx context.Context, a *domain.Attempt) (*domain.Attempt, error) {
	userOID, err := parseID(a.UserID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	quizOID, err := parseID(a.QuizID, domain.ErrQuizNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAttempt{
		UserID:    userOID,
		QuizID:    quizOID,
		StartedAt: a.StartedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*domain.Attempt, error) {
	oid, err := parseID(id, domain.ErrAttemptNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAttempt
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("find attempt: %w", err)
	}
	a := ma.toDomain()
	return &a, nil
}

// Complete sets the score fields exactly once; the service layer has already
// rejected repeat completions.
func (r *AttemptRepository) Complete(ctx context.Context, id string, score int, percentage float64, completedAt time.Time) (*domain.Attempt, error) {
	oid, err := parseID(id, domain.ErrAttemptNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAttempt
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"score":        score,
			"percentage":   percentage,
			"completed_at": completedAt.UTC(),
		}},
		opts,
	).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("complete attempt: %w", err)
	}
	a := ma.toDomain()
	return &a, nil
}

// ListByUser returns all attempts for a user, newest first, with quiz and
// category attached.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID string) ([]domain.Attempt, error) {
	return r.listByUser(ctx, userID, bson.M{})
}

// ListCompletedByUser returns completed attempts only, newest first.
func (r *AttemptRepository) ListCompletedByUser(ctx context.Context, userID string) ([]domain.Attempt, error) {
	return r.listByUser(ctx, userID, bson.M{"completed_at": bson.M{"$ne": nil}})
}

func (r *AttemptRepository) listByUser(ctx context.Context, userID string, extra bson.M) ([]domain.Attempt, error) {
	userOID, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": userOID}
	for k, v := range extra {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer cur.Close(ctx)

	attempts := []domain.Attempt{}
	for cur.Next(ctx) {
		var ma mongoAttempt
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode attempt: %w", err)
		}
		attempts = append(attempts, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return r.attachQuizzes(ctx, attempts)
}

// attachQuizzes resolves each attempt's quiz (with category) so history and
// stats views need no extra round trips.
func (r *AttemptRepository) attachQuizzes(ctx context.Context, attempts []domain.Attempt) ([]domain.Attempt, error) {
	if len(attempts) == 0 {
		return attempts, nil
	}

	seen := make(map[string]*domain.Quiz)
	for i := range attempts {
		quiz, ok := seen[attempts[i].QuizID]
		if !ok {
			q, err := r.quizzes.FindByID(ctx, attempts[i].QuizID)
			if err != nil {
				if errors.Is(err, domain.ErrQuizNotFound) {
					seen[attempts[i].QuizID] = nil
					continue
				}
				return nil, err
			}
			quiz = q
			seen[attempts[i].QuizID] = q
		}
		attempts[i].Quiz = quiz
	}
	return attempts, nil
}

func (r *AttemptRepository) InsertAnswers(ctx context.Context, answers []domain.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(answers))
	for _, a := range answers {
		attemptOID, err := parseID(a.AttemptID, domain.ErrAttemptNotFound)
		if err != nil {
			return err
		}
		questionOID, err := parseID(a.QuestionID, domain.ErrQuestionNotFound)
		if err != nil {
			return err
		}
		docs = append(docs, mongoAnswer{
			AttemptID:  attemptOID,
			QuestionID: questionOID,
			UserAnswer: a.UserAnswer,
			IsCorrect:  a.IsCorrect,
			CreatedAt:  a.CreatedAt.UTC(),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.answers.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert answers: %w", err)
	}
	return nil
}

func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID string) ([]domain.Answer, error) {
	oid, err := parseID(attemptID, domain.ErrAttemptNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.answers.Find(ctx, bson.M{"attempt_id": oid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer cur.Close(ctx)

	answers := []domain.Answer{}
	for cur.Next(ctx) {
		var ma mongoAnswer
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode answer: %w", err)
		}
		answers = append(answers, ma.toDomain())
	}
	return answers, cur.Err()
}

// EnsureIndexes creates the user history and answer lookup indexes.
func (r *AttemptRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "started_at", Value: -1}},
	}); err != nil {
		return err
	}
	_, err := r.answers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "attempt_id", Value: 1}},
	})
	return err
}
