package service

import (
	"context"
	"strconv"
	"time"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// Shared in-memory stubs for the service tests. IDs are assigned
// sequentially so tests can predict them.

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = idFor(&r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) TokenVersion(_ context.Context, id string) (int64, error) {
	if u, ok := r.users[id]; ok {
		return u.TokenVersion, nil
	}
	return 0, domain.ErrUserNotFound
}

func (r *stubUserRepo) BumpTokenVersion(_ context.Context, id string) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.TokenVersion++
	return u.TokenVersion, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

type stubAttemptRepo struct {
	attempts map[string]*domain.Attempt
	answers  []domain.Answer
	nextID   int
}

func newStubAttemptRepo() *stubAttemptRepo {
	return &stubAttemptRepo{attempts: make(map[string]*domain.Attempt), nextID: 1}
}

func cloneAttempt(a *domain.Attempt) *domain.Attempt {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAttemptRepo) Create(_ context.Context, a *domain.Attempt) (*domain.Attempt, error) {
	copy := cloneAttempt(a)
	copy.ID = idFor(&r.nextID)
	r.attempts[copy.ID] = cloneAttempt(copy)
	return copy, nil
}

func (r *stubAttemptRepo) FindByID(_ context.Context, id string) (*domain.Attempt, error) {
	if a, ok := r.attempts[id]; ok {
		return cloneAttempt(a), nil
	}
	return nil, domain.ErrAttemptNotFound
}

func (r *stubAttemptRepo) Complete(_ context.Context, id string, score int, percentage float64, completedAt time.Time) (*domain.Attempt, error) {
	a, ok := r.attempts[id]
	if !ok {
		return nil, domain.ErrAttemptNotFound
	}
	a.Score = score
	a.Percentage = percentage
	a.CompletedAt = &completedAt
	return cloneAttempt(a), nil
}

func (r *stubAttemptRepo) ListByUser(_ context.Context, userID string) ([]domain.Attempt, error) {
	out := []domain.Attempt{}
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, *cloneAttempt(a))
		}
	}
	return out, nil
}

func (r *stubAttemptRepo) ListCompletedByUser(_ context.Context, userID string) ([]domain.Attempt, error) {
	out := []domain.Attempt{}
	for _, a := range r.attempts {
		if a.UserID == userID && a.CompletedAt != nil {
			out = append(out, *cloneAttempt(a))
		}
	}
	return out, nil
}

func (r *stubAttemptRepo) InsertAnswers(_ context.Context, answers []domain.Answer) error {
	r.answers = append(r.answers, answers...)
	return nil
}

func (r *stubAttemptRepo) ListAnswers(_ context.Context, attemptID string) ([]domain.Answer, error) {
	out := []domain.Answer{}
	for _, a := range r.answers {
		if a.AttemptID == attemptID {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	if c, ok := r.categories[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	clone := *c
	if clone.ID == "" {
		clone.ID = c.Name
	}
	r.categories[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if _, ok := r.categories[c.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

type stubQuizRepo struct {
	quizzes map[string]*domain.Quiz
}

func newStubQuizRepo() *stubQuizRepo {
	return &stubQuizRepo{quizzes: make(map[string]*domain.Quiz)}
}

func (r *stubQuizRepo) List(_ context.Context, categoryID string) ([]domain.Quiz, error) {
	out := []domain.Quiz{}
	for _, q := range r.quizzes {
		if categoryID == "" || q.CategoryID == categoryID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *stubQuizRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Quiz, error) {
	return r.List(ctx, categoryID)
}

func (r *stubQuizRepo) FindByID(_ context.Context, id string) (*domain.Quiz, error) {
	if q, ok := r.quizzes[id]; ok {
		clone := *q
		return &clone, nil
	}
	return nil, domain.ErrQuizNotFound
}

func (r *stubQuizRepo) Create(_ context.Context, q *domain.Quiz) (*domain.Quiz, error) {
	clone := *q
	if clone.ID == "" {
		clone.ID = q.Title
	}
	r.quizzes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubQuizRepo) Update(_ context.Context, q *domain.Quiz) (*domain.Quiz, error) {
	if _, ok := r.quizzes[q.ID]; !ok {
		return nil, domain.ErrQuizNotFound
	}
	clone := *q
	r.quizzes[q.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubQuizRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.quizzes[id]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	return nil
}

type stubQuestionRepo struct {
	questions map[string]*domain.Question
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) ListByQuiz(_ context.Context, quizID string) ([]domain.Question, error) {
	out := []domain.Question{}
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	if q, ok := r.questions[id]; ok {
		clone := *q
		return &clone, nil
	}
	return nil, domain.ErrQuestionNotFound
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) (*domain.Question, error) {
	clone := *q
	if clone.ID == "" {
		clone.ID = q.Text
	}
	r.questions[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubQuestionRepo) Update(_ context.Context, q *domain.Question) (*domain.Question, error) {
	if _, ok := r.questions[q.ID]; !ok {
		return nil, domain.ErrQuestionNotFound
	}
	clone := *q
	r.questions[q.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

// fakeHasher avoids real bcrypt work in service tests.
type fakeHasher struct {
	dummyCalls int
}

func (h *fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (h *fakeHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

func (h *fakeHasher) VerifyDummy(string) { h.dummyCalls++ }

// fakeTokens records issued claims instead of signing real tokens.
type fakeTokens struct {
	issued []ports.TokenClaims
}

func (t *fakeTokens) Issue(userID string, role domain.Role, tokenVersion int64) (string, error) {
	t.issued = append(t.issued, ports.TokenClaims{UserID: userID, Role: role, TokenVersion: tokenVersion})
	return "token-for-" + userID, nil
}

func (t *fakeTokens) Verify(string) (ports.TokenClaims, bool, error) {
	return ports.TokenClaims{}, false, nil
}

func idFor(next *int) string {
	id := *next
	*next++
	return "id-" + strconv.Itoa(id)
}
