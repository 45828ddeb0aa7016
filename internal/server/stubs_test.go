package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"formhub/internal/config"
	"formhub/internal/models"
	"formhub/internal/search"
	"formhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory UserRepository so auth flows can run
// end-to-end through the HTTP layer.
type memUserRepo struct {
	mu   sync.Mutex
	seq  uint
	byID map[uint]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[uint]*models.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return models.NewConflictError("El email ya existe")
		}
	}
	r.seq++
	user.ID = r.seq
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return models.NewNotFoundError("User", user.ID)
	}
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Function-field stubs for the remaining repositories. Unset funcs return
// not-found or empty results.

type stubFormRepo struct {
	getByID        func(ctx context.Context, id uint) (*models.Form, error)
	list           func(ctx context.Context) ([]models.Form, error)
	listByUser     func(ctx context.Context, userID uint) ([]models.Form, error)
	create         func(ctx context.Context, form *models.Form) error
	update         func(ctx context.Context, form *models.Form) error
	deleteFn       func(ctx context.Context, id uint) error
	listUnanswered func(ctx context.Context, userID uint) ([]models.Form, error)
}

func (s *stubFormRepo) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("Form", id)
	}
	return s.getByID(ctx, id)
}

func (s *stubFormRepo) List(ctx context.Context) ([]models.Form, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(ctx)
}

func (s *stubFormRepo) ListByUser(ctx context.Context, userID uint) ([]models.Form, error) {
	if s.listByUser == nil {
		return nil, nil
	}
	return s.listByUser(ctx, userID)
}

func (s *stubFormRepo) Create(ctx context.Context, form *models.Form) error {
	if s.create == nil {
		form.ID = 1
		return nil
	}
	return s.create(ctx, form)
}

func (s *stubFormRepo) Update(ctx context.Context, form *models.Form) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, form)
}

func (s *stubFormRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return models.NewNotFoundError("Form", id)
	}
	return s.deleteFn(ctx, id)
}

func (s *stubFormRepo) ListUnanswered(ctx context.Context, userID uint) ([]models.Form, error) {
	if s.listUnanswered == nil {
		return nil, nil
	}
	return s.listUnanswered(ctx, userID)
}

type stubQuestionRepo struct {
	getByID        func(ctx context.Context, id uint) (*models.Question, error)
	getByIDForForm func(ctx context.Context, id, formID uint) (*models.Question, error)
	listByForm     func(ctx context.Context, formID uint) ([]models.Question, error)
	create         func(ctx context.Context, question *models.Question) error
	update         func(ctx context.Context, question *models.Question) error
}

func (s *stubQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("Question", id)
	}
	return s.getByID(ctx, id)
}

func (s *stubQuestionRepo) GetByIDForForm(ctx context.Context, id, formID uint) (*models.Question, error) {
	if s.getByIDForForm == nil {
		return nil, models.NewNotFoundError("Question", id)
	}
	return s.getByIDForForm(ctx, id, formID)
}

func (s *stubQuestionRepo) ListByForm(ctx context.Context, formID uint) ([]models.Question, error) {
	if s.listByForm == nil {
		return nil, nil
	}
	return s.listByForm(ctx, formID)
}

func (s *stubQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	if s.create == nil {
		question.ID = 1
		return nil
	}
	return s.create(ctx, question)
}

func (s *stubQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, question)
}

type stubAnswerRepo struct {
	listByForm func(ctx context.Context, formID uint) ([]models.Answer, error)
	create     func(ctx context.Context, answer *models.Answer) error
	listAll    func(ctx context.Context) ([]models.Answer, error)
}

func (s *stubAnswerRepo) ListByForm(ctx context.Context, formID uint) ([]models.Answer, error) {
	if s.listByForm == nil {
		return nil, nil
	}
	return s.listByForm(ctx, formID)
}

func (s *stubAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	if s.create == nil {
		answer.ID = 1
		return nil
	}
	return s.create(ctx, answer)
}

func (s *stubAnswerRepo) ListAll(ctx context.Context) ([]models.Answer, error) {
	if s.listAll == nil {
		return nil, nil
	}
	return s.listAll(ctx)
}

type stubCommentRepo struct {
	getByID    func(ctx context.Context, id uint) (*models.Comment, error)
	listByForm func(ctx context.Context, formID uint) ([]models.Comment, error)
	create     func(ctx context.Context, comment *models.Comment) error
	deleteFn   func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("Comment", id)
	}
	return s.getByID(ctx, id)
}

func (s *stubCommentRepo) ListByForm(ctx context.Context, formID uint) ([]models.Comment, error) {
	if s.listByForm == nil {
		return nil, nil
	}
	return s.listByForm(ctx, formID)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.create == nil {
		comment.ID = 1
		return nil
	}
	return s.create(ctx, comment)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return models.NewNotFoundError("Comment", id)
	}
	return s.deleteFn(ctx, id)
}

type stubLikeRepo struct {
	exists      func(ctx context.Context, userID, formID uint) (bool, error)
	create      func(ctx context.Context, like *models.Like) error
	countByForm func(ctx context.Context, formID uint) (int64, error)
}

func (s *stubLikeRepo) Exists(ctx context.Context, userID, formID uint) (bool, error) {
	if s.exists == nil {
		return false, nil
	}
	return s.exists(ctx, userID, formID)
}

func (s *stubLikeRepo) Create(ctx context.Context, like *models.Like) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, like)
}

func (s *stubLikeRepo) CountByForm(ctx context.Context, formID uint) (int64, error) {
	if s.countByForm == nil {
		return 0, nil
	}
	return s.countByForm(ctx, formID)
}

type stubSearcher struct {
	search func(ctx context.Context, query string) ([]search.Result, error)
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	if s.search == nil {
		return nil, nil
	}
	return s.search(ctx, query)
}

// testDeps bundles the stubbed persistence layer for one test app.
type testDeps struct {
	users     *memUserRepo
	forms     *stubFormRepo
	questions *stubQuestionRepo
	answers   *stubAnswerRepo
	comments  *stubCommentRepo
	likes     *stubLikeRepo
	searcher  *stubSearcher
}

func defaultDeps() *testDeps {
	return &testDeps{
		users:     newMemUserRepo(),
		forms:     &stubFormRepo{},
		questions: &stubQuestionRepo{},
		answers:   &stubAnswerRepo{},
		comments:  &stubCommentRepo{},
		likes:     &stubLikeRepo{},
		searcher:  &stubSearcher{},
	}
}

// newTestApp wires a Server onto stub repositories and returns the routed
// Fiber app. No Redis and no Prometheus registration; the rate limiter
// bypasses itself outside production environments.
func newTestApp(t *testing.T, deps *testDeps) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:            "test-secret",
		Env:                  "test",
		AccessTokenTTLMin:    60,
		RefreshTokenTTLHours: 168,
	}

	srv := &Server{config: cfg}
	srv.userRepo = deps.users
	srv.formRepo = deps.forms
	srv.questionRepo = deps.questions
	srv.answerRepo = deps.answers
	srv.commentRepo = deps.comments
	srv.likeRepo = deps.likes

	srv.authService = service.NewAuthService(deps.users, cfg)
	srv.formService = service.NewFormService(deps.forms, deps.users, deps.searcher)
	srv.questionService = service.NewQuestionService(deps.questions, deps.forms)
	srv.answerService = service.NewAnswerService(deps.answers, deps.questions, deps.forms, deps.users)
	srv.commentService = service.NewCommentService(deps.comments, deps.forms, deps.users)
	srv.likeService = service.NewLikeService(deps.likes, deps.forms)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerUser creates an account through the API and returns its ID and
// access token for use in protected requests.
func registerUser(t *testing.T, app *fiber.App, name, email string) (uint, string) {
	t.Helper()

	req := jsonRequest(t, fiber.MethodPost, "/create-user", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "p",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		ID          uint   `json:"id"`
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, resp, &body)
	require.NotZero(t, body.ID)
	require.NotEmpty(t, body.AccessToken)
	return body.ID, body.AccessToken
}

func authedRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()
	req := jsonRequest(t, method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
