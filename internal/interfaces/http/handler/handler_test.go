package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"storycraftor-api/internal/application/ai"
	"storycraftor-api/internal/application/ebook"
	"storycraftor-api/internal/config"
	"storycraftor-api/internal/domain/entity"
	"storycraftor-api/internal/interfaces/http/middleware"
	"storycraftor-api/pkg/utils"
)

const (
	testSecret = "test-secret"
	testIssuer = "storycraftor-test"
)

// fakeEbookRepo 内存电子书仓储
type fakeEbookRepo struct {
	store map[string]entity.Ebook
	seq   int
}

func newFakeEbookRepo() *fakeEbookRepo {
	return &fakeEbookRepo{store: make(map[string]entity.Ebook)}
}

func (r *fakeEbookRepo) Create(_ context.Context, e *entity.Ebook) error {
	if e.ID == "" {
		// 生成合法 uuid，GetByID 对非法格式直接按不存在处理
		r.seq++
		e.ID = newTestUUID(r.seq)
	}
	r.store[e.ID] = *e
	return nil
}

func (r *fakeEbookRepo) GetByID(_ context.Context, id string) (*entity.Ebook, error) {
	e, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	clone := e
	clone.Chapters = append([]entity.Chapter(nil), e.Chapters...)
	return &clone, nil
}

func (r *fakeEbookRepo) Save(_ context.Context, e *entity.Ebook) error {
	r.store[e.ID] = *e
	return nil
}

func (r *fakeEbookRepo) Delete(_ context.Context, id string) error {
	delete(r.store, id)
	return nil
}

func (r *fakeEbookRepo) ListByAuthor(_ context.Context, authorID string) ([]*entity.Ebook, error) {
	var out []*entity.Ebook
	for _, e := range r.store {
		if e.AuthorID == authorID {
			clone := e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// fakeUserRepo 内存用户仓储
type fakeUserRepo struct {
	byID    map[string]entity.User
	byEmail map[string]string
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]entity.User),
		byEmail: make(map[string]string),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		r.seq++
		u.ID = newTestUUID(1000 + r.seq)
	}
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	now := time.Now()
	u.LastLoginAt = &now
	r.byID[id] = u
	return nil
}

// fakeTx 直接执行回调
type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeGenerator 预置返回的文本生成器
type fakeGenerator struct {
	prompt string
	text   string
	err    error
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

// newTestUUID 生成稳定的合法 uuid
func newTestUUID(n int) string {
	return "00000000-0000-4000-8000-" + padLeft(n)
}

func padLeft(n int) string {
	s := ""
	for v := n; v > 0; v /= 10 {
		s = string(rune('0'+v%10)) + s
	}
	for len(s) < 12 {
		s = "0" + s
	}
	return s
}

// testEnv 测试路由环境
type testEnv struct {
	engine    *gin.Engine
	ebookRepo *fakeEbookRepo
	userRepo  *fakeUserRepo
	gen       *fakeGenerator
	aiCfg     *config.AIConfig
	jwt       *utils.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ebookRepo := newFakeEbookRepo()
	userRepo := newFakeUserRepo()
	gen := &fakeGenerator{text: "generated"}
	aiCfg := &config.AIConfig{APIKey: "test-key"}

	ebookSvc := ebook.NewService(ebookRepo, fakeTx{})
	aiSvc := ai.NewService(aiCfg, gen)

	authCfg := middleware.AuthConfig{Secret: testSecret, Issuer: testIssuer}

	ebookHandler := NewEbookHandler(ebookSvc)
	aiHandler := NewAIHandler(aiSvc)
	authHandler := NewAuthHandler(authCfg, userRepo)
	userHandler := NewUserHandler(userRepo)

	engine := gin.New()
	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.Auth(authCfg))

	protected.GET("/users/me", userHandler.GetMe)
	protected.PUT("/users/me", userHandler.UpdateMe)

	protected.GET("/ebooks", ebookHandler.List)
	protected.POST("/ebooks", ebookHandler.Create)
	protected.GET("/ebooks/:id", ebookHandler.Get)
	protected.PUT("/ebooks/:id", ebookHandler.Update)
	protected.DELETE("/ebooks/:id", ebookHandler.Delete)
	protected.POST("/ebooks/:id/chapters", ebookHandler.AddChapter)
	protected.PUT("/ebooks/:id/chapters/:cid", ebookHandler.UpdateChapter)
	protected.DELETE("/ebooks/:id/chapters/:cid", ebookHandler.DeleteChapter)

	protected.POST("/ai/generate", aiHandler.Generate)
	protected.POST("/ai/outline", aiHandler.Outline)

	return &testEnv{
		engine:    engine,
		ebookRepo: ebookRepo,
		userRepo:  userRepo,
		gen:       gen,
		aiCfg:     aiCfg,
		jwt:       utils.NewJWTManager(testSecret, testIssuer),
	}
}

// tokenFor 为指定用户生成 AccessToken
func (env *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := env.jwt.GenerateToken(userID, "access", time.Hour)
	require.NoError(t, err)
	return token
}

// seedUser 直接写入用户
func (env *testEnv) seedUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	u := entity.NewUser(email, "Tester")
	require.NoError(t, u.SetPassword(password))
	require.NoError(t, env.userRepo.Create(context.Background(), u))
	return u
}

// do 发送请求，body 为 nil 时不带请求体
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

// decodeData 解出响应的 data 字段
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}
