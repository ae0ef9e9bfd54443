package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devwithnaveed/cineverse-api/internal/config"
	"github.com/devwithnaveed/cineverse-api/internal/handler"
	"github.com/devwithnaveed/cineverse-api/internal/middleware"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
	"github.com/devwithnaveed/cineverse-api/internal/router"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

// newTestServer 搭建完整的 HTTP 栈：内存库 + 真实路由，
// 限流器不接 Redis，所有限流中间件直接放行
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	utils.InitCache()

	cfg := &config.Config{
		Env:       "test",
		AppSecret: "test-secret",
		JWTExpiry: time.Hour,
		UploadDir: t.TempDir(),
		CacheTTL:  time.Minute,
	}

	h, err := handler.NewHandler(repository.NewRepositories(db), cfg)
	require.NoError(t, err)

	r := gin.New()
	limiter := middleware.NewRateLimiter(cfg.RateLimit, nil)
	router.RegisterRoutes(r, h, limiter)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	r := newTestServer(t)

	// 注册
	w := doJSON(t, r, http.MethodPost, "/users/register",
		`{"name":"小明","email":"ming@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotZero(t, registered.ID)
	// 密码不应出现在响应里
	assert.NotContains(t, w.Body.String(), "password")

	// 重复邮箱注册
	w = doJSON(t, r, http.MethodPost, "/users/register",
		`{"name":"冒名者","email":"ming@example.com","password":"otherpass"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	// 登录
	w = doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"ming@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	// 未登录访问资料
	w = doJSON(t, r, http.MethodGet, "/users/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录后访问资料
	w = doJSON(t, r, http.MethodGet, "/users/profile", "", login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ming@example.com")
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/users/register",
		`{"name":"普通用户","email":"user@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"user@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// 普通用户不能访问用户管理接口
	w = doJSON(t, r, http.MethodGet, "/users", "", login.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGenreCRUDOverHTTP(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/users/register",
		`{"name":"编辑","email":"editor@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"editor@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// 未登录不能创建
	w = doJSON(t, r, http.MethodPost, "/genres", `{"name":"科幻"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 创建
	w = doJSON(t, r, http.MethodPost, "/genres", `{"name":"科幻","description":"太空歌剧"}`, login.AccessToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var genre struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genre))
	assert.Equal(t, "科幻", genre.Name)

	// 名称唯一
	w = doJSON(t, r, http.MethodPost, "/genres", `{"name":"科幻"}`, login.AccessToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 公开读取
	w = doJSON(t, r, http.MethodGet, "/genres", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "科幻")

	// 不存在的 ID
	w = doJSON(t, r, http.MethodGet, "/genres/999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 非法 ID
	w = doJSON(t, r, http.MethodGet, "/genres/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
