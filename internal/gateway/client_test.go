package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
	"github.com/mealbadge/mealbadge-go/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestClient spins up a gin-backed fake rewards backend and a client
// pointed at it
func newTestClient(t *testing.T, register func(r *gin.Engine), serverPaginates bool) (*Client, *session.Store) {
	t.Helper()

	router := gin.New()
	register(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "token"), zerolog.Nop())
	client := NewClient(Options{
		BaseURL:         server.URL,
		HTTPClient:      server.Client(),
		Session:         store,
		ServerPaginates: serverPaginates,
		Logger:          zerolog.Nop(),
	})
	return client, store
}

func TestBearerTokenAndRequestIDAttached(t *testing.T) {
	var gotAuth, gotRequestID string

	client, store := newTestClient(t, func(r *gin.Engine) {
		r.GET("/auth/check-email", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			gotRequestID = c.GetHeader("X-Request-ID")
			c.JSON(http.StatusOK, gin.H{"exists": false})
		})
	}, true)
	require.NoError(t, store.SetToken("abc123"))

	exists, err := client.CheckEmail(context.Background(), "a@b.kr")

	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string

	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/auth/check-email", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, gin.H{"exists": true})
		})
	}, true)

	exists, err := client.CheckEmail(context.Background(), "a@b.kr")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedForcesLogout(t *testing.T) {
	client, store := newTestClient(t, func(r *gin.Engine) {
		r.POST("/points/check-in", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "token expired"})
		})
	}, true)
	require.NoError(t, store.SetToken("expired-token"))

	invalidated := false
	store.OnInvalidate(func() { invalidated = true })

	_, err := client.CheckIn(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.True(t, invalidated, "observers must see the forced logout")
	assert.Empty(t, store.Token())
}

func TestExpiredTokenForcesLogoutBeforeRequest(t *testing.T) {
	hits := 0
	client, store := newTestClient(t, func(r *gin.Engine) {
		r.POST("/points/check-in", func(c *gin.Context) {
			hits++
			c.JSON(http.StatusOK, gin.H{"awardedPoints": 10})
		})
	}, true)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.SetToken(signed))

	invalidated := false
	store.OnInvalidate(func() { invalidated = true })

	_, err = client.CheckIn(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.Zero(t, hits, "an expired token must never reach the server")
	assert.True(t, invalidated, "observers must see the forced logout")
	assert.False(t, store.Authenticated())
}

func TestUnexpiredTokenStillSent(t *testing.T) {
	var gotAuth string
	client, store := newTestClient(t, func(r *gin.Engine) {
		r.GET("/auth/check-email", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, gin.H{"exists": false})
		})
	}, true)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.SetToken(signed))

	_, err = client.CheckEmail(context.Background(), "a@b.kr")

	require.NoError(t, err)
	assert.Equal(t, "Bearer "+signed, gotAuth)
}

func TestListClassesDecodesOptions(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/school-search/class-info", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"code": "C3", "label": "3반"},
				{"code": "C1", "label": "1반"},
			})
		})
	}, true)

	classes, err := client.ListClasses(context.Background(), "B10", "S001", 3, "일반학과")

	require.NoError(t, err)
	assert.Equal(t, []SelectionOption{
		{Code: "C3", Label: "3반"},
		{Code: "C1", Label: "1반"},
	}, classes)
}

func TestConflictCarriesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/shop/exchange/:id", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"message": "포인트가 부족합니다"})
		})
	}, true)

	_, err := client.ExchangeProduct(context.Background(), 7)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientPoints)
	assert.Equal(t, "포인트가 부족합니다", err.Error())
}

func TestCheckInConflictMapsToAlreadyCheckedIn(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/points/check-in", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"message": "already checked in"})
		})
	}, true)

	_, err := client.CheckIn(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrAlreadyCheckedIn)
}

func TestListStudentsSendsZeroBasedPage(t *testing.T) {
	var gotPage, gotSize, gotName string

	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/admin/students", func(c *gin.Context) {
			gotPage = c.Query("page")
			gotSize = c.Query("size")
			gotName = c.Query("name")
			c.JSON(http.StatusOK, gin.H{
				"content":       []gin.H{{"id": 1, "name": "가"}},
				"totalPages":    3,
				"totalElements": 18,
			})
		})
	}, true)

	page, err := client.ListStudents(context.Background(), 2, 6, "name", "가")

	require.NoError(t, err)
	assert.Equal(t, "1", gotPage, "wire page index is zero-based")
	assert.Equal(t, "6", gotSize)
	assert.Equal(t, "가", gotName)
	assert.Equal(t, 2, page.Page, "client page stays 1-based")
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 18, page.TotalElements)
}

func TestLoginReturnsToken(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			var req LoginRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			assert.Equal(t, "a@b.kr", req.Email)
			c.JSON(http.StatusOK, gin.H{"token": "fresh-token"})
		})
	}, true)

	resp, err := client.Login(context.Background(), &LoginRequest{Email: "a@b.kr", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.Token)
}

func TestUpdateStudentProfileReturnsEcho(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.PUT("/admin/students/:id/profile", func(c *gin.Context) {
			assert.Equal(t, "5", c.Param("id"))
			c.JSON(http.StatusOK, gin.H{
				"id": 5, "name": "서버이름", "grade": 3, "classNo": 2, "points": 70,
			})
		})
	}, true)

	echoed, err := client.UpdateStudentProfile(context.Background(), 5, &StudentProfileUpdate{Name: "로컬이름"})

	require.NoError(t, err)
	assert.Equal(t, "서버이름", echoed.Name)
	assert.Equal(t, 70, echoed.Points)
}

func TestMalformedBodyIsRejected(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/auth/check-email", func(c *gin.Context) {
			c.String(http.StatusOK, "not json")
		})
	}, true)

	_, err := client.CheckEmail(context.Background(), "a@b.kr")

	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
}

func TestUploadMealPhoto(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/meals/photo", func(c *gin.Context) {
			file, err := c.FormFile("photo")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			assert.Equal(t, "lunch.jpg", file.Filename)
			c.JSON(http.StatusOK, gin.H{"classification": "비빔밥", "awardedPoints": 5})
		})
	}, true)

	result, err := client.UploadMealPhoto(context.Background(), "/tmp/lunch.jpg", bytes.NewReader([]byte("jpegdata")))

	require.NoError(t, err)
	assert.Equal(t, "비빔밥", result.Classification)
	assert.Equal(t, 5, result.AwardedPoints)
}
