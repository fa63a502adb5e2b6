package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubContactService struct {
	got *dto.ContactRequest
	err error
}

func (s *stubContactService) Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) error {
	s.got = req
	return s.err
}

func (s *stubContactService) Wait() {}

func newContactRouter(t *testing.T, svc *stubContactService, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DBMiddleware(testutil.NewTestDB(t)))
	NewContactHandler(NewBaseHandler(), svc, limit).RegisterRoutes(r.Group("/api"))
	return r
}

func postContact(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContactHandler_DecodesBody(t *testing.T) {
	svc := &stubContactService{}
	r := newContactRouter(t, svc, 0)

	w := postContact(r, `{"name":"Ada","email":"ada@example.com","message":"Hi","extra":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.NotNil(t, svc.got)
	assert.Equal(t, "Ada", svc.got.Name)
	assert.Equal(t, "", svc.got.Subject)
}

func TestContactHandler_EmptyBodyIsEmptyObject(t *testing.T) {
	svc := &stubContactService{}
	r := newContactRouter(t, svc, 0)

	w := postContact(r, "  \n")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, dto.ContactRequest{}, *svc.got)
}

func TestContactHandler_InvalidJSON(t *testing.T) {
	for _, body := range []string{`{`, `"text"`, `{"name": 42}`, `null x`, `{"name":"A","email":"a@x.com","message":"hi"}{}`} {
		svc := &stubContactService{}
		w := postContact(newContactRouter(t, svc, 0), body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"success":false,"error":"Invalid JSON"}`, w.Body.String(), body)
		assert.Nil(t, svc.got, body)
	}
}

func TestContactHandler_BodyTooLarge(t *testing.T) {
	svc := &stubContactService{}
	body := `{"name":"Ada","email":"ada@example.com","message":"` + strings.Repeat("a", maxContactBody) + `"}`
	w := postContact(newContactRouter(t, svc, 0), body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Request body too large"}`, w.Body.String())
	assert.Nil(t, svc.got)
}

func TestContactHandler_ServiceErrors(t *testing.T) {
	svc := &stubContactService{err: apperrors.ErrContactFieldsRequired}
	w := postContact(newContactRouter(t, svc, 0), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Name, email and message are required"}`, w.Body.String())

	svc = &stubContactService{err: apperrors.DatabaseError(errors.New("disk full"))}
	w = postContact(newContactRouter(t, svc, 0), `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, w.Body.String())

	svc = &stubContactService{err: errors.New("boom")}
	w = postContact(newContactRouter(t, svc, 0), `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, w.Body.String())
}

func TestContactHandler_RateLimit(t *testing.T) {
	svc := &stubContactService{}
	r := newContactRouter(t, svc, 1)

	assert.Equal(t, http.StatusOK, postContact(r, `{}`).Code)

	w := postContact(r, `{}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Too many requests"}`, w.Body.String())
}

// streamStorage returns readers without Seek, like an object store body.
type streamStorage struct {
	files map[string]string
	err   error
}

func (s *streamStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	content, ok := s.files[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (s *streamStorage) GetURL(ctx context.Context, key string) (string, error) {
	return "/media/" + key, nil
}

func serveMedia(store storage.Storage, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMediaHandler(NewBaseHandler(), store).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMediaHandler_StreamsNonSeekableReaders(t *testing.T) {
	store := &streamStorage{files: map[string]string{"gallery/a.json": `{"a":1}`}}

	w := serveMedia(store, "/media/gallery/a.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"a":1}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestMediaHandler_Errors(t *testing.T) {
	store := &streamStorage{files: map[string]string{}}
	assert.Equal(t, http.StatusNotFound, serveMedia(store, "/media/nothing.png").Code)
	assert.Equal(t, http.StatusNotFound, serveMedia(store, "/media/../etc/passwd").Code)

	store.err = errors.New("io failure")
	w := serveMedia(store, "/media/x.png")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "STORAGE_ERROR")
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query       string
		def         int
		page, limit int
	}{
		{"", 10, 1, 10},
		{"?page=3&per_page=20", 10, 3, 20},
		{"?page=x&per_page=y", 12, 1, 12},
		{"?per_page=500", 12, 1, 50},
		{"?page=-2&per_page=0", 10, -2, 10},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/research/"+tc.query, nil)

		page, perPage := ParsePagination(c, tc.def)
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.limit, perPage, tc.query)
	}
}
