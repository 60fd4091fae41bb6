package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devsocial_backend/internal/api"
	"devsocial_backend/internal/feature/post/domain"
	"devsocial_backend/internal/feature/post/domain/entity"
	jwtmw "devsocial_backend/internal/platform/jwt"
	"devsocial_backend/internal/shared/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubVerifier accepts the token "good" as user "u1".
type stubVerifier struct{}

func (stubVerifier) Verify(token string) (*jwtmw.Claims, error) {
	if token != "good" {
		return nil, jwtmw.ErrInvalidToken
	}
	return &jwtmw.Claims{User: jwtmw.Identity{ID: "u1"}}, nil
}

// mockPostUsecase is a func-field mock of PostUsecase that counts calls.
type mockPostUsecase struct {
	CreateFunc        func(userID, text string) (*entity.Post, error)
	GetFunc           func(postID string) (*entity.Post, error)
	DeleteFunc        func(userID, postID string) error
	LikeFunc          func(userID, postID string) ([]entity.Like, error)
	UnlikeFunc        func(userID, postID string) ([]entity.Like, error)
	AddCommentFunc    func(userID, postID, text string) ([]entity.Comment, error)
	RemoveCommentFunc func(userID, postID, commentID string) ([]entity.Comment, error)
	calls             int
}

func (m *mockPostUsecase) Create(_ context.Context, userID, text string) (*entity.Post, error) {
	m.calls++
	if m.CreateFunc != nil {
		return m.CreateFunc(userID, text)
	}
	return &entity.Post{ID: "p1", User: userID, Text: text}, nil
}

func (m *mockPostUsecase) List(context.Context) ([]entity.Post, error) {
	m.calls++
	return []entity.Post{}, nil
}

func (m *mockPostUsecase) Get(_ context.Context, postID string) (*entity.Post, error) {
	m.calls++
	if m.GetFunc != nil {
		return m.GetFunc(postID)
	}
	return nil, domain.ErrPostNotFound
}

func (m *mockPostUsecase) Delete(_ context.Context, userID, postID string) error {
	m.calls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(userID, postID)
	}
	return nil
}

func (m *mockPostUsecase) Like(_ context.Context, userID, postID string) ([]entity.Like, error) {
	m.calls++
	if m.LikeFunc != nil {
		return m.LikeFunc(userID, postID)
	}
	return []entity.Like{{User: userID}}, nil
}

func (m *mockPostUsecase) Unlike(_ context.Context, userID, postID string) ([]entity.Like, error) {
	m.calls++
	if m.UnlikeFunc != nil {
		return m.UnlikeFunc(userID, postID)
	}
	return []entity.Like{}, nil
}

func (m *mockPostUsecase) AddComment(_ context.Context, userID, postID, text string) ([]entity.Comment, error) {
	m.calls++
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(userID, postID, text)
	}
	return []entity.Comment{{ID: "c1", User: userID, Text: text}}, nil
}

func (m *mockPostUsecase) RemoveComment(_ context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	m.calls++
	if m.RemoveCommentFunc != nil {
		return m.RemoveCommentFunc(userID, postID, commentID)
	}
	return []entity.Comment{}, nil
}

func newRouter(uc PostUsecase) *gin.Engine {
	h := NewPostHandler(uc)
	r := gin.New()
	g := r.Group("/api/posts", jwtmw.AuthRequired(stubVerifier{}))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.PUT("/like/:id", h.Like)
	g.PUT("/unlike/:id", h.Unlike)
	g.POST("/comment/:id", h.AddComment)
	g.DELETE("/comment/:id/:comment_id", h.RemoveComment)
	return r
}

func send(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(jwtmw.HeaderToken, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messages(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	out := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		out = append(out, e.Msg)
	}
	return out
}

// TestPostRoutes_RequireToken はトークンなし・不正トークンでユースケースが呼ばれないことを検証します。
func TestPostRoutes_RequireToken(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodGet, "/api/posts"},
		{http.MethodGet, "/api/posts/p1"},
		{http.MethodDelete, "/api/posts/p1"},
		{http.MethodPut, "/api/posts/like/p1"},
		{http.MethodPut, "/api/posts/unlike/p1"},
		{http.MethodPost, "/api/posts/comment/p1"},
		{http.MethodDelete, "/api/posts/comment/p1/c1"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			uc := &mockPostUsecase{}
			r := newRouter(uc)

			w := send(r, rt.method, rt.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, []string{jwtmw.MsgMissingToken}, messages(t, w))

			w = send(r, rt.method, rt.path, "forged", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, []string{jwtmw.MsgInvalidToken}, messages(t, w))

			assert.Zero(t, uc.calls, "the usecase must not run without a valid token")
		})
	}
}

func TestPostHandler_Create(t *testing.T) {
	uc := &mockPostUsecase{CreateFunc: func(userID, text string) (*entity.Post, error) {
		if text == "" {
			return nil, validation.New("Text is required")
		}
		return &entity.Post{ID: "p1", User: userID, Text: text, Likes: []entity.Like{}, Comments: []entity.Comment{}}, nil
	}}
	r := newRouter(uc)

	w := send(r, http.MethodPost, "/api/posts", "good", `{"text":"hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var p map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "u1", p["user"])
	assert.Equal(t, "hello", p["text"])

	w = send(r, http.MethodPost, "/api/posts", "good", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Text is required"}, messages(t, w))
}

func TestPostHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		uc      *mockPostUsecase
		method  string
		path    string
		status  int
		message string
	}{
		{
			name:   "post not found",
			uc:     &mockPostUsecase{},
			method: http.MethodGet, path: "/api/posts/missing",
			status: http.StatusNotFound, message: MsgPostNotFound,
		},
		{
			name:   "delete by non-author",
			uc:     &mockPostUsecase{DeleteFunc: func(string, string) error { return domain.ErrNotAuthorized }},
			method: http.MethodDelete, path: "/api/posts/p1",
			status: http.StatusUnauthorized, message: MsgNotAuthorized,
		},
		{
			name:   "already liked",
			uc:     &mockPostUsecase{LikeFunc: func(string, string) ([]entity.Like, error) { return nil, domain.ErrAlreadyLiked }},
			method: http.MethodPut, path: "/api/posts/like/p1",
			status: http.StatusBadRequest, message: MsgAlreadyLiked,
		},
		{
			name:   "not yet liked",
			uc:     &mockPostUsecase{UnlikeFunc: func(string, string) ([]entity.Like, error) { return nil, domain.ErrNotLiked }},
			method: http.MethodPut, path: "/api/posts/unlike/p1",
			status: http.StatusBadRequest, message: MsgNotLiked,
		},
		{
			name: "comment not found",
			uc: &mockPostUsecase{RemoveCommentFunc: func(string, string, string) ([]entity.Comment, error) {
				return nil, domain.ErrCommentNotFound
			}},
			method: http.MethodDelete, path: "/api/posts/comment/p1/c9",
			status: http.StatusNotFound, message: MsgCommentNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(newRouter(tt.uc), tt.method, tt.path, "good", "")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, []string{tt.message}, messages(t, w))
		})
	}
}

func TestPostHandler_DeleteAndInteractions(t *testing.T) {
	var removed [3]string
	uc := &mockPostUsecase{
		DeleteFunc: func(userID, postID string) error {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "p1", postID)
			return nil
		},
		RemoveCommentFunc: func(userID, postID, commentID string) ([]entity.Comment, error) {
			removed = [3]string{userID, postID, commentID}
			return []entity.Comment{}, nil
		},
	}
	r := newRouter(uc)

	w := send(r, http.MethodDelete, "/api/posts/p1", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Post removed"}`, w.Body.String())

	w = send(r, http.MethodPut, "/api/posts/like/p1", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"user":"u1"}]`, w.Body.String())

	w = send(r, http.MethodPost, "/api/posts/comment/p1", "good", `{"text":"nice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var comments []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Equal(t, "nice", comments[0]["text"])

	w = send(r, http.MethodDelete, "/api/posts/comment/p1/c1", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [3]string{"u1", "p1", "c1"}, removed)
}
