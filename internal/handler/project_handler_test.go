package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitcrm/internal/middleware"
	"github.com/hitoshi/gitcrm/internal/model"
)

// --- モック ---

type mockProjectService struct {
	addFn     func(ctx context.Context, userID int64, path string) (*model.Project, error)
	listFn    func(ctx context.Context, userID int64) ([]*model.Project, error)
	getFn     func(ctx context.Context, userID, projectID int64) (*model.Project, error)
	refreshFn func(ctx context.Context, userID, projectID int64) (*model.Project, error)
	deleteFn  func(ctx context.Context, userID, projectID int64) error
}

func (m *mockProjectService) Add(ctx context.Context, userID int64, path string) (*model.Project, error) {
	return m.addFn(ctx, userID, path)
}
func (m *mockProjectService) List(ctx context.Context, userID int64) ([]*model.Project, error) {
	return m.listFn(ctx, userID)
}
func (m *mockProjectService) Get(ctx context.Context, userID, projectID int64) (*model.Project, error) {
	return m.getFn(ctx, userID, projectID)
}
func (m *mockProjectService) Refresh(ctx context.Context, userID, projectID int64) (*model.Project, error) {
	return m.refreshFn(ctx, userID, projectID)
}
func (m *mockProjectService) Delete(ctx context.Context, userID, projectID int64) error {
	return m.deleteFn(ctx, userID, projectID)
}

// testProjectRouter はIDパラメータ付きルートをテストするためのルーターを構築する。
// 全リクエストに固定ユーザーの認証情報を注入する。
func testProjectRouter(svc ProjectServiceInterface, userID int64) http.Handler {
	h := NewProjectHandler(svc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.ContextWithIdentity(req.Context(), &model.Identity{UserID: userID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/projects", h.List)
	r.Post("/projects", h.Create)
	r.Get("/projects/{id}", h.Get)
	r.Put("/projects/{id}", h.Update)
	r.Delete("/projects/{id}", h.Delete)
	return r
}

// --- テスト ---

// TestProjectHandler_List は一覧が件数付きで返り、空でも空配列になることを検証する。
func TestProjectHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		projects  []*model.Project
		wantCount int
	}{
		{"2件", []*model.Project{{ID: 1, UserID: 1}, {ID: 2, UserID: 1}}, 2},
		{"0件", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockProjectService{
				listFn: func(ctx context.Context, userID int64) ([]*model.Project, error) {
					return tt.projects, nil
				},
			}
			router := testProjectRouter(svc, 1)

			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var body struct {
				Projects []json.RawMessage `json:"projects"`
				Count    int               `json:"count"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", body.Count, tt.wantCount)
			}
			if body.Projects == nil {
				t.Error("projects should be an empty array, not null")
			}
		})
	}
}

// TestProjectHandler_Create_Success は登録成功が201でプロジェクトを返すことを検証する。
func TestProjectHandler_Create_Success(t *testing.T) {
	svc := &mockProjectService{
		addFn: func(ctx context.Context, userID int64, path string) (*model.Project, error) {
			if path != "golang/go" {
				t.Errorf("path = %q", path)
			}
			return &model.Project{ID: 10, UserID: userID, Owner: "golang", Name: "go", Stars: 100}, nil
		},
	}
	router := testProjectRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"repositoryPath":"golang/go"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var body struct {
		Project struct {
			ID    int64 `json:"id"`
			Stars int   `json:"stars"`
		} `json:"project"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Project.ID != 10 || body.Project.Stars != 100 {
		t.Errorf("project = %+v", body.Project)
	}
}

// TestProjectHandler_Create_ErrorMapping はサービス層のエラーがHTTPステータスに
// マッピングされることを検証する。
func TestProjectHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"パス不正", model.NewInvalidPathError("形式不正"), http.StatusBadRequest},
		{"重複", model.NewDuplicateProjectError(), http.StatusConflict},
		{"GitHub上に不在", model.NewRepoNotFoundError("a", "b"), http.StatusNotFound},
		{"レート制限", model.NewRateLimitedError(), http.StatusTooManyRequests},
		{"上流5xx", model.NewUpstreamUnavailableError(), http.StatusInternalServerError},
		{"ゲートウェイ失敗", model.NewGatewayError("timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockProjectService{
				addFn: func(ctx context.Context, userID int64, path string) (*model.Project, error) {
					return nil, tt.err
				},
			}
			router := testProjectRouter(svc, 1)

			req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"repositoryPath":"golang/go"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body apiErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

// TestProjectHandler_Create_MissingPath はrepositoryPath未指定が400になることを検証する。
// キー名の不一致で登録できなくならないよう、別名キーのケースも含める。
func TestProjectHandler_Create_MissingPath(t *testing.T) {
	for _, body := range []string{`{}`, `{"path":"golang/go"}`} {
		svc := &mockProjectService{
			addFn: func(ctx context.Context, userID int64, path string) (*model.Project, error) {
				t.Fatal("service should not be called without repositoryPath")
				return nil, nil
			},
		}
		router := testProjectRouter(svc, 1)

		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body=%s: status = %d, want 400", body, w.Code)
		}
	}
}

// TestProjectHandler_Get_Success は詳細がprojectキーでラップされて返ることを検証する。
func TestProjectHandler_Get_Success(t *testing.T) {
	svc := &mockProjectService{
		getFn: func(ctx context.Context, userID, projectID int64) (*model.Project, error) {
			return &model.Project{ID: projectID, UserID: userID, Owner: "golang", Name: "go"}, nil
		},
	}
	router := testProjectRouter(svc, 1)

	req := httptest.NewRequest(http.MethodGet, "/projects/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Project struct {
			ID    int64  `json:"id"`
			Owner string `json:"owner"`
		} `json:"project"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Project.ID != 10 || body.Project.Owner != "golang" {
		t.Errorf("project = %+v", body.Project)
	}
}

// TestProjectHandler_Get_InvalidID は数値でないIDが400になることを検証する。
func TestProjectHandler_Get_InvalidID(t *testing.T) {
	svc := &mockProjectService{
		getFn: func(ctx context.Context, userID, projectID int64) (*model.Project, error) {
			t.Fatal("service should not be called for invalid id")
			return nil, nil
		},
	}
	router := testProjectRouter(svc, 1)

	for _, id := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/projects/"+id, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("id=%q: status = %d, want 400", id, w.Code)
		}
	}
}

// TestProjectHandler_Update_Refresh はPUTがメトリクス更新後のプロジェクトを
// 返すことを検証する。
func TestProjectHandler_Update_Refresh(t *testing.T) {
	svc := &mockProjectService{
		refreshFn: func(ctx context.Context, userID, projectID int64) (*model.Project, error) {
			if projectID != 10 {
				t.Errorf("projectID = %d, want 10", projectID)
			}
			return &model.Project{ID: projectID, UserID: userID, Stars: 500}, nil
		},
	}
	router := testProjectRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPut, "/projects/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Project struct {
			Stars int `json:"stars"`
		} `json:"project"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Project.Stars != 500 {
		t.Errorf("stars = %d, want 500", body.Project.Stars)
	}
}

// TestProjectHandler_Delete_NotFound は存在しないプロジェクトの削除が404になることを検証する。
func TestProjectHandler_Delete_NotFound(t *testing.T) {
	svc := &mockProjectService{
		deleteFn: func(ctx context.Context, userID, projectID int64) error {
			return model.NewProjectNotFoundError()
		},
	}
	router := testProjectRouter(svc, 1)

	req := httptest.NewRequest(http.MethodDelete, "/projects/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
