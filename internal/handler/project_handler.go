package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitcrm/internal/middleware"
	"github.com/hitoshi/gitcrm/internal/model"
)

// ProjectServiceInterface はプロジェクトハンドラーが必要とするサービスインターフェース。
type ProjectServiceInterface interface {
	// Add は "owner/repo" パスからリポジトリを取得し、スナップショットとして登録する。
	Add(ctx context.Context, userID int64, path string) (*model.Project, error)
	// List はユーザーのプロジェクト一覧を返す。
	List(ctx context.Context, userID int64) ([]*model.Project, error)
	// Get は指定プロジェクトを取得する。
	Get(ctx context.Context, userID, projectID int64) (*model.Project, error)
	// Refresh はスナップショットのメトリクスをGitHubの現在値で上書きする。
	Refresh(ctx context.Context, userID, projectID int64) (*model.Project, error)
	// Delete は指定プロジェクトを削除する。
	Delete(ctx context.Context, userID, projectID int64) error
}

// ProjectHandler はプロジェクト管理のHTTPハンドラー。
// すべてのエンドポイントは認証ミドルウェアの背後に配置される。
type ProjectHandler struct {
	service ProjectServiceInterface
}

// NewProjectHandler はProjectHandlerを生成する。
func NewProjectHandler(service ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// createProjectRequest はプロジェクト登録リクエストのボディ。
type createProjectRequest struct {
	RepositoryPath string `json:"repositoryPath"`
}

// projectListResponse はプロジェクト一覧のレスポンス。
type projectListResponse struct {
	Projects []projectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// projectMessageResponse は登録・更新成功時のレスポンス。
type projectMessageResponse struct {
	Message string          `json:"message"`
	Project projectResponse `json:"project"`
}

// messageResponse はメッセージのみのレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// projectDetailResponse はプロジェクト詳細のレスポンス。
type projectDetailResponse struct {
	Project projectResponse `json:"project"`
}

// identityOrFail はコンテキストから認証済みユーザー情報を取得する。
// 認証ミドルウェアを通過していない場合は401を書き込みok=falseを返す。
func identityOrFail(w http.ResponseWriter, r *http.Request) (*model.Identity, bool) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return nil, false
	}
	return identity, true
}

// projectIDOrFail はURLパラメータからプロジェクトIDを解析する。
// 正の整数でない場合は400を書き込みok=falseを返す。
func projectIDOrFail(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := parseIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(
			[]string{"idは正の整数である必要があります"},
		))
		return 0, false
	}
	return id, true
}

// List はユーザーのプロジェクト一覧を返す。
// GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	projects, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 空でもnullではなく空配列を返す
	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, projectListResponse{
		Projects: items,
		Count:    len(items),
	})
}

// Create はリポジトリパスからプロジェクトを登録する。
// POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(
			[]string{"リクエストボディが正しいJSON形式ではありません"},
		))
		return
	}

	if req.RepositoryPath == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(
			[]string{"repositoryPathは必須です"},
		))
		return
	}

	project, err := h.service.Add(r.Context(), identity.UserID, req.RepositoryPath)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, projectMessageResponse{
		Message: "プロジェクトを登録しました。",
		Project: toProjectResponse(project),
	})
}

// Get はプロジェクト詳細を返す。
// GET /projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	projectID, ok := projectIDOrFail(w, r)
	if !ok {
		return
	}

	project, err := h.service.Get(r.Context(), identity.UserID, projectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projectDetailResponse{Project: toProjectResponse(project)})
}

// Update はプロジェクトのメトリクスをGitHubの現在値で更新する。
// PUT /projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	projectID, ok := projectIDOrFail(w, r)
	if !ok {
		return
	}

	project, err := h.service.Refresh(r.Context(), identity.UserID, projectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projectMessageResponse{
		Message: "プロジェクトを更新しました。",
		Project: toProjectResponse(project),
	})
}

// Delete はプロジェクトを削除する。
// DELETE /projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrFail(w, r)
	if !ok {
		return
	}

	projectID, ok := projectIDOrFail(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, projectID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "プロジェクトを削除しました。",
	})
}
