package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devsync89/jobportal/internal/config"
	"github.com/devsync89/jobportal/internal/domain/user"
	"github.com/devsync89/jobportal/internal/http/middlewares"
	"github.com/devsync89/jobportal/internal/utils"
	"github.com/gin-gonic/gin"
)

type UsersRepository interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	UpdateRole(ctx context.Context, id string, role user.Role) (user.User, error)
	UpdateProfile(ctx context.Context, id string, name, photo string) (user.User, error)
}

type UsersHandler struct {
	repo UsersRepository
}

func NewUsersHandler(repo UsersRepository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

// GET /users  (admin)
func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	users, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

// PUT /users/:id/role  (admin assigns roles; pending accounts get activated here)
func (h *UsersHandler) UpdateRole(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "user id must be a valid UUID", nil)
		return
	}

	var req user.UpdateRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.repo.UpdateRole(cctx, id, req.Role)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// GET /users/me/profile
func (h *UsersHandler) MyProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.repo.GetByID(cctx, userID)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// PUT /users/me/profile
func (h *UsersHandler) UpdateMyProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req user.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.repo.UpdateProfile(cctx, userID, req.Name, req.Photo)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, u)
}
