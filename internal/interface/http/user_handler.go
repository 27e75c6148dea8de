package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/pkg/apperror"
	"github.com/oksasatya/mesto-api/pkg/response"
)

const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type userParams struct {
	UserID string `uri:"userId" binding:"required,objectid"`
}

type updateProfileRequest struct {
	Name  string `json:"name" binding:"required,username"`
	About string `json:"about" binding:"required,username"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,link"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"required,max=100"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUsers(users), "users", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	var p userParams
	if err := c.ShouldBindUri(&p); err != nil {
		failBinding(c, err)
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "user", nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "user", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), currentUserID(c), req.Name, req.About)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile updated", nil)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	u, err := h.Svc.UpdateAvatar(c.Request.Context(), currentUserID(c), req.Avatar)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "avatar updated", nil)
}

// UploadAvatar accepts a multipart "avatar" image and stores it in object storage.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		fail(c, apperror.BadRequest("avatar file is required"))
		return
	}
	if fh.Size > maxAvatarBytes {
		fail(c, apperror.BadRequest("avatar must be at most 5MB"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		fail(c, apperror.BadRequest("avatar file is empty"))
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		fail(c, apperror.BadRequest("avatar must be an image"))
		return
	}

	body := io.MultiReader(bytes.NewReader(head[:n]), f)
	u, err := h.Svc.UploadAvatar(c.Request.Context(), currentUserID(c), body, fh.Filename, contentType)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "avatar uploaded", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		failBinding(c, err)
		return
	}
	users, err := h.Svc.SearchUsers(c.Request.Context(), strings.TrimSpace(q.Q), q.Size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUsers(users), "users", nil)
}
