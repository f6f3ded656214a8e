// Package admin serves operator login and private proof downloads.
package admin

import (
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/application/admin/usecases"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/utils"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ProofOpener reads stored proof files. Only the local store implements it;
// S3 proofs are linked directly.
type ProofOpener interface {
	Open(key string) (*os.File, error)
}

type Handler struct {
	loginUC usecases.LoginExecutor
	proofs  ProofOpener
	logger  logger.Interface
}

func NewHandler(loginUC usecases.LoginExecutor, proofs ProofOpener, logger logger.Interface) *Handler {
	return &Handler{
		loginUC: loginUC,
		proofs:  proofs,
		logger:  logger,
	}
}

// Login handles POST /api/admin/login
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", &LoginResponse{
		Email:       result.Email,
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
	})
}

// DownloadProof handles GET /api/admin/proofs/*path
// @Summary Download proof of payment
// @Tags Admin
// @Produce octet-stream
// @Security Bearer
// @Param path path string true "Proof path"
// @Success 200 {file} file
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/proofs/{path} [get]
func (h *Handler) DownloadProof(c *gin.Context) {
	if h.proofs == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "proof not found")
		return
	}

	key := "proofs" + c.Param("path")
	f, err := h.proofs.Open(key)
	if err != nil {
		if !os.IsNotExist(err) {
			h.logger.Warnw("failed to open proof", "key", key, "error", err)
		}
		utils.ErrorResponse(c, http.StatusNotFound, "proof not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		utils.ErrorResponse(c, http.StatusNotFound, "proof not found")
		return
	}

	h.logger.Debugw("serving proof", "key", key, "admin", middleware.AdminEmail(c))
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Cache-Control", "private, no-store")
	http.ServeContent(c.Writer, c.Request, path.Base(key), info.ModTime(), f)
}
