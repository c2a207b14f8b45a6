package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/isms/backend/internal/application/identity"
	"github.com/isms/backend/internal/domain/identity"
)

// PermissionHandler handles role permission matrix endpoints
type PermissionHandler struct {
	BaseHandler
	permissionService *identityapp.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissionService *identityapp.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// ListAll returns the full permission matrix grouped by role
// GET /api/v1/permissions
func (h *PermissionHandler) ListAll(c *gin.Context) {
	resp, err := h.permissionService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByRole returns the permission row of one role
// GET /api/v1/permissions/:role
func (h *PermissionHandler) ListByRole(c *gin.Context) {
	role := identity.Role(c.Param("role"))

	resp, err := h.permissionService.ListByRole(c.Request.Context(), role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateForRole replaces the permission cells of one role
// PUT /api/v1/permissions/:role
func (h *PermissionHandler) UpdateForRole(c *gin.Context) {
	role := identity.Role(c.Param("role"))

	var req identityapp.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.permissionService.UpdateForRole(c.Request.Context(), role, req); err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.permissionService.ListByRole(c.Request.Context(), role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reset restores the default permission matrix for every role
// POST /api/v1/permissions/reset
func (h *PermissionHandler) Reset(c *gin.Context) {
	if err := h.permissionService.ResetToDefaults(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.permissionService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
