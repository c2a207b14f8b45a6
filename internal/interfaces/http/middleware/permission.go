package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/isms/backend/internal/application/identity"
	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/interfaces/http/dto"
)

// PermissionChecker resolves the capability a role holds on a module
type PermissionChecker interface {
	Check(c *gin.Context, role identity.Role, module identity.Module) (identity.Capability, error)
}

// serviceChecker adapts PermissionService to the gin request context
type serviceChecker struct {
	service *identityapp.PermissionService
}

func (s serviceChecker) Check(c *gin.Context, role identity.Role, module identity.Module) (identity.Capability, error) {
	return s.service.Check(c.Request.Context(), role, module)
}

// RequireModule gates a route group behind the permission matrix. The
// capability required follows the HTTP method: GET needs read, DELETE
// needs delete, everything else needs write.
func RequireModule(service *identityapp.PermissionService, module identity.Module, log *zap.Logger) gin.HandlerFunc {
	return requireModule(serviceChecker{service: service}, module, log)
}

func requireModule(checker PermissionChecker, module identity.Module, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := GetJWTRole(c)
		if roleStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		role := identity.Role(roleStr)
		capability, err := checker.Check(c, role, module)
		if err != nil {
			if log != nil {
				log.Error("permission check failed",
					zap.String("role", roleStr),
					zap.String("module", string(module)),
					zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Permission check failed"))
			return
		}

		if !allows(capability, c.Request.Method) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "You do not have permission to perform this action"))
			return
		}

		c.Next()
	}
}

func allows(capability identity.Capability, method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead:
		return capability.CanRead
	case http.MethodDelete:
		return capability.CanDelete
	default:
		return capability.CanWrite
	}
}
