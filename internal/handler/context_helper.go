package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grievance-desk/internal/middleware"
	"github.com/noah-isme/grievance-desk/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// principalFromContext resolves the acting principal for a request. The
// zero Principal signals an unauthenticated caller.
func principalFromContext(c *gin.Context) models.Principal {
	claims := claimsFromContext(c)
	if claims == nil {
		return models.Principal{}
	}
	return claims.Principal()
}
