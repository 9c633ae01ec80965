package middleware

import (
	"context"

	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// AuthContextMiddleware resolves the owner id for the request. Until real
// authentication lands this takes the X-User-ID header, falling back to the
// configured default owner.
func AuthContextMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(types.HeaderUserID)
		if userID == "" {
			userID = cfg.Auth.DefaultUserID
		}
		if userID == "" {
			userID = types.DefaultUserID
		}

		ctx := types.SetUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
