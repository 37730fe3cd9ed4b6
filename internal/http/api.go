package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"adboard/internal/auth"
	"adboard/internal/graph"
)

// Handler wires HTTP routes to the operation executor.
type Handler struct {
	executor *graph.Executor
	issuer   *auth.Issuer
	logger   *logrus.Logger
}

func NewHandler(executor *graph.Executor, issuer *auth.Issuer, logger *logrus.Logger) *Handler {
	return &Handler{
		executor: executor,
		issuer:   issuer,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/query", h.executeQuery)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type queryRequest struct {
	Operation string          `json:"operation" binding:"required"`
	Variables graph.Variables `json:"variables"`
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// executeQuery runs one operation. Domain failures arrive inside the payload
// and go out as 200; only infrastructure faults and transport-level problems
// map to error statuses.
func (h *Handler) executeQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.callerFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), graph.Request{
		Operation: req.Operation,
		Variables: req.Variables,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrUnknownOperation), errors.Is(err, graph.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, graph.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		default:
			// No domain detail leaves this boundary.
			h.logger.WithField("operation", req.Operation).Errorf("execute: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	defer result.Close()

	c.JSON(http.StatusOK, gin.H{"data": result.Data})
}

// callerFromHeader resolves the bearer token, if any, to a user id. An absent
// header is anonymous, not an error; per-operation auth is the schema's call.
func (h *Handler) callerFromHeader(c *gin.Context) (int64, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return 0, nil
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || strings.TrimSpace(token) == "" {
		return 0, errors.New("malformed authorization header")
	}
	return h.issuer.Parse(strings.TrimSpace(token))
}
