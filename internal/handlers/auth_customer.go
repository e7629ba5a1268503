package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"convenience-store/internal/middleware"
	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

type RegisterRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	Name     string `form:"name" binding:"required"`
	Phone    string `form:"phone"`
	Address  string `form:"address"`
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role"`
}

func Register(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/register"

		var req RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		customer, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "registration successful",
			"user":    customer,
		})
	}
}

// Login authenticates against the customer or the admin accounts, chosen
// by the role field, and opens a session.
func Login(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/login"

		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		role := models.ParseRole(req.Role)
		principal, err := auth.Login(c.Request.Context(), req.Email, req.Password, role)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		sessionID, err := auth.StartSession(c.Request.Context(), *principal)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		middleware.Logger(c).Info("Login succeeded",
			zap.String("principal_id", principal.ID.Hex()),
			zap.String("role", string(principal.Role)),
		)
		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"user":       principal,
		})
	}
}

func Logout(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/logout"

		token := middleware.SessionToken(c)
		if token == "" {
			respondWithError(c, http.StatusUnauthorized, route, "missing session")
			return
		}
		if err := auth.Logout(c.Request.Context(), token); err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
