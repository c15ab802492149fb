package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/accounts"
)

// @Summary  Register an account
// @Param    body  body  RegisterRequest  true  "account"
// @Success  201  {object}  domain.User
// @Failure  400  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "name, email and password are required")
			return
		}

		u, err := svcs.Accounts.Register(c.Request.Context(), accounts.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// @Summary  Sign in
// @Param    body  body  LoginRequest  true  "credentials"
// @Success  200  {object}  LoginResponse
// @Failure  401  {object}  ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password are required")
			return
		}

		sess, err := svcs.Accounts.Login(c.Request.Context(), req.Email, req.Password, req.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, LoginResponse{
			Token:     sess.Token,
			ExpiresAt: sess.ExpiresAt,
			User:      sess.User,
		})
	}
}
