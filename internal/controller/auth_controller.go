package controller

import (
	"errors"

	"vibestudy/internal/model"
	"vibestudy/internal/service"
	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest defines the registration payload
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"max=100"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// LoginRequest defines the login payload
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, "invalid credentials")
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// SignOut godoc
// @Summary Sign out
// @Description Tokens are stateless; clients drop the token. Kept for parity
// @Description with the client API surface.
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/signout [post]
// @Security ApiKeyAuth
func (c *AuthController) SignOut(ctx *gin.Context) {
	util.Success(ctx, nil)
}
