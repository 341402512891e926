package handler

import (
	"errors"

	"github.com/abhishek622/prepai/internal/repository"
	"github.com/abhishek622/prepai/pkg"
	"github.com/abhishek622/prepai/pkg/model"
	"github.com/abhishek622/prepai/pkg/response"
	"github.com/gin-gonic/gin"
)

// SignUp creates a new user and returns a token
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("signup bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to hash password", "err", err)
		response.InternalError(c, "")
		return
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
	}

	if err := h.Repository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Conflict(c, "email already registered")
			return
		}
		h.Logger.Sugar().Errorw("user create failed", "email", req.Email, "err", err)
		response.InternalError(c, "could not create user")
		return
	}

	token, claims, err := h.TokenMaker.CreateToken(user.UserID, user.Email, h.JwtTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("token create failed", "err", err)
		response.InternalError(c, "")
		return
	}

	response.Created(c, model.TokenRes{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Unix(),
		User:        model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email},
	})
}

// Login verifies credentials and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("login bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		h.Logger.Sugar().Warnw("login user not found", "email", req.Email, "err", err)
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.Logger.Sugar().Warnw("login password mismatch", "email", req.Email)
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, claims, err := h.TokenMaker.CreateToken(user.UserID, user.Email, h.JwtTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("token create failed", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, model.TokenRes{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Unix(),
		User:        model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email},
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Repository.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}

	response.OK(c, model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email})
}
