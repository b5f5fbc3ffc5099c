package controllers

import (
	"errors"
	"famlist/constants"
	"famlist/dto"
	"famlist/models"
	"famlist/services"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IAuthController interface {
	Signup(ctx *gin.Context)
	Login(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
}

func NewAuthController(service services.IAuthService) IAuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var input dto.SignupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.service.Signup(input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Signup error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"data": toLoginResponse(user)})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.service.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		log.Printf("Login error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": toLoginResponse(user)})
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": toLoginResponse(user.(*models.User))})
}

func toLoginResponse(user *models.User) dto.LoginResponse {
	return dto.LoginResponse{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		FamilyID: user.FamilyID,
	}
}
