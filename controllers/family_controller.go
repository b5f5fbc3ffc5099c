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

type IFamilyController interface {
	Create(ctx *gin.Context)
	Join(ctx *gin.Context)
	Leave(ctx *gin.Context)
	Members(ctx *gin.Context)
}

type FamilyController struct {
	service services.IFamilyService
}

func NewFamilyController(service services.IFamilyService) IFamilyController {
	return &FamilyController{service: service}
}

func currentUser(ctx *gin.Context) (*models.User, bool) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return nil, false
	}
	return user.(*models.User), true
}

func (c *FamilyController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input dto.CreateFamilyInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	family, err := c.service.Create(user, input.Name)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"data": family})
}

func (c *FamilyController) Join(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input dto.JoinFamilyInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	family, err := c.service.Join(user, input.Code, input.Name)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": family})
}

func (c *FamilyController) Leave(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.service.Leave(user); err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (c *FamilyController) Members(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	members, err := c.service.Members(user)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": members})
}

func (c *FamilyController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyInFamily):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotInFamily):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFamilyNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNameMismatch):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("Family error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
	}
}
