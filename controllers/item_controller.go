package controllers

import (
	"errors"
	"famlist/constants"
	"famlist/dto"
	"famlist/services"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IItemController interface {
	FindAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	DeleteAllDone(ctx *gin.Context)
}

type ItemController struct {
	service services.IItemService
}

func NewItemController(service services.IItemService) IItemController {
	return &ItemController{service: service}
}

func (c *ItemController) FindAll(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	items, err := c.service.FindAll(user)
	if err != nil {
		log.Printf("List items error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": items})
}

func (c *ItemController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input dto.CreateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	newItem, err := c.service.Create(user, input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"data": newItem})
}

func (c *ItemController) Update(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input dto.UpdateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	updatedItem, err := c.service.Update(user, ctx.Param("id"), input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": updatedItem})
}

func (c *ItemController) Delete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(user, ctx.Param("id")); err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (c *ItemController) DeleteAllDone(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteAllDone(user); err != nil {
		log.Printf("Delete done items error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}
	ctx.Status(http.StatusOK)
}

func (c *ItemController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotInFamily):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrItemNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("Item error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
	}
}
