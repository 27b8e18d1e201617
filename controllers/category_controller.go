package controllers

import (
	"errors"
	"net/http"

	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CategoryController serves one tag table. Routes mount two instances:
// /categories for events and /venue-categories for venues.
type CategoryController struct {
	categories *repositories.CategoryRepository
	log        *logrus.Logger
}

func NewCategoryController(categories *repositories.CategoryRepository, log *logrus.Logger) *CategoryController {
	return &CategoryController{categories: categories, log: log}
}

type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	DisplayName string  `json:"displayName" binding:"required,max=255"`
	Color       string  `json:"color" binding:"hexcolor_or_name"`
	Icon        string  `json:"icon" binding:"max=64"`
	SortOrder   int     `json:"sortOrder" binding:"min=0"`
	IsActive    *bool   `json:"isActive"`
	Description *string `json:"description"`
}

func (r CategoryRequest) toModel() models.Category {
	category := models.Category{
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Color:       r.Color,
		Icon:        r.Icon,
		SortOrder:   r.SortOrder,
		IsActive:    true,
		Description: r.Description,
	}
	if r.IsActive != nil {
		category.IsActive = *r.IsActive
	}
	return category
}

type ReorderRequest struct {
	CategoryOrders []models.CategoryOrder `json:"categoryOrders" binding:"required,min=1,dive"`
}

type MoveRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

func (cc *CategoryController) respond(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, repositories.ErrCategoryExists):
		utils.SendError(c, http.StatusConflict, "Bu isimde bir kategori zaten var")
	case errors.Is(err, repositories.ErrInvalidOrder), errors.Is(err, repositories.ErrUnknownCategory):
		utils.SendValidationError(c, &utils.ValidationError{Field: "categoryOrders", Message: "Sıralama listesi geçersiz ya da bilinmeyen bir kategori içeriyor"})
	case errors.Is(err, repositories.ErrInvalidDirection):
		utils.SendValidationError(c, &utils.ValidationError{Field: "direction", Message: "Yön 'up' veya 'down' olmalı"})
	default:
		respondStoreError(c, cc.log, err, "Kategori bulunamadı", op)
	}
}

// GetCategories lists active categories; ?all=true includes inactive ones.
func (cc *CategoryController) GetCategories(c *gin.Context) {
	all := queryBool(c, "all")
	categories, err := cc.categories.List(c.Request.Context(), all == nil || !*all)
	if err != nil {
		cc.respond(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := cc.categories.Get(c.Request.Context(), id)
	if err != nil {
		cc.respond(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	category := req.toModel()
	if err := cc.categories.Create(c.Request.Context(), &category); err != nil {
		cc.respond(c, err, "create category")
		return
	}
	cc.log.WithFields(logrus.Fields{"table": cc.categories.Table(), "category_id": category.ID}).Info("category created")
	c.JSON(http.StatusCreated, gin.H{"message": "Kategori oluşturuldu", "category": category})
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	category, err := cc.categories.Update(c.Request.Context(), id, req.toModel(), req.IsActive)
	if err != nil {
		cc.respond(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kategori güncellendi", "category": category})
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cc.categories.Delete(c.Request.Context(), id); err != nil {
		cc.respond(c, err, "delete category")
		return
	}
	cc.log.WithFields(logrus.Fields{"table": cc.categories.Table(), "category_id": id}).Info("category deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Kategori silindi"})
}

// ReorderCategories applies the order of the submitted list as the new sort order.
func (cc *CategoryController) ReorderCategories(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	ids := make([]uint, len(req.CategoryOrders))
	for i, o := range req.CategoryOrders {
		ids[i] = o.ID
	}
	if err := cc.categories.Reorder(c.Request.Context(), ids); err != nil {
		cc.respond(c, err, "reorder categories")
		return
	}

	categories, err := cc.categories.List(c.Request.Context(), false)
	if err != nil {
		cc.respond(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kategori sıralaması güncellendi", "categories": categories})
}

func (cc *CategoryController) MoveCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	categories, err := cc.categories.Move(c.Request.Context(), id, req.Direction)
	if err != nil {
		cc.respond(c, err, "move category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kategori taşındı", "categories": categories})
}
