package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := initializers.DB.Order("name").Find(&categories).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func UpdateCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse category id", err)
		return
	}

	var category models.Category
	err = initializers.DB.First(&category, categoryId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch category", err)
		return
	}

	var input models.Category
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category.Name = input.Name
	category.Slug = input.Slug
	if err := initializers.DB.Save(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse category id", err)
		return
	}

	if result := initializers.DB.Delete(&models.Category{}, categoryId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
