package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/arslan3804/food-project/initializers"
	"github.com/arslan3804/food-project/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type productInput struct {
	Name        string          `json:"name" binding:"required"`
	Slug        string          `json:"slug" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
	Category    string          `json:"category"`
	Ingredients datatypes.JSON  `json:"ingredients"`
}

func resolveCategorySlug(slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	var category models.Category
	if err := initializers.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category.ID, nil
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if input.Price.IsNegative() {
		respondWithError(ctx, http.StatusBadRequest, "Price must not be negative", nil)
		return
	}

	categoryID, err := resolveCategorySlug(input.Category)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unknown category", nil)
		return
	}

	product := models.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		IsAvailable: true,
		CategoryID:  categoryID,
		Ingredients: input.Ingredients,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	applyFilters := func(query *gorm.DB) (*gorm.DB, error) {
		if search := ctx.Query("search"); search != "" {
			query = query.Where("name LIKE ?", "%"+search+"%")
		}
		if categorySlug := ctx.Query("category"); categorySlug != "" {
			categoryID, err := resolveCategorySlug(categorySlug)
			if err != nil {
				return nil, err
			}
			query = query.Where("category_id = ?", categoryID)
		}
		if available := ctx.Query("available"); available != "" {
			isAvailable, err := strconv.ParseBool(available)
			if err != nil {
				return nil, err
			}
			query = query.Where("is_available = ?", isAvailable)
		}
		return query, nil
	}

	query, err := applyFilters(initializers.DB.Preload("Images").Preload("Category"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product filters", err)
		return
	}

	var products []models.Product
	result := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	countQuery, _ := applyFilters(initializers.DB.Model(&models.Product{}))
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse product id", err)
		return
	}

	var product models.Product
	err = initializers.DB.Preload("Images").Preload("Category").First(&product, productId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func GetProductsByCategory(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var category models.Category
	if err := initializers.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		return
	}

	var products []models.Product
	err := initializers.DB.
		Preload("Images").
		Where("category_id = ?", category.ID).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse product id", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if input.Price.IsNegative() {
		respondWithError(ctx, http.StatusBadRequest, "Price must not be negative", nil)
		return
	}

	categoryID, err := resolveCategorySlug(input.Category)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unknown category", nil)
		return
	}

	product.Name = input.Name
	product.Slug = input.Slug
	product.Description = input.Description
	product.Price = input.Price
	product.CategoryID = categoryID
	product.Ingredients = input.Ingredients
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := initializers.DB.Save(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product together with the cart lines and
// reviews that reference it, so no cart is left holding a line its
// owner can no longer resolve.
func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse product id", err)
		return
	}

	tx := initializers.DB.Begin()
	if tx.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to start transaction", tx.Error)
		return
	}

	if err := tx.Unscoped().Where("product_id = ?", productId).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	if err := tx.Unscoped().Where("product_id = ?", productId).Delete(&models.Review{}).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	if err := tx.Delete(&models.Product{}, productId).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// Product image handlers. Images are URL records; file storage lives
// elsewhere.
func GetProductImages(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse product id", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", err)
		}
		return
	}

	var images []models.ProductImage
	if err := initializers.DB.Where("product_id = ?", product.ID).Find(&images).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product images", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"images": images})
}

func CreateProductImage(ctx *gin.Context) {
	var image models.ProductImage
	if err := ctx.ShouldBindJSON(&image); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, image.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	if err := initializers.DB.Create(&image).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product image", err)
		return
	}

	ctx.JSON(http.StatusCreated, image)
}

func DeleteProductImage(ctx *gin.Context) {
	imageId, err := strconv.Atoi(ctx.Param("imageId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse image id", err)
		return
	}

	if result := initializers.DB.Delete(&models.ProductImage{}, imageId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product image", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product image deleted successfully."})
}
