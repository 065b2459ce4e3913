package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/service"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/internal/storage"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type ProductController struct {
	productService service.ProductService
	images         storage.ImageStorage
}

// NewProductController accepts a nil images storage; UploadImage is then
// not routed
func NewProductController(productService service.ProductService, images storage.ImageStorage) *ProductController {
	return &ProductController{
		productService: productService,
		images:         images,
	}
}

// ImagesEnabled reports whether image uploads can be served
func (ctrl *ProductController) ImagesEnabled() bool {
	return ctrl.images != nil
}

// GetAll handles listing products with optional name filter and paging
// GET /api/v2/products?pattern=&quantity=&offset=
func (ctrl *ProductController) GetAll(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	products, err := ctrl.productService.GetAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfProducts(products))
}

// GET /api/v2/products/:id
func (ctrl *ProductController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfProduct(product))
}

// POST /api/v2/products
func (ctrl *ProductController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.ProductDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0

	id, err := ctrl.productService.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info("Product created", logger.Fields{
		"product_id": id,
		"name":       req.Name,
	})
	c.JSON(http.StatusCreated, id)
}

// PATCH /api/v2/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	updatedID, err := ctrl.productService.Update(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedID)
}

// DELETE /api/v2/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Product deleted", logger.Fields{"product_id": id})
	c.Status(http.StatusNoContent)
}

// UploadImage issues a presigned PUT url for the product image and stores
// the resulting public url on the product
// POST /api/v2/products/:id/image
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request body")
		return
	}
	if err := storage.ValidateContentType(req.ContentType, storage.AllowedImageTypes); err != nil {
		log.Warn("Invalid content type", logger.Fields{"content_type": req.ContentType})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}
	if fields := dto.Validate(&req); len(fields) > 0 {
		apperrors.RespondWithFields(c, http.StatusBadRequest, fields)
		return
	}

	ctx := c.Request.Context()
	if _, err := ctrl.productService.GetByID(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	upload, err := ctrl.images.PresignUpload(ctx, fmt.Sprintf("products/%d", id), req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, logger.Fields{"product_id": id})
		apperrors.InternalError(c, "failed to generate upload URL")
		return
	}

	if err := ctrl.productService.SetImage(ctx, id, upload.FileURL); err != nil {
		respondError(c, err)
		return
	}

	log.Info("Product image upload issued", logger.Fields{
		"product_id": id,
		"key":        upload.Key,
	})
	c.JSON(http.StatusOK, dto.ImageUploadResponse{
		UploadURL: upload.UploadURL,
		FileURL:   upload.FileURL,
		Key:       upload.Key,
	})
}
