package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// ProductHandler handles HTTP requests for the product catalog, including
// multipart image upload.
type ProductHandler struct {
	service       *services.ProductService
	validate      *validator.Validate
	uploadDir     string
	publicBaseURL string
}

// NewProductHandler creates a new ProductHandler. Uploaded images are written
// under uploadDir and referenced as publicBaseURL + "/images/<filename>".
func NewProductHandler(service *services.ProductService, uploadDir, publicBaseURL string) *ProductHandler {
	return &ProductHandler{
		service:       service,
		validate:      validator.New(),
		uploadDir:     uploadDir,
		publicBaseURL: publicBaseURL,
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// sit behind the bearer guard.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", authGuard, h.HandleCreateProduct)
	productRoutes.Put("/:id", authGuard, h.HandleReplaceProduct)
	productRoutes.Patch("/:id", authGuard, h.HandlePatchProduct)
	productRoutes.Delete("/:id", authGuard, h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from a multipart form. The image file
// is required; it is stored under the upload directory with a timestamp
// prefix to avoid filename collisions and served back at a stable URL.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.FieldErrors{"price": "Price must be a number"},
		})
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		log.Printf("Error saving uploaded image: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Product Not Created",
		})
	}

	product := models.Product{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Image:       fmt.Sprintf("%s/images/%s", h.publicBaseURL, filename),
		Category:    c.FormValue("category"),
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleReplaceProduct overwrites every field of an existing product.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	product.ID = productID

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	return c.JSON(product)
}

// ProductPatch carries the optional fields of a partial product update.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

// HandlePatchProduct applies the provided fields onto the stored product.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var patch ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing product patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}

	product, err := h.service.GetProductByID(productID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}

	if err := h.service.UpdateProduct(product); err != nil {
		log.Printf("Error patching product %s: %v", productID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

func sanitizeFilename(name string) string {
	return whitespacePattern.ReplaceAllString(filepath.Base(name), "_")
}
