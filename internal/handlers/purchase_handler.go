package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"achats/internal/apperrors"
	"achats/internal/services"
	"achats/pkg/validator"
)

// PurchaseHandler handles HTTP requests for purchases and the two derived
// reports.
type PurchaseHandler struct {
	service       *services.PurchaseService
	reportService *services.ReportService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(service *services.PurchaseService, reportService *services.ReportService) *PurchaseHandler {
	return &PurchaseHandler{
		service:       service,
		reportService: reportService,
	}
}

// RegisterRoutes registers the purchase routes with the Fiber app. The report
// routes come before /:id so they are not captured as IDs.
func (h *PurchaseHandler) RegisterRoutes(router fiber.Router) {
	purchaseRoutes := router.Group("/purchases")
	purchaseRoutes.Get("/top_product", h.HandleTopProduct)
	purchaseRoutes.Get("/bilan", h.HandleBilan)
	purchaseRoutes.Get("/", h.HandleGetPurchases)
	purchaseRoutes.Post("/", h.HandleCreatePurchase)
	purchaseRoutes.Get("/:id", h.HandleGetPurchaseByID)
	purchaseRoutes.Put("/:id", h.HandleUpdatePurchase)
	purchaseRoutes.Patch("/:id", h.HandleUpdatePurchase)
	purchaseRoutes.Delete("/:id", h.HandleDeletePurchase)
}

type createPurchaseRequest struct {
	ProductName string           `json:"productName"`
	ProductID   string           `json:"productId"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Date        string           `json:"date" validate:"required"`
}

type updatePurchaseRequest struct {
	ProductID *string          `json:"productId"`
	Price     *decimal.Decimal `json:"price"`
	Date      *string          `json:"date"`
}

// HandleGetPurchases retrieves all purchases, most recent first.
func (h *PurchaseHandler) HandleGetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.GetAllPurchases()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponses(purchases))
}

// HandleGetPurchaseByID retrieves a single purchase by its ID.
func (h *PurchaseHandler) HandleGetPurchaseByID(c *fiber.Ctx) error {
	purchase, err := h.service.GetPurchaseByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(purchase))
}

// HandleCreatePurchase records a purchase. The body carries either a
// productName, which resolves or creates the product, or a productId
// referencing an existing product. productName wins when both are present.
func (h *PurchaseHandler) HandleCreatePurchase(c *fiber.Ctx) error {
	var req createPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if failures := validator.ValidateStruct(req); failures != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  failures,
		})
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		return writeError(c, err)
	}

	switch {
	case req.ProductName != "":
		purchase, err := h.service.CreateByProductName(req.ProductName, *req.Price, date)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(purchase))
	case req.ProductID != "":
		purchase, err := h.service.CreateByProductID(req.ProductID, *req.Price, date)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(purchase))
	default:
		return writeError(c, apperrors.NewValidationError("productName", "either productName or productId is required"))
	}
}

// HandleUpdatePurchase applies the provided fields to an existing purchase.
func (h *PurchaseHandler) HandleUpdatePurchase(c *fiber.Ctx) error {
	var req updatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date, "date")
		if err != nil {
			return writeError(c, err)
		}
		date = &parsed
	}

	purchase, err := h.service.UpdatePurchase(c.Params("id"), req.ProductID, req.Price, date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(purchase))
}

// HandleDeletePurchase deletes a purchase by its ID.
func (h *PurchaseHandler) HandleDeletePurchase(c *fiber.Ctx) error {
	if err := h.service.DeletePurchase(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleTopProduct reports the most purchased product(s) within the optional
// inclusive [start, end] window.
func (h *PurchaseHandler) HandleTopProduct(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return writeError(c, err)
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return writeError(c, err)
	}

	result, err := h.reportService.TopProduct(start, end)
	if err != nil {
		return writeError(c, err)
	}

	if result.Empty {
		return c.JSON(fiber.Map{
			"message": "no purchases found for this period",
		})
	}
	if result.Tie {
		return c.JSON(fiber.Map{
			"tie":      true,
			"products": result.Products,
			"count":    result.Count,
			"ranking":  result.Ranking,
		})
	}
	return c.JSON(fiber.Map{
		"tie":     false,
		"product": result.Product,
		"count":   result.Count,
		"ranking": result.Ranking,
	})
}

// HandleBilan reports the financial summary within the optional inclusive
// [start, end] window.
func (h *PurchaseHandler) HandleBilan(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return writeError(c, err)
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return writeError(c, err)
	}

	result, err := h.reportService.Bilan(start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}
