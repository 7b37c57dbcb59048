package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"achats/internal/apperrors"
	"achats/internal/models"
)

const dateLayout = "2006-01-02"

// writeError maps an error from the service layer to the HTTP taxonomy:
// validation failures to 400, unknown IDs to 404, duplicate product names to
// 409, everything else to 500.
func writeError(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": verr.Message,
			"field":   verr.Field,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "resource not found",
		})
	case errors.Is(err, apperrors.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "product name already exists",
		})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}
}

// parseDate parses a YYYY-MM-DD value, reporting a ValidationError on the
// given field when it is malformed.
func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// parseDateQuery reads an optional date query parameter. An absent parameter
// leaves that side of the window open.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// purchaseResponse is the read representation of a purchase: price as a
// fixed-point decimal string with two fractional digits, date as YYYY-MM-DD.
type purchaseResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	Date        string `json:"date"`
}

func toPurchaseResponse(p *models.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:          p.ID,
		ProductID:   p.ProductID,
		ProductName: p.Product.Name,
		Price:       p.Price.StringFixed(2),
		Date:        p.Date.Format(dateLayout),
	}
}

func toPurchaseResponses(purchases []models.Purchase) []purchaseResponse {
	responses := make([]purchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, toPurchaseResponse(&purchases[i]))
	}
	return responses
}
