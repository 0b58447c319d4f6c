package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
)

// ParseReceipt accepts a receipt as a multipart "file" upload, a {"text"}
// JSON field or the raw request body, and returns ingredient drafts for
// review; nothing is written to the pantry until the client posts the
// reviewed drafts to the bulk endpoint.
func (handler *Handler) ParseReceipt(c *fiber.Ctx) error {
	if file, err := c.FormFile("file"); err == nil {
		upload, err := file.Open()
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "unreadable receipt upload")
		}
		defer upload.Close()

		parsed, err := handler.receiptService.Parse(upload)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(parsed)
	}

	body := c.Body()

	input := struct {
		Text string `json:"text"`
	}{}
	if err := c.BodyParser(&input); err == nil && input.Text != "" {
		body = []byte(input.Text)
	}

	parsed, err := handler.receiptService.Parse(bytes.NewReader(body))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(parsed)
}
