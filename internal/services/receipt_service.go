package services

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyReceipt = errors.New("receipt is empty")

// ParsedReceipt is the review payload returned to the client: drafts to
// feed into the bulk-add endpoint plus the lines that could not be read.
type ParsedReceipt struct {
	JobID   string              `json:"jobId"`
	Items   []models.Ingredient `json:"items"`
	Skipped []string            `json:"skipped"`
}

var (
	// "2 kg Flour", "500 g sugar", "1.5 L milk", "12 Eggs"
	quantityFirstPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*(g|kg|mL|ml|L|l)?\s+(\S.*)$`)
	// "Flour 2 kg", "Milk 1.5 L"
	quantityLastPattern = regexp.MustCompile(`^(\S.*?)\s+(\d+(?:[.,]\d+)?)\s*(g|kg|mL|ml|L|l)$`)
	// "Eggs x12"
	countPattern = regexp.MustCompile(`^(\S.*?)\s*[xX]\s*(\d+)$`)
	// price or total lines that must never become pantry rows
	nonItemPattern = regexp.MustCompile(`(?i)^(total|subtotal|tax|change|cash|card)\b|[$€£]`)
)

type ReceiptService struct {
	logger *zap.Logger
}

func NewReceiptService(logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{logger: logger}
}

// Parse reads a plain-text receipt line by line into ingredient drafts.
// OCR of image receipts is an external collaborator; this service handles
// its text output. Lines that cannot be read are reported, not dropped
// silently.
func (service *ReceiptService) Parse(reader io.Reader) (ParsedReceipt, error) {
	result := ParsedReceipt{
		JobID:   uuid.NewString(),
		Items:   []models.Ingredient{},
		Skipped: []string{},
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || nonItemPattern.MatchString(line) {
			continue
		}

		draft, ok := parseReceiptLine(line)
		if !ok {
			result.Skipped = append(result.Skipped, line)
			continue
		}
		result.Items = append(result.Items, draft)
	}
	if err := scanner.Err(); err != nil {
		return ParsedReceipt{}, err
	}

	if len(result.Items) == 0 && len(result.Skipped) == 0 {
		return ParsedReceipt{}, ErrEmptyReceipt
	}

	service.logger.Debug("receipt parsed",
		zap.String("job_id", result.JobID),
		zap.Int("items", len(result.Items)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func parseReceiptLine(line string) (models.Ingredient, bool) {
	if matches := countPattern.FindStringSubmatch(line); matches != nil {
		quantity, err := parseReceiptNumber(matches[2])
		if err == nil {
			return models.Ingredient{Name: strings.TrimSpace(matches[1]), Quantity: quantity, Unit: "unit"}, true
		}
	}

	if matches := quantityLastPattern.FindStringSubmatch(line); matches != nil {
		quantity, err := parseReceiptNumber(matches[2])
		if err == nil {
			return models.Ingredient{Name: strings.TrimSpace(matches[1]), Quantity: quantity, Unit: canonicalReceiptUnit(matches[3])}, true
		}
	}

	if matches := quantityFirstPattern.FindStringSubmatch(line); matches != nil {
		quantity, err := parseReceiptNumber(matches[1])
		if err == nil {
			unit := canonicalReceiptUnit(matches[2])
			if unit == "" {
				unit = "unit"
			}
			return models.Ingredient{Name: strings.TrimSpace(matches[3]), Quantity: quantity, Unit: unit}, true
		}
	}

	return models.Ingredient{}, false
}

func parseReceiptNumber(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
}

func canonicalReceiptUnit(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "g":
		return "g"
	case "kg":
		return "kg"
	case "ml":
		return "mL"
	case "l":
		return "L"
	default:
		return ""
	}
}
