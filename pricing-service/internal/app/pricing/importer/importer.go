package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pantry/pkg/logger"
	"pantry/pkg/metrics"
	"pantry/pricing-service/internal/app/pricing/costing"
	"pantry/pricing-service/internal/app/pricing/entity"
	"pantry/pricing-service/internal/app/pricing/repository"

	"github.com/google/uuid"
)

// Importer loads categories and product types from a positional CSV stream.
//
// The format is order-dependent: each row is (name, base_weight, waste). A row
// whose weight and waste cells are both empty is a category marker; it becomes
// the current category for every product row after it, until the next marker.
// There is no header row.
type Importer struct {
	categoryRepo    repository.CategoryRepository
	productTypeRepo repository.ProductTypeRepository
}

func New(categoryRepo repository.CategoryRepository, productTypeRepo repository.ProductTypeRepository) *Importer {
	return &Importer{
		categoryRepo:    categoryRepo,
		productTypeRepo: productTypeRepo,
	}
}

type parsedRow struct {
	line       int
	name       string
	weightCell string
	wasteCell  string
	isCategory bool
}

// Import runs two passes: the first reads and classifies every row so a
// malformed stream is rejected before any write, the second creates records
// in file order. Row-level problems skip that row only.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*entity.ImportResult, error) {
	rows, result, err := im.parse(r)
	if err != nil {
		return nil, err
	}

	var currentCategory *uuid.UUID

	for _, row := range rows {
		if row.isCategory {
			categoryID, err := im.ensureCategory(ctx, row.name)
			if err != nil {
				result.SkippedRows = append(result.SkippedRows, entity.ImportRowError{
					Line:   row.line,
					Reason: fmt.Sprintf("failed to create category: %v", err),
				})
				metrics.ImportRows.WithLabelValues("skipped").Inc()
				// Products after a failed marker keep the previous category.
				continue
			}
			currentCategory = categoryID
			result.CategoriesCreated++
			metrics.ImportRows.WithLabelValues("category").Inc()
			continue
		}

		productType := &entity.ProductType{
			ID:         uuid.New(),
			Name:       row.name,
			BaseWeight: parseNumericCell(row.weightCell),
			Waste:      parseNumericCell(row.wasteCell),
			Unit:       costing.UnitGram,
			CategoryID: currentCategory,
		}

		if err := im.productTypeRepo.Create(ctx, productType); err != nil {
			logger.Error().Err(err).
				Int("line", row.line).
				Str("name", row.name).
				Msg("failed to import product type")
			result.SkippedRows = append(result.SkippedRows, entity.ImportRowError{
				Line:   row.line,
				Reason: fmt.Sprintf("failed to create product type: %v", err),
			})
			metrics.ImportRows.WithLabelValues("skipped").Inc()
			continue
		}

		result.ProductTypesCreated++
		metrics.ImportRows.WithLabelValues("product").Inc()
	}

	return result, nil
}

func (im *Importer) parse(r io.Reader) ([]parsedRow, *entity.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &entity.ImportResult{}
	var rows []parsedRow

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv: %w", err)
		}

		name := ""
		if len(record) > 0 {
			name = strings.TrimSpace(record[0])
		}
		if name == "" {
			result.SkippedRows = append(result.SkippedRows, entity.ImportRowError{
				Line:   line,
				Reason: "empty name",
			})
			metrics.ImportRows.WithLabelValues("skipped").Inc()
			continue
		}

		weightCell, wasteCell := "", ""
		if len(record) > 1 {
			weightCell = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			wasteCell = strings.TrimSpace(record[2])
		}

		rows = append(rows, parsedRow{
			line:       line,
			name:       name,
			weightCell: weightCell,
			wasteCell:  wasteCell,
			isCategory: weightCell == "" && wasteCell == "",
		})
	}

	return rows, result, nil
}

// ensureCategory reuses an existing category with the same name so repeated
// imports do not duplicate markers.
func (im *Importer) ensureCategory(ctx context.Context, name string) (*uuid.UUID, error) {
	existing, err := im.categoryRepo.GetByName(ctx, name)
	if err == nil {
		return &existing.ID, nil
	}
	if err != repository.ErrCategoryNotFound {
		return nil, err
	}

	category := &entity.Category{
		ID:   uuid.New(),
		Name: name,
	}
	if err := im.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return &category.ID, nil
}

// parseNumericCell treats malformed numeric input as zero rather than
// rejecting the row.
func parseNumericCell(cell string) float64 {
	if cell == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return value
}
