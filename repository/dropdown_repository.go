package repository

import (
	"context"

	"dispatch/models"
	"dispatch/storage"
)

type DropdownRepository struct {
	client storage.SheetClient
	sheet  string
}

func NewDropdownRepository(client storage.SheetClient, sheet string) *DropdownRepository {
	return &DropdownRepository{client: client, sheet: sheet}
}

// Options reads the five option columns of the Drop-Down sheet.
func (r *DropdownRepository) Options(ctx context.Context) (models.DropdownOptions, error) {
	rows, err := r.client.GetData(ctx, r.sheet)
	if err != nil {
		return models.DropdownOptions{}, err
	}
	return MapDropdowns(rows), nil
}

func MapDropdowns(rows []storage.Row) models.DropdownOptions {
	return models.DropdownOptions{
		PlantNames:        column(rows, storage.ColDropPlantName),
		OfficeDispatchers: column(rows, storage.ColDropOfficeDispatcher),
		CommodityTypes:    column(rows, storage.ColDropCommodityType),
		MunsiNames:        column(rows, storage.ColDropMunsiName),
		SubCommodities:    column(rows, storage.ColDropSubCommodity),
	}
}

// column collects distinct non-blank values in first-seen order.
func column(rows []storage.Row, col int) []string {
	seen := map[string]bool{}
	out := []string{}
	for i := storage.DropdownFirstDataRow; i < len(rows); i++ {
		v := rows[i].Cell(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
