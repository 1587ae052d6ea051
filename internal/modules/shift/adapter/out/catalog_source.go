package out

import (
	"leadtrack/internal/modules/shift/domain"
	shiftout "leadtrack/internal/modules/shift/port/out"

	catalogin "leadtrack/internal/modules/catalog/port/in"
)

// CatalogSource reads the catalog's live view for snapshotting.
type CatalogSource struct {
	catalog catalogin.Usecase
}

func NewCatalogSource(catalog catalogin.Usecase) shiftout.RecordCatalog {
	return CatalogSource{catalog: catalog}
}

func (c CatalogSource) ListRecords() []domain.Record {
	views := c.catalog.Records()
	out := make([]domain.Record, 0, len(views))
	for _, v := range views {
		out = append(out, domain.Record{StatusLabel: v.Status})
	}
	return out
}

func (c CatalogSource) ListStatusCategories() []string {
	return c.catalog.StatusCategories()
}
