package out

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadtrack/internal/modules/catalog/dto"
	catalogin "leadtrack/internal/modules/catalog/port/in"
	"leadtrack/internal/modules/shift/domain"
)

type stubCatalog struct {
	catalogin.Usecase
	records    []dto.RecordView
	categories []string
}

func (s stubCatalog) Records() []dto.RecordView   { return s.records }
func (s stubCatalog) StatusCategories() []string { return s.categories }

func TestCatalogSourceFeedsSnapshot(t *testing.T) {
	source := NewCatalogSource(stubCatalog{
		records:    []dto.RecordView{{ID: "1", Status: "Hot"}, {ID: "2", Status: "Hot"}, {ID: "3", Status: "Gone"}},
		categories: []string{"Hot", "Cold"},
	})

	snapshot := domain.Snapshot(source.ListRecords(), source.ListStatusCategories())
	assert.Equal(t, []domain.StatusSnapshot{{Status: "Hot", Count: 2}, {Status: "Cold", Count: 0}}, snapshot)
}
