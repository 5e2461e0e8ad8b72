package queryview

import (
	"testing"

	"bizconsole_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

const (
	priceField = "f-price"
	metalField = "f-metal"
	flagField  = "f-flag"
	nameField  = "f-name"
)

func sampleRows() []Row {
	return []Row{
		{
			Identifiers: []string{"PRD_0001"},
			Values: map[string]models.Value{
				priceField: models.NumberValue(100),
				metalField: models.TextValue("Gold"),
				flagField:  models.BoolValue(true),
				nameField:  models.TextValue("Chain"),
			},
		},
		{
			Identifiers: []string{"PRD_0002"},
			Values: map[string]models.Value{
				priceField: models.NumberValue(50),
				metalField: models.TextValue("Silver"),
				flagField:  models.BoolValue(false),
				nameField:  models.TextValue("Ring"),
			},
		},
		{
			// Missing price, "n/a" text under the name field.
			Identifiers: []string{"ORD_ID_000003"},
			Values: map[string]models.Value{
				metalField: models.ListValue([]string{"Gold", "Silver"}),
				nameField:  models.TextValue("n/a"),
			},
		},
	}
}

func TestApplyNoParamsKeepsOrder(t *testing.T) {
	indexes, meta := Apply(sampleRows(), Params{})
	assert.Equal(t, []int{0, 1, 2}, indexes)
	assert.Equal(t, Meta{Total: 3, Page: 1, PageSize: 3, PageCount: 1}, meta)
}

func TestApplySearchMatchesIdentifiersAndValues(t *testing.T) {
	rows := sampleRows()

	indexes, _ := Apply(rows, Params{Search: "prd_0002"})
	assert.Equal(t, []int{1}, indexes)

	indexes, _ = Apply(rows, Params{Search: "chain"})
	assert.Equal(t, []int{0}, indexes)

	indexes, _ = Apply(rows, Params{Search: "nothing-here"})
	assert.Empty(t, indexes)
}

func TestApplyNumberFilterTreatsMissingAsZero(t *testing.T) {
	rows := sampleRows()

	indexes, _ := Apply(rows, Params{Filters: []Filter{{FieldID: priceField, Type: models.FieldTypeNumber, Value: "100"}}})
	assert.Equal(t, []int{0}, indexes)

	// The row with no price value compares as zero.
	indexes, _ = Apply(rows, Params{Filters: []Filter{{FieldID: priceField, Type: models.FieldTypeNumber, Value: "0"}}})
	assert.Equal(t, []int{2}, indexes)
}

func TestApplyCheckboxFilter(t *testing.T) {
	rows := sampleRows()

	indexes, _ := Apply(rows, Params{Filters: []Filter{{FieldID: flagField, Type: models.FieldTypeCheckbox, Value: "true"}}})
	assert.Equal(t, []int{0}, indexes)

	// Missing boolean values match "false".
	indexes, _ = Apply(rows, Params{Filters: []Filter{{FieldID: flagField, Type: models.FieldTypeCheckbox, Value: "false"}}})
	assert.Equal(t, []int{1, 2}, indexes)
}

func TestApplySelectFilterMatchesListMembership(t *testing.T) {
	rows := sampleRows()

	indexes, _ := Apply(rows, Params{Filters: []Filter{{FieldID: metalField, Type: models.FieldTypeSelect, Value: "Gold"}}})
	assert.Equal(t, []int{0, 2}, indexes)

	indexes, _ = Apply(rows, Params{Filters: []Filter{{FieldID: metalField, Type: models.FieldTypeSelect, Value: "Silver"}}})
	assert.Equal(t, []int{1, 2}, indexes)
}

func TestApplyTextFilterIsSubstring(t *testing.T) {
	indexes, _ := Apply(sampleRows(), Params{Filters: []Filter{{FieldID: nameField, Type: models.FieldTypeText, Value: "in"}}})
	assert.Equal(t, []int{0, 1}, indexes)
}

func TestApplyFiltersAreConjunctive(t *testing.T) {
	indexes, _ := Apply(sampleRows(), Params{Filters: []Filter{
		{FieldID: metalField, Type: models.FieldTypeSelect, Value: "Gold"},
		{FieldID: priceField, Type: models.FieldTypeNumber, Value: "100"},
	}})
	assert.Equal(t, []int{0}, indexes)
}

func TestApplySortTreatsNonNumericAsZero(t *testing.T) {
	rows := sampleRows()

	indexes, _ := Apply(rows, Params{SortField: priceField})
	// The missing-price row sorts as zero, before 50 and 100.
	assert.Equal(t, []int{2, 1, 0}, indexes)

	indexes, _ = Apply(rows, Params{SortField: priceField, SortDesc: true})
	assert.Equal(t, []int{0, 1, 2}, indexes)
}

func TestApplySortIsStableForTies(t *testing.T) {
	rows := []Row{
		{Identifiers: []string{"a"}, Values: map[string]models.Value{priceField: models.NumberValue(5)}},
		{Identifiers: []string{"b"}, Values: map[string]models.Value{priceField: models.NumberValue(5)}},
		{Identifiers: []string{"c"}, Values: map[string]models.Value{priceField: models.NumberValue(5)}},
	}
	indexes, _ := Apply(rows, Params{SortField: priceField})
	assert.Equal(t, []int{0, 1, 2}, indexes)
}

func TestApplyPagination(t *testing.T) {
	rows := make([]Row, 120)
	for i := range rows {
		rows[i] = Row{Values: map[string]models.Value{}}
	}

	indexes, meta := Apply(rows, Params{Page: 1, PageSize: 50})
	assert.Len(t, indexes, 50)
	assert.Equal(t, Meta{Total: 120, Page: 1, PageSize: 50, PageCount: 3}, meta)

	indexes, meta = Apply(rows, Params{Page: 3, PageSize: 50})
	assert.Len(t, indexes, 20)
	assert.Equal(t, 3, meta.Page)

	// A page past the end clamps to the last page.
	indexes, meta = Apply(rows, Params{Page: 99, PageSize: 50})
	assert.Len(t, indexes, 20)
	assert.Equal(t, 3, meta.Page)

	// PageSize <= 0 returns everything.
	indexes, meta = Apply(rows, Params{})
	assert.Len(t, indexes, 120)
	assert.Equal(t, Meta{Total: 120, Page: 1, PageSize: 120, PageCount: 1}, meta)
}

func TestApplyEmptyInput(t *testing.T) {
	indexes, meta := Apply(nil, Params{PageSize: 50})
	assert.Empty(t, indexes)
	assert.Equal(t, Meta{Total: 0, Page: 1, PageSize: 50, PageCount: 1}, meta)
}
