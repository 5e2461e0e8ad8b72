package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/queryview"
	"bizconsole_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseQueryViewParams reads the projection parameters shared by all list
// endpoints: q, filters (JSON array), sort_by, sort_dir, page, page_size
// (50|100|200|all). Absent parameters leave the projection inert.
func parseQueryViewParams(c *gin.Context) (queryview.Params, *utils.APIError) {
	params := queryview.Params{
		Search:    c.Query("q"),
		SortField: c.Query("sort_by"),
		SortDesc:  c.Query("sort_dir") == "desc",
	}

	if filtersStr := c.Query("filters"); filtersStr != "" {
		if err := json.Unmarshal([]byte(filtersStr), &params.Filters); err != nil {
			return params, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Invalid filters parameter: expected a JSON array")
		}
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Invalid page: must be a positive integer")
		}
		params.Page = page
	}

	if sizeStr := c.Query("page_size"); sizeStr != "" && sizeStr != "all" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return params, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Invalid page_size: must be a positive integer or 'all'")
		}
		params.PageSize = size
	}

	return params, nil
}

// viewRow builds the projection's view of one item from its identifier
// strings and any number of resolved field-value sets.
func viewRow(identifiers []string, sets ...[]models.ResolvedFieldValue) queryview.Row {
	row := queryview.Row{
		Identifiers: identifiers,
		Values:      map[string]models.Value{},
	}
	for _, set := range sets {
		for _, fv := range set {
			row.Values[fv.FieldRef.String()] = fv.Value
		}
	}
	return row
}

// reorder projects items through the index list Apply returned.
func reorder[T any](items []T, indexes []int) []T {
	out := make([]T, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, items[i])
	}
	return out
}
