package countries

import (
	"strings"

	"github.com/grovetools/atlas/pkg/models"
)

// FilterVisible returns the countries whose name contains search
// (case-insensitive) and whose region contains region. An empty search or
// models.RegionNone matches everything. The input order is kept and the input
// slice is not modified.
func FilterVisible(list []models.Country, search string, region models.Region) []models.Country {
	needle := strings.ToLower(search)
	visible := make([]models.Country, 0, len(list))
	for _, c := range list {
		if !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		if !region.IsNone() && !strings.Contains(c.Region, string(region)) {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}
