package facet

import (
	"sort"

	"real-estate-marketplace/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

const (
	DefaultClusterPrecision uint = 5
	maxClusterPrecision     uint = 12
)

// Clusters группирует объявления с координатами по ячейкам geohash заданной точности.
// Центр кластера - среднее координат входящих в него объявлений.
func Clusters(listings []domain.Listing, precision uint) []domain.MapCluster {
	if precision == 0 {
		return nil
	}
	if precision > maxClusterPrecision {
		precision = maxClusterPrecision
	}

	byCell := make(map[string]*domain.MapCluster)
	for _, l := range listings {
		if !l.HasLocation() {
			continue
		}
		cell := geohash.EncodeWithPrecision(*l.Latitude, *l.Longitude, precision)
		c, ok := byCell[cell]
		if !ok {
			c = &domain.MapCluster{Geohash: cell}
			byCell[cell] = c
		}
		c.Count++
		c.Latitude += *l.Latitude
		c.Longitude += *l.Longitude
		c.ListingIDs = append(c.ListingIDs, l.ID)
	}

	out := make([]domain.MapCluster, 0, len(byCell))
	for _, c := range byCell {
		c.Latitude /= float64(c.Count)
		c.Longitude /= float64(c.Count)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Geohash < out[j].Geohash
	})
	return out
}
