package catalog

import (
	"math"
	"sort"
	"strings"
)

// Sort keys accepted by Query. These are the wire values the catalog UI sends.
const (
	SortRecommended = "recommended"
	SortPriceAsc    = "price-asc"
	SortPriceDesc   = "price-desc"
	SortRating      = "rating"
	SortNewest      = "newest"
)

// CategoryAll is the sentinel category that matches every vehicle.
const CategoryAll = "all"

// Vehicle is the read-only view of a catalog entry the query engine works on.
type Vehicle struct {
	ID          uint
	Name        string
	Category    string
	Price       float64
	Description string
	Rating      float64 // 0 means unrated, sorts last under SortRating
	Year        int
}

// Config holds the filter and sort choices for one catalog query.
// The price range is inclusive on both ends. Callers are responsible for
// supplying min <= max; a reversed range simply yields an empty result.
type Config struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

// DefaultConfig returns the identity configuration: no search, all categories,
// the full price range and recommended (input) order.
func DefaultConfig() Config {
	return Config{
		Category: CategoryAll,
		MaxPrice: math.MaxFloat64,
		Sort:     SortRecommended,
	}
}

// Query filters and orders vehicles according to cfg. The input slice is never
// mutated; the result is a fresh slice that is a subset of vehicles. Unknown
// sort keys behave like SortRecommended.
func Query(vehicles []Vehicle, cfg Config) []Vehicle {
	result := make([]Vehicle, 0, len(vehicles))
	search := strings.ToLower(cfg.Search)

	for _, v := range vehicles {
		if !matchesSearch(v, search) {
			continue
		}
		if cfg.Category != CategoryAll && v.Category != cfg.Category {
			continue
		}
		if v.Price < cfg.MinPrice || v.Price > cfg.MaxPrice {
			continue
		}
		result = append(result, v)
	}

	applySort(result, cfg.Sort)
	return result
}

func matchesSearch(v Vehicle, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Name), search) ||
		strings.Contains(strings.ToLower(v.Description), search)
}

// applySort orders in place. Stable so that ties keep their input order.
func applySort(vehicles []Vehicle, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Price < vehicles[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Price > vehicles[j].Price
		})
	case SortRating:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Rating > vehicles[j].Rating
		})
	case SortNewest:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Year > vehicles[j].Year
		})
	}
}

// ValidSort reports whether key is one of the accepted sort keys.
func ValidSort(key string) bool {
	switch key {
	case SortRecommended, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return true
	}
	return false
}
