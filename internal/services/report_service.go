package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"achats/internal/repositories"
)

const rankingSize = 5

// ProductCount is one entry of the top-product ranking.
type ProductCount struct {
	Product string `json:"product"`
	Count   int    `json:"count"`
}

// TopProductResult is the outcome of the top-product report. Empty marks a
// window containing no purchases; otherwise either Product (no tie) or
// Products (tie set) is populated alongside the shared ranking.
type TopProductResult struct {
	Empty    bool
	Tie      bool
	Product  string
	Products []string
	Count    int
	Ranking  []ProductCount
}

// BilanResult is the financial summary over a window. Monetary values are
// fixed-point decimal strings with exactly two fractional digits.
type BilanResult struct {
	Total string `json:"total"`
	Count int    `json:"count"`
	Mean  string `json:"mean"`
	Max   string `json:"max"`
	Min   string `json:"min"`
}

// ReportService computes the derived read-only reports. It holds no state;
// every call aggregates the current store contents within the window.
type ReportService struct {
	purchaseRepo repositories.PurchaseRepository
}

// NewReportService creates a new ReportService.
func NewReportService(purchaseRepo repositories.PurchaseRepository) *ReportService {
	return &ReportService{
		purchaseRepo: purchaseRepo,
	}
}

// TopProduct ranks products by purchase count within the inclusive window.
// Bounds are independently optional; a window with no purchases yields the
// distinguished empty result rather than an error. The ranking is ordered by
// count descending, then product name ascending, and truncated to five
// entries. Every product whose count equals the highest count is reported in
// the tie set.
func (s *ReportService) TopProduct(start, end *time.Time) (*TopProductResult, error) {
	purchases, err := s.purchaseRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return &TopProductResult{Empty: true}, nil
	}

	counts := make(map[string]int)
	for _, p := range purchases {
		counts[p.Product.Name]++
	}

	stats := make([]ProductCount, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, ProductCount{Product: name, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Product < stats[j].Product
	})

	maxCount := stats[0].Count
	var tops []string
	for _, entry := range stats {
		if entry.Count != maxCount {
			break
		}
		tops = append(tops, entry.Product)
	}

	ranking := stats
	if len(ranking) > rankingSize {
		ranking = ranking[:rankingSize]
	}

	result := &TopProductResult{
		Count:   maxCount,
		Ranking: ranking,
	}
	if len(tops) > 1 {
		result.Tie = true
		result.Products = tops
	} else {
		result.Product = tops[0]
	}
	return result, nil
}

// Bilan summarizes purchase prices within the inclusive window: count, exact
// decimal total, mean rounded to two digits with banker's rounding, max and
// min. A window with no purchases is a valid result with every amount at
// "0.00".
func (s *ReportService) Bilan(start, end *time.Time) (*BilanResult, error) {
	purchases, err := s.purchaseRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	zero := decimal.Zero.StringFixed(2)
	if len(purchases) == 0 {
		return &BilanResult{
			Total: zero,
			Count: 0,
			Mean:  zero,
			Max:   zero,
			Min:   zero,
		}, nil
	}

	total := decimal.Zero
	maxPrice := purchases[0].Price
	minPrice := purchases[0].Price
	for _, p := range purchases {
		total = total.Add(p.Price)
		if p.Price.GreaterThan(maxPrice) {
			maxPrice = p.Price
		}
		if p.Price.LessThan(minPrice) {
			minPrice = p.Price
		}
	}

	count := len(purchases)
	mean := total.Div(decimal.NewFromInt(int64(count))).RoundBank(2)

	return &BilanResult{
		Total: total.StringFixed(2),
		Count: count,
		Mean:  mean.StringFixed(2),
		Max:   maxPrice.StringFixed(2),
		Min:   minPrice.StringFixed(2),
	}, nil
}
