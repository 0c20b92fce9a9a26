package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

// InsightService computes summary analytics over the record sink.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds a report from the stored car records.
func (s *InsightService) Generate(records []*models.CarRecord) *models.CarReport {
	report := &models.CarReport{
		ByManufacturer:  make(map[string]int),
		CarsByModelYear: make(map[int]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalCars = len(records)

	var priced []*models.CarRecord
	for _, rec := range records {
		if rec.Price > 0 {
			priced = append(priced, rec)
		}
		if rec.Manufacturer != "" {
			report.ByManufacturer[rec.Manufacturer]++
		}
		// Year carries a two-digit sub-code, e.g. 202503 means model year 2025.
		if rec.Year > 0 {
			report.CarsByModelYear[int(rec.Year)/100]++
		}
	}

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.MostExpensive = priced[0]
		var total float64
		for _, rec := range priced {
			total += rec.Price
			if rec.Price < report.MinPrice {
				report.MinPrice = rec.Price
			}
			if rec.Price > report.MaxPrice {
				report.MaxPrice = rec.Price
				report.MostExpensive = rec
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
	}

	return report
}

// Print renders the report to stdout.
func (s *InsightService) Print(r *models.CarReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  ENCAR COLLECTION SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Cars in store : \033[1m%d\033[0m\n", r.TotalCars)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m%.0f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%.0f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%.0f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s %s %s\n", r.MostExpensive.Manufacturer, r.MostExpensive.Model, r.MostExpensive.Badge)
		fmt.Printf("  Price : \033[1;31m%.0f\033[0m\n", r.MostExpensive.Price)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Top Manufacturers\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printCounts(topCounts(r.ByManufacturer, 5))
	fmt.Println()

	fmt.Printf("\033[1;33m  Cars by Model Year\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.CarsByModelYear) == 0 {
		fmt.Printf("  No year data\n")
	} else {
		years := make([]int, 0, len(r.CarsByModelYear))
		for y := range r.CarsByModelYear {
			years = append(years, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(years)))
		for _, y := range years {
			fmt.Printf("  %d : %d\n", y, r.CarsByModelYear[y])
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

type labelCount struct {
	label string
	count int
}

func topCounts(m map[string]int, limit int) []labelCount {
	counts := make([]labelCount, 0, len(m))
	for label, n := range m {
		if label != "" {
			counts = append(counts, labelCount{label, n})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].label < counts[j].label
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func printCounts(counts []labelCount) {
	if len(counts) == 0 {
		fmt.Printf("  No data\n")
		return
	}
	for i, lc := range counts {
		fmt.Printf("  \033[1m%d.\033[0m %-30s (%d)\n", i+1, truncate(lc.label, 28), lc.count)
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
