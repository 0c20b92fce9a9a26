package services

import (
	"testing"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

func sampleRecords() []*models.CarRecord {
	return []*models.CarRecord{
		{ID: "1", Manufacturer: "현대", Model: "포터2", Year: 202503, Price: 1450},
		{ID: "2", Manufacturer: "현대", Model: "그랜저", Year: 202401, Price: 3200},
		{ID: "3", Manufacturer: "기아", Model: "봉고3", Year: 202510, Price: 1200},
		{ID: "4", Manufacturer: "기아", Model: "쏘렌토", Year: 202407, Price: 0},
		{ID: "5", Manufacturer: "", Model: "unknown", Year: 0, Price: 900},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(""))
	r := svc.Generate(sampleRecords())

	if r.TotalCars != 5 {
		t.Errorf("TotalCars: got %d, want 5", r.TotalCars)
	}
	if r.ByManufacturer["현대"] != 2 || r.ByManufacturer["기아"] != 2 {
		t.Errorf("ByManufacturer: got %v", r.ByManufacturer)
	}
	if _, present := r.ByManufacturer[""]; present {
		t.Error("empty manufacturer should not be counted")
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(""))
	r := svc.Generate(sampleRecords())

	if r.AveragePrice != 1687.50 {
		t.Errorf("AveragePrice: got %.2f, want 1687.50", r.AveragePrice)
	}
	if r.MinPrice != 900 {
		t.Errorf("MinPrice: got %.2f, want 900", r.MinPrice)
	}
	if r.MaxPrice != 3200 {
		t.Errorf("MaxPrice: got %.2f, want 3200", r.MaxPrice)
	}
	if r.MostExpensive == nil || r.MostExpensive.ID != "2" {
		t.Errorf("MostExpensive: got %+v, want id 2", r.MostExpensive)
	}
}

func TestInsightModelYearBuckets(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(""))
	r := svc.Generate(sampleRecords())

	if r.CarsByModelYear[2025] != 2 {
		t.Errorf("2025 count: got %d, want 2", r.CarsByModelYear[2025])
	}
	if r.CarsByModelYear[2024] != 2 {
		t.Errorf("2024 count: got %d, want 2", r.CarsByModelYear[2024])
	}
	if _, present := r.CarsByModelYear[0]; present {
		t.Error("zero year should not be bucketed")
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(""))
	r := svc.Generate(nil)
	if r.TotalCars != 0 {
		t.Errorf("expected 0 total cars for empty input")
	}
}
