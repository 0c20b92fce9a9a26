package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// RawCar holds one unprocessed listing object exactly as the search API
// returns it. Field names follow the upstream payload.
type RawCar struct {
	ID           any             `json:"Id"`
	Condition    json.RawMessage `json:"Condition"`
	Manufacturer string          `json:"Manufacturer"`
	Model        string          `json:"Model"`
	Badge        string          `json:"Badge"`
	Transmission string          `json:"Transmission"`
	FuelType     string          `json:"FuelType"`
	Year         float64         `json:"Year"`
	FormYear     string          `json:"FormYear"`
	Mileage      float64         `json:"Mileage"`
	Price        float64         `json:"Price"`
	SellType     string          `json:"SellType"`
	ModifiedDate string          `json:"ModifiedDate"`
}

// CarRecord is the denormalized snapshot stored in the record sink,
// keyed by ID with replace-on-conflict semantics.
type CarRecord struct {
	ID           string
	Condition    string // compact JSON text, "" means absent
	Manufacturer string
	Model        string
	Badge        string
	Transmission string
	FuelType     string
	Year         float64
	FormYear     string
	Mileage      float64
	Price        float64
	SellType     string
	ModifiedDate string
	CollectedAt  time.Time
}

// Record converts a raw listing into a storable snapshot. The identifier is
// stringified as-is (no trimming); the sink skips records whose ID is empty.
func (r *RawCar) Record(collectedAt time.Time) *CarRecord {
	return &CarRecord{
		ID:           IDString(r.ID),
		Condition:    compactCondition(r.Condition),
		Manufacturer: r.Manufacturer,
		Model:        r.Model,
		Badge:        r.Badge,
		Transmission: r.Transmission,
		FuelType:     r.FuelType,
		Year:         r.Year,
		FormYear:     r.FormYear,
		Mileage:      r.Mileage,
		Price:        r.Price,
		SellType:     r.SellType,
		ModifiedDate: r.ModifiedDate,
		CollectedAt:  collectedAt,
	}
}

func compactCondition(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}

// IDString renders a raw identifier value as a string. JSON numbers decode
// as float64, so integral values must come back without a fraction part.
func IDString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// CrawlStats summarizes a single crawl cycle.
type CrawlStats struct {
	PagesFetched int
	NewIDs       int
	Repeats      int
	YearsAborted int
	SinkRows     int
	Total        int
}

// CarReport holds the computed analytics over the record sink.
type CarReport struct {
	TotalCars       int
	AveragePrice    float64
	MinPrice        float64
	MaxPrice        float64
	MostExpensive   *CarRecord
	ByManufacturer  map[string]int
	CarsByModelYear map[int]int
}
