package barcode

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/2beens/fittrack/pkg"
)

var (
	barcodeRegex = regexp.MustCompile(`^\d+$`)

	ErrInvalidBarcode  = fmt.Errorf("invalid barcode format: %w", pkg.ErrValidation)
	ErrProductNotFound = fmt.Errorf("product %w", pkg.ErrNotFound)
	ErrLookupTimeout   = fmt.Errorf("open food facts request timed out")
)

// Product is the nutrition info offered to the client for a scanned barcode.
type Product struct {
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	ServingSize string  `json:"serving_size"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ImageURL    *string `json:"image_url"`
}

func ValidBarcode(barcode string) bool {
	return barcodeRegex.MatchString(barcode)
}

// offResponse is the subset of the Open Food Facts v2 product response we read.
type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	ServingSize string        `json:"serving_size"`
	ImageURL    string        `json:"image_url"`
	Nutriments  offNutriments `json:"nutriments"`
}

type offNutriments struct {
	EnergyKcalServing    flexFloat `json:"energy-kcal_serving"`
	EnergyKcal100g       flexFloat `json:"energy-kcal_100g"`
	ProteinsServing      flexFloat `json:"proteins_serving"`
	Proteins100g         flexFloat `json:"proteins_100g"`
	CarbohydratesServing flexFloat `json:"carbohydrates_serving"`
	Carbohydrates100g    flexFloat `json:"carbohydrates_100g"`
	FatServing           flexFloat `json:"fat_serving"`
	Fat100g              flexFloat `json:"fat_100g"`
}

// flexFloat accepts both numbers and numeric strings, OFF sends either.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("nutriment value [%s]: %w", s, err)
	}
	*f = flexFloat(n)
	return nil
}

// firstSet prefers the per serving value and falls back to the per 100g one.
func firstSet(serving, per100g flexFloat) float64 {
	if serving != 0 {
		return float64(serving)
	}
	return float64(per100g)
}

func (r offResponse) toProduct(barcode string) *Product {
	p := r.Product
	n := p.Nutriments

	product := &Product{
		Barcode:     barcode,
		Name:        p.ProductName,
		Brand:       p.Brands,
		ServingSize: p.ServingSize,
		Calories:    int(math.Round(firstSet(n.EnergyKcalServing, n.EnergyKcal100g))),
		Protein:     pkg.RoundTo(firstSet(n.ProteinsServing, n.Proteins100g), 1),
		Carbs:       pkg.RoundTo(firstSet(n.CarbohydratesServing, n.Carbohydrates100g), 1),
		Fat:         pkg.RoundTo(firstSet(n.FatServing, n.Fat100g), 1),
	}
	if product.Name == "" {
		product.Name = "Unknown Product"
	}
	if p.ImageURL != "" {
		imageURL := p.ImageURL
		product.ImageURL = &imageURL
	}
	return product
}
