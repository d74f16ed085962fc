package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"github.com/xuri/excelize/v2"
)

//go:embed data/restaurants.json
var defaultData []byte

// Column names of a seed file. XLSX files carry them in the header row.
const (
	colName        = "name"
	colCity        = "city"
	colAddress     = "address"
	colCuisineType = "cuisine_type"
	colSpecialty   = "specialty"
	colYelpRating  = "yelp_rating"
	colPriceRange  = "price_range"
	colImageURL    = "image_url"
	colRank        = "rank"
	colLon         = "lon"
	colLat         = "lat"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported seed file format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrInvalidRecord     = errors.New("invalid seed record")
)

type record struct {
	models.RestaurantInput
	Lon *float64 `json:"lon"`
	Lat *float64 `json:"lat"`
}

// Default returns the bundled Seattle restaurant set.
func Default() ([]models.RestaurantInput, error) {
	return decodeJSON(bytes.NewReader(defaultData))
}

// LoadFile reads restaurants from a .json or .xlsx file. sheet selects the
// worksheet of an XLSX file; empty means the first one.
func LoadFile(path, sheet string) ([]models.RestaurantInput, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".xlsx":
		return LoadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadJSON reads an array of restaurant objects.
func LoadJSON(path string) ([]models.RestaurantInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	return decodeJSON(file)
}

func decodeJSON(r io.Reader) ([]models.RestaurantInput, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode seed records: %w", err)
	}

	inputs := make([]models.RestaurantInput, 0, len(records))
	for i, rec := range records {
		input, err := rec.toInput()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func (r record) toInput() (models.RestaurantInput, error) {
	input := r.RestaurantInput
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)

	if input.Name == "" || input.Address == "" {
		return models.RestaurantInput{}, fmt.Errorf("%w: name and address are required", ErrInvalidRecord)
	}

	if (r.Lon == nil) != (r.Lat == nil) {
		return models.RestaurantInput{}, fmt.Errorf("%w: lon and lat must be set together", ErrInvalidRecord)
	}
	if r.Lon != nil {
		input.Location = &models.Coordinates{Longitude: *r.Lon, Latitude: *r.Lat}
	}

	return input, nil
}

// LoadXLSX reads restaurants from a worksheet whose first row names the columns.
// Rows without a name are skipped. Empty lon and lat leave the location unset.
func LoadXLSX(path, sheet string) ([]models.RestaurantInput, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	if sheet == "" {
		sheet = file.GetSheetName(0)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []models.RestaurantInput{}, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colName, colAddress} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	inputs := make([]models.RestaurantInput, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(column string) string {
			idx, ok := header[column]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		if cell(colName) == "" {
			continue
		}

		rec, err := parseRow(cell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		input, err := rec.toInput()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func parseRow(cell func(string) string) (record, error) {
	rec := record{
		RestaurantInput: models.RestaurantInput{
			Name:        cell(colName),
			City:        cell(colCity),
			Address:     cell(colAddress),
			CuisineType: cell(colCuisineType),
			Specialty:   cell(colSpecialty),
			PriceRange:  cell(colPriceRange),
		},
	}

	if url := cell(colImageURL); url != "" {
		rec.ImageURL = &url
	}

	var err error
	if rec.YelpRating, err = parseFloat(cell(colYelpRating)); err != nil {
		return record{}, fmt.Errorf("%w: yelp_rating: %w", ErrInvalidRecord, err)
	}

	if value := cell(colRank); value != "" {
		if rec.Rank, err = strconv.Atoi(value); err != nil {
			return record{}, fmt.Errorf("%w: rank: %w", ErrInvalidRecord, err)
		}
	}

	if rec.Lon, err = parseOptionalFloat(cell(colLon)); err != nil {
		return record{}, fmt.Errorf("%w: lon: %w", ErrInvalidRecord, err)
	}
	if rec.Lat, err = parseOptionalFloat(cell(colLat)); err != nil {
		return record{}, fmt.Errorf("%w: lat: %w", ErrInvalidRecord, err)
	}

	return rec, nil
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}

	return strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
}

func parseOptionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}

	number, err := parseFloat(value)
	if err != nil {
		return nil, err
	}

	return &number, nil
}
