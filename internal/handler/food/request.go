package food

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	foodModel "github.com/zhouzirui/food-catalog/backend/internal/model/food"
	"github.com/zhouzirui/food-catalog/backend/internal/service/catalog"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	maxBodyBytes         = 1 << 20
)

type createRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

func (p createRequest) validate() (catalog.CreateInput, error) {
	if p.Name == nil {
		return catalog.CreateInput{}, errors.New("name is required")
	}
	if p.Price == nil {
		return catalog.CreateInput{}, errors.New("price is required")
	}
	if p.Description == nil {
		return catalog.CreateInput{}, errors.New("description is required")
	}

	name, err := cleanText("name", *p.Name, maxNameLength)
	if err != nil {
		return catalog.CreateInput{}, err
	}
	description, err := cleanText("description", *p.Description, maxDescriptionLength)
	if err != nil {
		return catalog.CreateInput{}, err
	}
	if err := checkPrice(*p.Price); err != nil {
		return catalog.CreateInput{}, err
	}

	return catalog.CreateInput{Name: name, Price: *p.Price, Description: description}, nil
}

// updateRequest treats absent and null fields alike: both leave the value unchanged.
type updateRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

func (p updateRequest) validate() (foodModel.Patch, error) {
	var patch foodModel.Patch

	if p.Name != nil {
		name, err := cleanText("name", *p.Name, maxNameLength)
		if err != nil {
			return foodModel.Patch{}, err
		}
		patch.Name = &name
	}
	if p.Price != nil {
		if err := checkPrice(*p.Price); err != nil {
			return foodModel.Patch{}, err
		}
		price := *p.Price
		patch.Price = &price
	}
	if p.Description != nil {
		description, err := cleanText("description", *p.Description, maxDescriptionLength)
		if err != nil {
			return foodModel.Patch{}, err
		}
		patch.Description = &description
	}
	return patch, nil
}

type listQuery struct {
	filter foodModel.Filter
	page   int
	size   int
}

func parseListQuery(values url.Values, limits Limits) (listQuery, error) {
	q := listQuery{page: 1, size: limits.DefaultPageSize}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return listQuery{}, errors.New("page must be an integer >= 1")
		}
		q.page = page
	}

	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > limits.MaxPageSize {
			return listQuery{}, fmt.Errorf("size must be an integer between 1 and %d", limits.MaxPageSize)
		}
		q.size = size
	}

	minPrice, err := parseBound(values, "min_price")
	if err != nil {
		return listQuery{}, err
	}
	maxPrice, err := parseBound(values, "max_price")
	if err != nil {
		return listQuery{}, err
	}

	q.filter = foodModel.Filter{
		Name:     values.Get("name"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Search:   values.Get("search"),
	}
	return q, nil
}

func parseBound(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, fmt.Errorf("%s must be a number >= 0", key)
	}
	return &v, nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func cleanText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s must not be empty", field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%s must be at most %d characters", field, maxLen)
	}
	return value, nil
}

func checkPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errors.New("price must be greater than 0")
	}
	return nil
}
