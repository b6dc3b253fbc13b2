package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxQuantity is the largest quantity accepted for one cart line
const MaxQuantity = 1_000_000

// CartLine is one client supplied line of a checkout cart.
type CartLine struct {
	ProductID string
	// Quantity is 0 when the client sent no positive number.
	Quantity int
}

type cartLineJSON struct {
	ProductID string          `json:"productId"`
	LegacyID  string          `json:"_id"`
	Quantity  json.RawMessage `json:"quantity"`
}

// ParseCart normalizes the cart field of a checkout request.
// The cart is either a JSON array of lines or a string holding that array.
// Anything that does not decode yields an empty cart.
// Quantities above MaxQuantity or with a fractional part are rejected.
func ParseCart(raw json.RawMessage) ([]CartLine, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, nil
		}
		raw = bytes.TrimSpace([]byte(s))
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}

	var lines []cartLineJSON
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, nil
	}

	cart := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		id := l.ProductID
		if id == "" {
			id = l.LegacyID
		}

		qty, err := parseQuantity(l.Quantity)
		if err != nil {
			return nil, err
		}

		cart = append(cart, CartLine{
			ProductID: strings.TrimSpace(id),
			Quantity:  qty,
		})
	}

	return cart, nil
}

// parseQuantity accepts a JSON number or numeric string.
// Anything that is not a positive number is 0.
func parseQuantity(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, nil
		}
	} else {
		s = string(raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || n <= 0 {
		return 0, nil
	}

	switch {
	case n > MaxQuantity:
		return 0, ErrQuantityTooLarge
	case n != math.Trunc(n):
		return 0, ErrQuantityFraction
	}

	return int(n), nil
}
