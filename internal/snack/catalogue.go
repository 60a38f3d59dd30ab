// Package snack serves the snack menu and keeps each browser's snack cart
// for a showtime.
package snack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadFailedMessage is shown in place of the menu when it cannot be read.
const LoadFailedMessage = "Impossible de charger les snacks."

var ErrUnknownProduct = errors.New("unknown snack")

// Product is one item of the menu.
type Product struct {
	Name   string  `json:"nom"`
	Price  float64 `json:"prix"`
	Image  string  `json:"image,omitempty"`
	Points int     `json:"points,omitempty"`
}

// PriceCents rounds the euro price to cents.
func (p Product) PriceCents() int64 {
	return int64(p.Price*100 + 0.5)
}

// Category groups products under a heading.
type Category struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// Menu is the whole snack catalogue in file order.
type Menu struct {
	Categories []Category `json:"categories"`
}

// Find looks a product up by its exact name.
func (m Menu) Find(name string) (Product, bool) {
	for _, c := range m.Categories {
		for _, p := range c.Products {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Product{}, false
}

// LoadMenu reads a menu file: a JSON object of category -> products.
func LoadMenu(path string) (Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return Menu{}, fmt.Errorf("open snacks: %w", err)
	}
	defer f.Close()
	return DecodeMenu(f)
}

// DecodeMenu keeps categories in the order the document lists them, which
// a plain map decode would lose.
func DecodeMenu(r io.Reader) (Menu, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return Menu{}, fmt.Errorf("decode snacks: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Menu{}, fmt.Errorf("decode snacks: expected object")
	}
	m := Menu{Categories: []Category{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Menu{}, fmt.Errorf("decode snacks: %w", err)
		}
		name, _ := tok.(string)
		var items []Product
		if err := dec.Decode(&items); err != nil {
			return Menu{}, fmt.Errorf("decode snacks %q: %w", name, err)
		}
		if items == nil {
			items = []Product{}
		}
		m.Categories = append(m.Categories, Category{Name: name, Products: items})
	}
	if _, err := dec.Token(); err != nil {
		return Menu{}, fmt.Errorf("decode snacks: %w", err)
	}
	return m, nil
}
