// Package fakedata generates the synthetic products and users used to seed
// new tenants.
package fakedata

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

const maxDescriptionLen = 200

// Generator produces fake field values. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// New returns a Generator. A zero seed draws a random one.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// ProductFields is one generated product.
type ProductFields struct {
	Name        string
	Description string
	Brand       string
	Quantity    int
	Price       float64
	Category    string
	Photo       string
}

// UserFields is one generated user.
type UserFields struct {
	Name    string
	Email   string
	Address string
}

// Product generates the fields of one product.
func (g *Generator) Product() ProductFields {
	g.mu.Lock()
	defer g.mu.Unlock()

	f := g.faker
	return ProductFields{
		Name:        titleCase(f.Word()),
		Description: truncate(f.ProductDescription(), maxDescriptionLen),
		Brand:       f.Company(),
		Quantity:    f.IntRange(1, 500),
		Price:       math.Round(f.Float64Range(0.01, 999.99)*100) / 100,
		Category:    f.Word(),
		Photo:       fmt.Sprintf("https://picsum.photos/seed/%s/500/500", uuid.NewString()),
	}
}

// User generates the fields of one user.
func (g *Generator) User() UserFields {
	g.mu.Lock()
	defer g.mu.Unlock()

	f := g.faker
	return UserFields{
		Name:    f.Name(),
		Email:   UniqueEmail(f.Email()),
		Address: f.Address().Address,
	}
}

// Email generates a unique email address.
func (g *Generator) Email() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return UniqueEmail(g.faker.Email())
}

// UniqueEmail tags the local part of email with a random suffix so generated
// addresses do not collide across tenants.
func UniqueEmail(email string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return fmt.Sprintf("%s.%s@example.com", email, suffix)
	}
	return strings.ToLower(fmt.Sprintf("%s.%s%s", email[:at], suffix, email[at:]))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
