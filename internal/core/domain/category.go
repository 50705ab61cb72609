// internal/core/domain/category.go
package domain

import "fmt"

// CategoryRegistry holds the mutable set of main categories and their
// sub-categories, in insertion order. It is an explicit value with its own
// load/save lifecycle; nothing in this package keeps global category state.
// Categories are labels, not a closed enum: items may reference categories
// that were later removed from the registry.
type CategoryRegistry struct {
	mains []string
	subs  map[string][]string
}

// NewCategoryRegistry creates an empty registry.
func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{subs: make(map[string][]string)}
}

// DefaultCategoryRegistry returns a registry seeded with the stock category set.
func DefaultCategoryRegistry() *CategoryRegistry {
	reg := NewCategoryRegistry()
	for _, name := range []string{
		"Electronics", "Clothing & Apparel", "Books & Media", "Home & Garden",
		"Sports & Recreation", "Automotive", "Health & Beauty", "Food & Beverages",
		"Office Supplies", "Tools & Hardware", "Toys & Games", "Jewelry & Accessories",
		"Pet Supplies", "Baby & Kids", "Art & Crafts", "Musical Instruments",
		"Outdoor & Camping", "Kitchen & Dining", "Collectibles", "Antiques",
		"Cleaning Supplies", "Storage & Organization", "Seasonal Items",
		"Handmade Items", "Digital Products", "Services", "Other",
	} {
		reg.AddMain(name)
	}
	return reg
}

// AddMain registers a main category. Adding an existing name is a no-op.
func (r *CategoryRegistry) AddMain(name string) {
	if name == "" {
		return
	}
	if _, exists := r.subs[name]; exists {
		return
	}
	r.mains = append(r.mains, name)
	r.subs[name] = nil
}

// AddSub registers a sub-category under main, creating main if needed.
// Adding an existing sub-category is a no-op.
func (r *CategoryRegistry) AddSub(main, sub string) {
	if main == "" || sub == "" {
		return
	}
	r.AddMain(main)
	for _, s := range r.subs[main] {
		if s == sub {
			return
		}
	}
	r.subs[main] = append(r.subs[main], sub)
}

// RemoveMain removes a main category together with its sub-categories.
func (r *CategoryRegistry) RemoveMain(name string) error {
	if _, exists := r.subs[name]; !exists {
		return fmt.Errorf("category %s not found", name)
	}
	delete(r.subs, name)
	for i, m := range r.mains {
		if m == name {
			r.mains = append(r.mains[:i], r.mains[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveSub removes a sub-category from main.
func (r *CategoryRegistry) RemoveSub(main, sub string) error {
	subs, exists := r.subs[main]
	if !exists {
		return fmt.Errorf("category %s not found", main)
	}
	for i, s := range subs {
		if s == sub {
			r.subs[main] = append(subs[:i], subs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("sub-category %s not found under %s", sub, main)
}

// Mains returns the main categories in insertion order.
func (r *CategoryRegistry) Mains() []string {
	mains := make([]string, len(r.mains))
	copy(mains, r.mains)
	return mains
}

// Subs returns the sub-categories of main in insertion order.
func (r *CategoryRegistry) Subs(main string) []string {
	subs := make([]string, len(r.subs[main]))
	copy(subs, r.subs[main])
	return subs
}

// Has reports whether main (and, when sub is non-empty, main/sub) is registered.
func (r *CategoryRegistry) Has(main, sub string) bool {
	subs, exists := r.subs[main]
	if !exists {
		return false
	}
	if sub == "" {
		return true
	}
	for _, s := range subs {
		if s == sub {
			return true
		}
	}
	return false
}

// Len returns the number of main categories.
func (r *CategoryRegistry) Len() int {
	return len(r.mains)
}
