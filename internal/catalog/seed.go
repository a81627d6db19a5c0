package catalog

import "cart-service/internal/models"

// Seed returns the built-in demo catalog, used when no database is
// configured.
func Seed() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Minimalist Ceramic Vase",
			Description: "A beautifully crafted ceramic vase with a minimalist design, perfect for modern homes.",
			Price:       45.99,
			Category:    "Home Decor",
			Specifications: map[string]string{
				"Material":   "Ceramic",
				"Dimensions": `10" H x 4" W`,
				"Color":      "Off-white",
			},
			Popularity: 8,
			Rating:     4.5,
		},
		{
			ID:          "2",
			Name:        "Linen Throw Pillow",
			Description: "Soft and comfortable linen throw pillow in a neutral tone.",
			Price:       29.50,
			Category:    "Textiles",
			Specifications: map[string]string{
				"Material":   "100% Linen",
				"Dimensions": `18" x 18"`,
				"Color":      "Natural Beige",
			},
			Popularity: 10,
			Rating:     4.8,
		},
		{
			ID:          "3",
			Name:        "Artisan Wooden Bowl",
			Description: "Handcrafted wooden bowl, ideal for serving or as a decorative centerpiece.",
			Price:       62.00,
			Category:    "Kitchenware",
			Specifications: map[string]string{
				"Material":   "Teak Wood",
				"Dimensions": `12" Diameter x 3" H`,
				"Finish":     "Food-safe oil",
			},
			Popularity: 6,
			Rating:     5,
		},
		{
			ID:          "4",
			Name:        "Copper Desk Lamp",
			Description: "Elegant copper desk lamp with an adjustable arm.",
			Price:       89.99,
			Category:    "Lighting",
			Popularity:  7,
			Rating:      4.2,
		},
		{
			ID:          "5",
			Name:        "Minimalist Wall Clock",
			Description: "A sleek and silent wall clock with a minimalist face.",
			Price:       55.00,
			Category:    "Home Decor",
			Specifications: map[string]string{
				"Material":   "Metal, Glass",
				"Dimensions": `12" Diameter`,
				"Movement":   "Silent Quartz",
			},
			Popularity: 9,
			Rating:     4.6,
		},
		{
			ID:          "6",
			Name:        "Organic Cotton Hand Towels",
			Description: "Set of two luxurious organic cotton hand towels.",
			Price:       34.99,
			Category:    "Textiles",
			Popularity:  5,
			Rating:      4.0,
		},
	}
}
