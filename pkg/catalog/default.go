package catalog

import "neocommerce.in/storefront/pkg/models"

var defaultProducts = []models.ProductRecord{
	{ID: 1, Name: "Luminous Solar On-Grid/GTI Solar Inverter", Category: models.CategoryGaming, Price: 45769, Rating: 4.8, Image: "solar invereter.webp",
		Description: "Grid-tied inverter that feeds surplus rooftop power straight back to the grid."},
	{ID: 2, Name: "Luminous Solar Combo", Category: models.CategoryFashion, Price: 25769, Rating: 4.6, Image: "solar combo.jpg",
		Description: "Panel, battery and inverter bundle sized for a small home."},
	{ID: 3, Name: "Solar Charge Controller", Category: models.CategoryTech, Price: 1000, Rating: 4.3, Image: "controllernew.webp",
		Description: "PWM controller that protects batteries from overcharging."},
	{ID: 4, Name: "Neural Enhancement Glasses", Category: models.CategoryWearables, Price: 74699, Rating: 4.9,
		Image:       "https://images.unsplash.com/photo-1574258495973-f010dfbb5371?w=300&h=200&fit=crop",
		Description: "Smart glasses with a heads-up display and adaptive lenses."},
	{ID: 5, Name: "Gravity-Defying Sneakers", Category: models.CategoryFootwear, Price: 41499, Rating: 4.7,
		Image:       "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=300&h=200&fit=crop",
		Description: "Cushioned sneakers with responsive foam soles."},
	{ID: 6, Name: "Quantum Gaming Mouse", Category: models.CategoryGaming, Price: 8299, Rating: 4.5,
		Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=300&h=200&fit=crop&sat=-100&hue=240",
		Description: "Wireless gaming mouse with a 26K DPI optical sensor."},
	{ID: 7, Name: "Holographic Smartwatch", Category: models.CategoryWearables, Price: 49999, Rating: 4.8,
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=200&fit=crop",
		Description: "Smartwatch with a holographic display and health tracking."},
	{ID: 8, Name: "VR Gaming Headset Pro", Category: models.CategoryGaming, Price: 83299, Rating: 4.9,
		Image:       "https://images.unsplash.com/photo-1592478411213-6153e4ebc696?w=300&h=200&fit=crop",
		Description: "Standalone VR headset with 4K per-eye resolution."},
	{ID: 9, Name: "Smart Contact Lenses", Category: models.CategoryWearables, Price: 124999, Rating: 4.4,
		Image:       "https://images.unsplash.com/photo-1530549387789-4c1017266635?w=300&h=200&fit=crop",
		Description: "Augmented reality contact lenses with a micro display."},
	{ID: 10, Name: "Neon Tech Backpack", Category: models.CategoryAccessories, Price: 12499, Rating: 4.6,
		Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300&h=200&fit=crop",
		Description: "Water-resistant backpack with LED strips and a charging port."},
	{ID: 11, Name: "Cyber Running Shoes", Category: models.CategoryFootwear, Price: 33299, Rating: 4.5,
		Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=200&fit=crop",
		Description: "Lightweight running shoes with smart stride sensors."},
	{ID: 12, Name: "Quantum Wireless Earbuds", Category: models.CategoryTech, Price: 16599, Rating: 4.7,
		Image:       "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=300&h=200&fit=crop",
		Description: "Noise-cancelling wireless earbuds with spatial audio."},
	{ID: 13, Name: "Holographic Fashion Ring", Category: models.CategoryAccessories, Price: 7999, Rating: 4.2,
		Image:       "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=300&h=200&fit=crop",
		Description: "Statement ring with a shifting holographic finish."},
	{ID: 14, Name: "Cyberpunk Gaming Chair", Category: models.CategoryGaming, Price: 58999, Rating: 4.6,
		Image:       "https://images.unsplash.com/photo-1586297135537-94bc9ba060aa?w=300&h=200&fit=crop",
		Description: "Ergonomic gaming chair with RGB lighting and lumbar support."},
	{ID: 15, Name: "Neon Bomber Jacket", Category: models.CategoryFashion, Price: 22499, Rating: 4.3,
		Image:       "https://images.unsplash.com/photo-1521223890158-f9f7c3d5d504?w=300&h=200&fit=crop",
		Description: "Reflective bomber jacket that glows under street lights."},
}

// Default returns the storefront's built-in catalogue.
func Default() *Catalog {
	c, err := FromProducts(defaultProducts)
	if err != nil {
		panic("catalog: invalid default catalogue: " + err.Error())
	}
	return c
}
