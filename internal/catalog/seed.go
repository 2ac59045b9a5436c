package catalog

import "github.com/shopspring/decimal"

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func original(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

const (
	imageMouse    = "https://images.pexels.com/photos/442576/pexels-photo-442576.jpeg?auto=compress&cs=tinysrgb&w=400"
	imageKeyboard = "https://images.pexels.com/photos/1337247/pexels-photo-1337247.jpeg?auto=compress&cs=tinysrgb&w=400"
	imageHeadset  = "https://images.pexels.com/photos/1298601/pexels-photo-1298601.jpeg?auto=compress&cs=tinysrgb&w=400"
)

// SeedProducts is the storefront's fixed product list.
func SeedProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "Razer DeathAdder V3 Pro Gaming Mouse", Category: "gaming-gear", Brand: "razer",
			Price: price("149.99"), OriginalPrice: original("179.99"), Image: imageMouse,
			Rating: 4.5, Reviews: 1234, Badges: []string{"new", "bestseller"},
			Description: "Experience ultimate precision with the Focus Pro 30K sensor and 90-hour battery life.",
			InStock:     true, Featured: true,
		},
		{
			ID: 2, Name: "Corsair K95 RGB Platinum Gaming Keyboard", Category: "gaming-gear", Brand: "corsair",
			Price: price("199.99"), OriginalPrice: original("249.99"), Image: imageKeyboard,
			Rating: 4.7, Reviews: 892, Badges: []string{"sale"},
			Description: "Mechanical gaming keyboard with Cherry MX switches and dynamic RGB lighting.",
			InStock:     true, Featured: true,
		},
		{
			ID: 3, Name: "SteelSeries Arctis 7P Wireless Gaming Headset", Category: "gaming-gear", Brand: "steelseries",
			Price: price("159.99"), Image: imageHeadset,
			Rating: 4.3, Reviews: 567, Badges: []string{"new"},
			Description: "Lossless 2.4GHz wireless gaming headset with 24-hour battery life.",
			InStock:     true, Featured: true,
		},
		{
			ID: 4, Name: "Gaming Legend T-Shirt", Category: "apparel", Brand: "gamevault",
			Price: price("29.99"), Image: imageKeyboard,
			Rating: 4.2, Reviews: 234, Badges: []string{},
			Description: "Premium cotton gaming t-shirt with retro-inspired design.",
			InStock:     true, Featured: true,
		},
		{
			ID: 5, Name: "RGB Gaming Mouse Pad", Category: "accessories", Brand: "razer",
			Price: price("49.99"), OriginalPrice: original("59.99"), Image: imageMouse,
			Rating: 4.4, Reviews: 445, Badges: []string{"sale"},
			Description: "Large RGB mouse pad with customizable lighting effects.",
			InStock:     true, Featured: true,
		},
		{
			ID: 6, Name: "Master Chief Collectible Figure", Category: "collectibles", Brand: "microsoft",
			Price: price("89.99"), Image: imageHeadset,
			Rating: 4.8, Reviews: 156, Badges: []string{"bestseller"},
			Description: "Highly detailed Master Chief figure from Halo series.",
			InStock:     true, Featured: true,
		},
		{
			ID: 7, Name: "Logitech G Pro X Superlight", Category: "gaming-gear", Brand: "logitech",
			Price: price("149.99"), Image: imageMouse,
			Rating: 4.6, Reviews: 789, Badges: []string{"new"},
			Description: "Ultra-lightweight wireless gaming mouse for esports professionals.",
			InStock:     true,
		},
		{
			ID: 8, Name: "HyperX Cloud II Gaming Headset", Category: "gaming-gear", Brand: "hyperx",
			Price: price("99.99"), OriginalPrice: original("129.99"), Image: imageHeadset,
			Rating: 4.4, Reviews: 1567, Badges: []string{"sale"},
			Description: "7.1 virtual surround sound gaming headset with memory foam.",
			InStock:     true,
		},
		{
			ID: 9, Name: "ASUS ROG Swift Gaming Monitor", Category: "gaming-gear", Brand: "asus",
			Price: price("599.99"), OriginalPrice: original("699.99"), Image: imageKeyboard,
			Rating: 4.7, Reviews: 234, Badges: []string{"sale"},
			Description: "27-inch 1440p 165Hz gaming monitor with G-Sync technology.",
			InStock:     true,
		},
		{
			ID: 10, Name: "Gaming Hoodie - Neon Edition", Category: "apparel", Brand: "gamevault",
			Price: price("59.99"), Image: imageKeyboard,
			Rating: 4.3, Reviews: 123, Badges: []string{"new"},
			Description: "Comfortable gaming hoodie with glow-in-the-dark print.",
			InStock:     true,
		},
		{
			ID: 11, Name: "Gaming Chair Pro", Category: "accessories", Brand: "secretlab",
			Price: price("399.99"), OriginalPrice: original("449.99"), Image: imageMouse,
			Rating: 4.8, Reviews: 567, Badges: []string{"bestseller"},
			Description: "Ergonomic gaming chair with lumbar support and premium materials.",
			InStock:     true,
		},
		{
			ID: 12, Name: "Cyberpunk 2077 Poster Set", Category: "collectibles", Brand: "cdprojekt",
			Price: price("24.99"), Image: imageHeadset,
			Rating: 4.1, Reviews: 89, Badges: []string{},
			Description: "Set of 3 high-quality Cyberpunk 2077 art prints.",
			InStock:     true,
		},
	}
}
