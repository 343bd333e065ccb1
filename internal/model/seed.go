package model

import "time"

// SeedBusinesses returns the built-in listings shown when the remote store
// is unreachable. The app never renders an empty map.
func SeedBusinesses(now time.Time) []Business {
	return []Business{
		{
			ID:          "seed-1",
			Name:        "Aria's Artisan Bakery",
			Category:    CategoryFoodDrink,
			Location:    Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			WhatsApp:    "1234567890",
			Phone:       "1234567890",
			Description: "Handcrafted sourdough and pastries made with local organic grains. Fresh out of the oven every morning!",
			ImageURL:    "https://picsum.photos/seed/bakery/600/400",
			Status:      StatusActive,
			CreatedAt:   now,
		},
		{
			ID:          "seed-2",
			Name:        "Green Thumb Gardening",
			Category:    CategoryHomeServices,
			Location:    Coordinate{Latitude: 40.7300, Longitude: -73.9950},
			WhatsApp:    "9876543210",
			Phone:       "9876543210",
			Description: "Sustainable garden design and maintenance. We specialize in native plants and urban vegetable patches.",
			ImageURL:    "https://picsum.photos/seed/garden/600/400",
			Status:      StatusActive,
			CreatedAt:   now,
		},
		{
			ID:          "seed-3",
			Name:        "Precision Cuts Barber",
			Category:    CategoryHairBeauty,
			Location:    Coordinate{Latitude: 40.7200, Longitude: -74.0100},
			WhatsApp:    "5551234567",
			Phone:       "5551234567",
			Description: "Master barber with 15 years experience. Traditional hot towel shaves and modern fades.",
			ImageURL:    "https://picsum.photos/seed/barber/600/400",
			Status:      StatusActive,
			CreatedAt:   now,
		},
	}
}
