package entities

type Restaurant struct {
	ID       string
	OwnerID  string
	Name     string
	Location Coordinate
	Phone    string
	IsOpen   bool
}

func RestaurantChannel(restaurantID string) string {
	return "restaurant_" + restaurantID
}
