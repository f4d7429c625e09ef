package entities

type RoleType string

const (
	RoleCustomer   RoleType = "customer"
	RoleRestaurant RoleType = "restaurant"
	RoleRider      RoleType = "rider"
	RoleAdmin      RoleType = "admin"
)

func (t RoleType) String() string {
	return string(t)
}

func (t RoleType) Valid() bool {
	switch t {
	case RoleCustomer, RoleRestaurant, RoleRider, RoleAdmin:
		return true
	}
	return false
}

// Caller доверенные данные об аккаунте от upstream шлюза авторизации.
type Caller struct {
	AccountID string
	Role      RoleType
	Name      string
	Phone     string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func CustomerChannel(accountID string) string {
	return "customer_" + accountID
}
