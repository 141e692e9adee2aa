package domain

// User is the account record returned by the backend. LastActivity is
// reformatted into the store's display timezone before it is stored here,
// so it is a display string rather than a timestamp.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Address      string `json:"address,omitempty"`
	Governorate  string `json:"governorate,omitempty"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
	Points       int    `json:"points"`
	LastActivity string `json:"last_activity,omitempty"`
}

// Registration carries the fields posted to the register endpoint.
type Registration struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// UserUpdate carries the mutable account fields for admin user management
// and points adjustments. Nil fields are left unchanged.
type UserUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsStaff     *bool   `json:"is_staff,omitempty"`
	Points      *int    `json:"points,omitempty"`
}
