package client

// Roles a user account can hold.
const (
	RoleCustomer = "customer"
	RoleRider    = "rider"
	RoleAdmin    = "admin"
)

// User is the server's snapshot of an account. It is replaced wholesale on
// login and refresh, and patched field-wise on profile update.
type User struct {
	ID             int     `json:"id"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
	IsOnline       *bool   `json:"is_online,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	DateJoined     string  `json:"date_joined"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// LoginCredentials is the payload for the login endpoint.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the payload for the registration endpoint.
type RegisterData struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
}

// LoginResponse is returned by both login and registration: a fresh token
// pair plus the authenticated user.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// ChangePasswordData is the payload for the change-password endpoint.
type ChangePasswordData struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Delivery statuses reported by the server.
const (
	DeliveryPending   = "pending"
	DeliveryInTransit = "in-transit"
	DeliveryDelivered = "delivered"
	DeliveryCancelled = "cancelled"
)

// Delivery is one parcel delivery owned by the current user.
type Delivery struct {
	ID        int    `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Notification is an in-app notification for the current user.
type Notification struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
