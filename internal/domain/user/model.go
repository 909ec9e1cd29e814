package user

// Credentials is the login form buffer.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the registration form buffer. The same buffer is kept
// frozen through the OTP exchange so the verified fields cannot drift
// before the completion call.
type Registration struct {
	Username       string
	Email          string
	Password       string
	FavoriteAnimal string
	ContactNumber  string
}

// Recovery is the forgot-password form buffer.
type Recovery struct {
	Email          string
	FavoriteAnimal string
}

// Profile is the editable subset of the account record.
type Profile struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	FavoriteAnimal string `json:"favoriteAnimal"`
	ContactNumber  string `json:"contactNumber"`
}
