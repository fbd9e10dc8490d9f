package models

// LoginResponse is the login endpoint payload. Message is set when Success is false.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	UserID  int    `json:"userid"`
	Message string `json:"message"`
}

// SignupRequest holds the normalized fields sent to the signup endpoint.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Age             int    `json:"age"`
	Nationality     string `json:"nationality"`
	Gender          string `json:"gender"`
	PreferredGenres []int  `json:"preferred_genres"`
}

// StatusResponse is the generic {success, message} acknowledgement used by
// signup and feedback.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
