package api

// WorkoutRecord is a single workout row as the admin backend returns it.
// ID and the owning user's fields are server-assigned and read-only; the
// remaining fields are editable through the console.
type WorkoutRecord struct {
	ID             int    `json:"id"`
	UserName       string `json:"user_name"`
	UserEmail      string `json:"user_email"`
	WorkoutType    string `json:"workout_type"`
	Duration       int    `json:"duration"`
	CaloriesBurned int    `json:"calories_burned"`
	ImageURL       string `json:"image_url,omitempty"`
}

// loginRequest is the body sent to the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the success body returned by the login endpoint.
type loginResponse struct {
	Token string `json:"token"`
}

// errorBody is the shape the backend uses for error responses.
type errorBody struct {
	Error string `json:"error"`
}
