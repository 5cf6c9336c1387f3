package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// LoginRequest is the request body for signing in
type LoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// HitRequest is the request body for whacking a slot
type HitRequest struct {
	Slot int `json:"slot"`
}
