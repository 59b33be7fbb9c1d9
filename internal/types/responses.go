package types

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SampleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SpotResponse struct {
	ID      uint               `json:"id"`
	Label   string             `json:"label"`
	Mineral *string            `json:"mineral"`
	Values  map[string]float64 `json:"values"`
}

type AreaResponse struct {
	ID     uint               `json:"id"`
	Label  string             `json:"label"`
	Weight float64            `json:"weight"`
	Values map[string]float64 `json:"values"`
}

type ProfileResponse struct {
	ID      uint   `json:"id"`
	Label   string `json:"label"`
	Mineral string `json:"mineral"`
}

type ProfileSpotResponse struct {
	ID     uint               `json:"id"`
	Index  int                `json:"index"`
	Values map[string]float64 `json:"values"`
}
