package catapi

// ImageResponse represents one element of the /images/search response array.
// Fields we do not render are left out and ignored by the decoder.
type ImageResponse struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Breeds []Breed `json:"breeds,omitempty"`
}

// Breed represents a breed entry attached to an image
type Breed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse is the body The Cat API sends with some 4xx responses
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
