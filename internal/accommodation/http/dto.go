package http

import "github.com/nekogravitycat/resort-booking-backend/internal/accommodation"

type AccommodationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func NewAccommodationResponse(o accommodation.Option) AccommodationResponse {
	return AccommodationResponse{
		ID:          o.ID,
		Name:        o.Name,
		Price:       o.Price,
		Description: o.Description,
		ImageURL:    "/v1/accommodations/" + o.ID + "/image",
	}
}

// AccommodationTag is a brief representation of an accommodation embedded in other responses.
type AccommodationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ByIDRequest struct {
	ID string `uri:"id" binding:"required"`
}

type ImageRequest struct {
	Thumbnail bool `form:"thumbnail"`
}
