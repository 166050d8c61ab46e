package models

// Event is a published listing in the catalog. Buyers only ever read it;
// the image field carries a URI, never uploaded binary data.
type Event struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	Date           string  `json:"date"`
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	Image          string  `json:"image"`
	Capacity       int     `json:"capacity"`
	OrganizerID    string  `json:"organizer_id"`
	OrganizerEmail string  `json:"organizer_email"`
}

// Identity is the slice of the auth record the services care about.
// A zero Identity means "not signed in".
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (i Identity) Valid() bool {
	return i.ID != ""
}
