package report

type availabilityDTO struct {
	Date      string `json:"date"`
	Item      string `json:"item"`
	Category  string `json:"category,omitempty"`
	Available int    `json:"available"`
}
