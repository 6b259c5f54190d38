package dto

// SuggestPriceRequest mirrors the original advisor call: format and category
// are both required.
type SuggestPriceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Format      string `json:"format"`
	Category    string `json:"category"`
}

type SuggestPriceResponse struct {
	SuggestedPrice float64      `json:"suggestedPrice"`
	Factors        PriceFactors `json:"factors"`
}

type PriceFactors struct {
	FormatFactor   string `json:"formatFactor"`
	CategoryFactor string `json:"categoryFactor"`
	ContentLength  int    `json:"contentLength"`
}
