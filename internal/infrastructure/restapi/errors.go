package restapi

// APIErrorResponse is the body of every non-2xx API response.
type APIErrorResponse struct {
	Error string `json:"error"`
}
