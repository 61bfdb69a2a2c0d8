package dtos

// SuccessResponse is the generic `{"success":true}` body shared by the
// mutation endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ValidityResponse is the body for boolean verification results.
type ValidityResponse struct {
	Valid bool `json:"valid"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
