package dtos

// VerifyPINRequest carries the PIN to check. An absent PIN simply
// fails the comparison; it is not a validation error.
type VerifyPINRequest struct {
	PIN string `json:"pin"`
}
