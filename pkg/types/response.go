package types

// ErrorBody is the JSON shape of every REST error.
type ErrorBody struct {
	Detail  string `json:"detail"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}
