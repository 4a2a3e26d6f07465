package http

// Envelope is the {ok, error} frame shared by every JSON response.
// Handlers embed it next to their payload field.
type Envelope struct {
	OK      bool              `json:"ok"`
	Error   string            `json:"error,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
	Debug   interface{}       `json:"debug,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"address"`
	Message string                 `json:"message,omitempty" example:"Missing \"address\""`
	Params  map[string]interface{} `json:"params,omitempty"`
}
