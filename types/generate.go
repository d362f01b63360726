package types

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse carries either the model text or an error message.
type GenerateResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type StatusResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}
