package models

// InferenceStatus reports whether the inference endpoint is reachable and
// serves the configured model.
type InferenceStatus struct {
	Model           string   `json:"model"`
	ModelAvailable  bool     `json:"model_available"`
	AvailableModels []string `json:"available_models"`
}

// PaymentSheet holds the opaque tokens a client-side payment SDK needs.
type PaymentSheet struct {
	PaymentIntent  string `json:"paymentIntent"`
	EphemeralKey   string `json:"ephemeralKey"`
	Customer       string `json:"customer"`
	PublishableKey string `json:"publishableKey"`
}
