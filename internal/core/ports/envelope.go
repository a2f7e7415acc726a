package ports

// Envelope is the uniform response shape shared by the API and its clients.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T, message string) Envelope[T] {
	return Envelope[T]{Data: data, Message: message, Success: true}
}
