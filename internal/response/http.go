package response

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type PaginatedResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
	Total   int64  `json:"total"`
	Skip    int    `json:"skip"`
	Limit   int    `json:"limit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
