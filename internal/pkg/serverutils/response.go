package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse carries the error kind so clients can branch without parsing the message.
func ErrorResponse(code int, kind, message string) *Response[any] {
	return &Response[any]{
		Success: false,
		Code:    code,
		Message: message,
		Error:   kind,
	}
}
