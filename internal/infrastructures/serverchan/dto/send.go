package dto

// SendResponse is ServerChan's reply envelope. Code 0 means the message was
// accepted.
type SendResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    any    `json:"data"`
}
