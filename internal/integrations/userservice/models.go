package userservice

// Responsable ответственный за обработку заявок из UserService
type Responsable struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	OpenRequests int    `json:"open_requests"` // количество заявок в работе
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
