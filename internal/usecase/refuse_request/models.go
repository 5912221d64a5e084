package refuse_request

// Request модель запроса на отказ по заявке
type Request struct {
	RequestID     int64
	Reason        string
	ResponsableID int64
}

// Response модель результата отказа
type Response struct {
	RequestID int64
	Status    string
	Reason    string
}
