package payment_completed

// completedEvent — событие платежного шлюза о завершенной оплате заказа.
type completedEvent struct {
	OrderID     string `json:"order_ID"`
	FinalAmount int64  `json:"final_amount"`
	EventID     string `json:"event_ID"`
}
