package order_status_changed

// statusChangedEvent смена статуса со стороны ресторанной системы.
// AccountID владелец ресторана, от имени которого применяется переход.
type statusChangedEvent struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	AccountID string `json:"restaurant_account_id"`
}
