package service

// MonitorStatusReady is reported once the API accepts traffic.
const MonitorStatusReady = "READY"

type MonitorResponse struct {
	Status string `json:"status"`
}

func (r *MonitorResponse) IsReady() bool {
	return r != nil && r.Status == MonitorStatusReady
}

type Card struct {
	CardNum    string      `json:"cardNum,omitempty"`
	CardExpiry *CardExpiry `json:"cardExpiry,omitempty"`
	Cvv        string      `json:"cvv,omitempty"`
	HolderName string      `json:"holderName,omitempty"`
	LastDigits string      `json:"lastDigits,omitempty"`
}

type CardExpiry struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PaymentRequest creates a payment from a payment handle token.
type PaymentRequest struct {
	MerchantRefNum     string `json:"merchantRefNum"`
	Amount             int64  `json:"amount"`
	CurrencyCode       string `json:"currencyCode"`
	PaymentHandleToken string `json:"paymentHandleToken"`
	SettleWithAuth     bool   `json:"settleWithAuth"`
	CustomerID         string `json:"customerId,omitempty"`
	Description        string `json:"description,omitempty"`
	CustomerIP         string `json:"customerIp,omitempty"`
}

type Payment struct {
	ID                 string `json:"id"`
	MerchantRefNum     string `json:"merchantRefNum"`
	Amount             int64  `json:"amount"`
	AvailableToSettle  int64  `json:"availableToSettle,omitempty"`
	CurrencyCode       string `json:"currencyCode"`
	Status             string `json:"status"`
	PaymentType        string `json:"paymentType,omitempty"`
	PaymentHandleToken string `json:"paymentHandleToken,omitempty"`
	SettleWithAuth     bool   `json:"settleWithAuth"`
	TxnTime            string `json:"txnTime,omitempty"`
	Card               *Card  `json:"card,omitempty"`
}

type PaymentList struct {
	Payments []Payment `json:"payments"`
}
