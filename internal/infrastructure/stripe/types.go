package stripe

// Customer is a billing customer object
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CheckoutSessionParams describes a hosted checkout session to create
type CheckoutSessionParams struct {
	CustomerID  string
	ProductName string
	Amount      int64
	Currency    string
	Quantity    int
	SuccessURL  string
	CancelURL   string
	ReferenceID string
}

// Session is a hosted checkout session
type Session struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentStatus   string `json:"payment_status"`
	Status          string `json:"status"`
	PaymentIntentID string `json:"payment_intent"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
}

// Paid reports whether the session's payment has settled
func (s *Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

// PaymentIntent is the payment object a completed session resolves to
type PaymentIntent struct {
	ID           string  `json:"id"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	LatestCharge *Charge `json:"latest_charge"`
}

// Charge carries the receipt metadata of a settled payment
type Charge struct {
	ID                   string `json:"id"`
	Amount               int64  `json:"amount"`
	Currency             string `json:"currency"`
	Status               string `json:"status"`
	Refunded             bool   `json:"refunded"`
	ReceiptURL           string `json:"receipt_url"`
	Created              int64  `json:"created"`
	PaymentMethodDetails struct {
		Card struct {
			Last4 string `json:"last4"`
			Brand string `json:"brand"`
		} `json:"card"`
	} `json:"payment_method_details"`
}

// apiError is the error envelope returned by the billing API
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
