package payment

// StatusPaid is the status value the backend reports for a settled session.
const StatusPaid = "paid"

// CheckoutRequest is the body of POST /api/v1/checkout.
type CheckoutRequest struct {
	Plan      string `json:"plan"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
}

// CheckoutSession carries the hosted checkout URL the browser must be sent to.
type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
}

// Status is the reply of GET /api/v1/payment-status. A non-empty Error is a
// server-signaled failure, not a transport error.
type Status struct {
	Status       string `json:"status,omitempty"`
	Subscription string `json:"subscription,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Failed reports whether the backend signaled an error for the session.
func (s Status) Failed() bool {
	return s.Error != ""
}

// Paid reports whether the session has been paid.
func (s Status) Paid() bool {
	return s.Status == StatusPaid
}
