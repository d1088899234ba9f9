package models

// RequesterIdentity carries the client-supplied billing identity. Both
// fields are unauthenticated claims; the gateway verdict for the pair is
// the only authority the server trusts.
type RequesterIdentity struct {
	Email    string `json:"email"`
	DeviceID string `json:"deviceId"`
}

// SubscriptionVerdict is the gateway's per-request answer. It is never
// cached or persisted server-side.
type SubscriptionVerdict struct {
	Access      bool   `json:"access"`
	Disabled    bool   `json:"disabled,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// Plan is a purchasable subscription plan advertised by the gateway.
type Plan struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PaymentInitiation is the gateway's response to starting a checkout.
type PaymentInitiation struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}
