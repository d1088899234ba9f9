package models

// AccessKind enumerates the outcomes of an access resolution. Each kind
// maps to a distinct HTTP signal so clients can branch without guessing.
type AccessKind string

const (
	AccessGranted         AccessKind = "granted"
	AccessPaymentRequired AccessKind = "payment_required"
	AccessInvalidPassword AccessKind = "invalid_password"
	AccessAccountDisabled AccessKind = "account_disabled"
)

// AccessResult is the decision for one content item and one requester.
// URL is populated only when Kind is AccessGranted.
type AccessResult struct {
	Kind        AccessKind `json:"kind"`
	URL         string     `json:"url,omitempty"`
	CheckoutURL string     `json:"checkoutUrl,omitempty"`
}
