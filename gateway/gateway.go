package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is a gateway-issued transaction reference used to correlate the
// client-side payment with server-side verification.
type Order struct {
	ID       string
	Amount   int64 // smallest currency unit (paise / cents)
	Currency string
}

// PaymentGateway is the payment-provider collaborator. It is constructed
// once at startup and passed into the handlers that need it, so tests can
// substitute a fake.
type PaymentGateway interface {
	CreateOrder(amount int64, currency, receipt string) (*Order, error)
	KeyID() string
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type RazorpayGateway struct {
	keyID  string
	secret string
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:  keyID,
		secret: secret,
		client: razorpay.NewClient(keyID, secret),
	}
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder opens a razorpay order for the given amount in the smallest
// currency unit.
func (g *RazorpayGateway) CreateOrder(amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay order create: missing order id in response")
	}

	return &Order{ID: id, Amount: amount, Currency: currency}, nil
}

// VerifyPaymentSignature reports whether the callback signature is authentic for
// this gateway's shared secret.
func (g *RazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, g.secret)
}

// VerifySignature recomputes the expected callback signature as an
// HMAC-SHA256 hex digest over "orderId|paymentId" keyed by the shared
// secret and compares it byte-for-byte against the supplied one. This is
// the sole authenticity check on the payment callback.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
