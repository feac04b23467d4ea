package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_CreateCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/customers", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		require.Equal(t, "Jane Roe", r.PostForm.Get("name"))
		require.Equal(t, "jane@example.com", r.PostForm.Get("email"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cus_123","name":"Jane Roe","email":"jane@example.com"}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)
	customer, err := client.CreateCustomer(context.Background(), "Jane Roe", "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, "cus_123", customer.ID)
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "payment", r.PostForm.Get("mode"))
		require.Equal(t, "cus_123", r.PostForm.Get("customer"))
		require.Equal(t, "999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		require.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.example.com/cs_test_1","payment_status":"unpaid","status":"open"}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{
		CustomerID:  "cus_123",
		ProductName: "Guardian Monthly",
		Amount:      999,
		Currency:    "usd",
		SuccessURL:  "https://app.example.com/success",
		CancelURL:   "https://app.example.com/cancel",
	})
	require.NoError(t, err)
	require.Equal(t, "cs_test_1", session.ID)
	require.False(t, session.Paid())
}

func TestClient_GetSessionPaid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/sessions/cs_test_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","payment_status":"paid","status":"complete","payment_intent":"pi_1","amount_total":999,"currency":"usd"}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)
	session, err := client.GetSession(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.True(t, session.Paid())
	require.Equal(t, "pi_1", session.PaymentIntentID)
}

func TestClient_GetPaymentIntentExpandsCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment_intents/pi_1", r.URL.Path)
		require.Equal(t, "latest_charge", r.URL.Query().Get("expand[]"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"pi_1","amount":999,"currency":"usd","status":"succeeded",
			"latest_charge":{
				"id":"ch_1","amount":999,"currency":"usd","status":"succeeded",
				"receipt_url":"https://pay.example.com/receipts/ch_1","created":1756684800,
				"payment_method_details":{"card":{"last4":"4242","brand":"visa"}}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)
	intent, err := client.GetPaymentIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	require.NotNil(t, intent.LatestCharge)
	require.Equal(t, "4242", intent.LatestCharge.PaymentMethodDetails.Card.Last4)
	require.Equal(t, "https://pay.example.com/receipts/ch_1", intent.LatestCharge.ReceiptURL)
}

func TestClient_GetPaymentIntentRefundedCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// a refunded charge still reports status succeeded on the wire
		w.Write([]byte(`{
			"id":"pi_2","amount":999,"currency":"usd","status":"succeeded",
			"latest_charge":{
				"id":"ch_2","amount":999,"currency":"usd","status":"succeeded","refunded":true,
				"receipt_url":"https://pay.example.com/receipts/ch_2","created":1756684800,
				"payment_method_details":{"card":{"last4":"4242","brand":"visa"}}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)
	intent, err := client.GetPaymentIntent(context.Background(), "pi_2")
	require.NoError(t, err)
	require.NotNil(t, intent.LatestCharge)
	require.Equal(t, "succeeded", intent.LatestCharge.Status)
	require.True(t, intent.LatestCharge.Refunded)
}

func TestClient_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)
	_, err := client.GetSession(context.Background(), "cs_bad")
	require.Error(t, err)
	require.Contains(t, err.Error(), "card_declined")
}
