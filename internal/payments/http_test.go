package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIntents struct {
	secret string
	err    error
	calls  int
	amount int64
}

func (f *fakeIntents) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	f.calls++
	f.amount = amountCents
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

func passthrough(c *gin.Context) { c.Next() }

func newPaymentRouter(t *testing.T, intents IntentCreator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(nil, intents).Register(r, passthrough, passthrough)
	return r
}

func TestCreateIntent_Success(t *testing.T) {
	intents := &fakeIntents{secret: "pi_123_secret_abc"}
	r := newPaymentRouter(t, intents)

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"amount":12050}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pi_123_secret_abc")
	assert.Equal(t, int64(12050), intents.amount)
}

func TestCreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	intents := &fakeIntents{secret: "pi_123"}
	r := newPaymentRouter(t, intents)

	for _, body := range []string{`{"amount":0}`, `{"amount":-500}`, `{}`, `not json`} {
		req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
	}
	assert.Zero(t, intents.calls, "provider must not be called for invalid amounts")
}

func TestCreateIntent_ProviderFailure(t *testing.T) {
	intents := &fakeIntents{err: errors.New("stripe: card_declined")}
	r := newPaymentRouter(t, intents)

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"amount":100}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "card_declined")
}

func TestRecordPayment_MissingData(t *testing.T) {
	r := newPaymentRouter(t, &fakeIntents{})

	cases := []string{
		`{}`,
		`{"bookingId":"b1","amount":100,"transactionId":"tx"}`,
		`{"bookingId":"b1","amount":0,"transactionId":"tx","email":"t@gmail.com"}`,
		`{"bookingId":" ","amount":100,"transactionId":"tx","email":"t@gmail.com"}`,
	}

	for _, body := range cases {
		req := httptest.NewRequest("POST", "/payment-history", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
		assert.Contains(t, rr.Body.String(), "Missing required payment data")
	}
}

func TestHistory_RequiresEmail(t *testing.T) {
	r := newPaymentRouter(t, &fakeIntents{})

	req := httptest.NewRequest("GET", "/payment-history", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email required")
}
