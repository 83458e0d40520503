package middlewares

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-sql-assistant/internal/config"
	"dataset-sql-assistant/internal/whatsapp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAuthToken = "12345"

// sign computes the X-Twilio-Signature value the way Twilio does: the full
// URL, then each form key and value in sorted key order, HMAC-SHA1 with the
// auth token, base64.
func sign(rawURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(rawURL)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(form.Get(k))
	}

	mac := hmac.New(sha1.New, []byte(testAuthToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newSignedRouter(t *testing.T, publicURL string) *gin.Engine {
	t.Helper()
	sender, err := whatsapp.NewSender(config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  testAuthToken,
		FromNumber: "+1555000",
	})
	require.NoError(t, err)

	router := gin.New()
	router.POST("/webhook", VerifyTwilioSignature(sender, publicURL), func(c *gin.Context) {
		c.String(http.StatusOK, "passed")
	})
	return router
}

func TestVerifyTwilioSignatureAccepts(t *testing.T) {
	publicURL := "https://bot.example.com/webhook"
	router := newSignedRouter(t, publicURL)

	form := url.Values{
		"From": {"whatsapp:+1555000"},
		"Body": {"how many employees?"},
	}

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", sign(publicURL, form))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "passed", w.Body.String())
}

func TestVerifyTwilioSignatureRejects(t *testing.T) {
	router := newSignedRouter(t, "https://bot.example.com/webhook")

	form := url.Values{"Body": {"hello"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", "bogus")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyTwilioSignatureMissingHeader(t *testing.T) {
	router := newSignedRouter(t, "https://bot.example.com/webhook")

	form := url.Values{"Body": {"hello"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyTwilioSignatureReconstructsURL(t *testing.T) {
	// no configured public URL: the middleware rebuilds it from the request
	router := newSignedRouter(t, "")

	form := url.Values{"Body": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "https://bot.example.com/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Twilio-Signature", sign("https://bot.example.com/webhook", form))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
