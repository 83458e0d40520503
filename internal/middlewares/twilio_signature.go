package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/whatsapp"
)

// VerifyTwilioSignature rejects webhook requests whose X-Twilio-Signature
// header does not match the posted form. publicURL must be the exact URL
// Twilio was configured to call; when empty, the URL is reconstructed from
// the request, which works behind proxies that set X-Forwarded-Proto.
func VerifyTwilioSignature(sender *whatsapp.Sender, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Malformed form body"})
			return
		}

		params := make(map[string]string, len(c.Request.PostForm))
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		url := publicURL
		if url == "" {
			scheme := "https"
			if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
				scheme = proto
			} else if c.Request.TLS == nil {
				scheme = "http"
			}
			url = scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
		}

		signature := c.GetHeader("X-Twilio-Signature")
		if !sender.ValidateSignature(url, params, signature) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid Twilio signature"})
			return
		}

		c.Next()
	}
}
