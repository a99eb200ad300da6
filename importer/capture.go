package importer

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/use-agent/credimport/models"
)

// capture retains structured payloads intercepted while the report
// renders. The list is scoped to one page's lifetime and never shared
// across sessions.
type capture struct {
	mu        sync.Mutex
	responses []models.CapturedResponse
}

// attachCapture installs the listener. It must be attached before the
// first navigation so no early async responses are missed; the event
// goroutine exits when the page closes.
func attachCapture(page *rod.Page) *capture {
	c := &capture{}
	go page.EachEvent(func(e *proto.NetworkResponseReceived) {
		if !jsonLike(e.Response.URL, e.Response.MIMEType) {
			return
		}
		res, err := proto.NetworkGetResponseBody{RequestID: e.RequestID}.Call(page)
		if err != nil {
			return
		}
		body := res.Body
		if res.Base64Encoded {
			decoded, decErr := base64.StdEncoding.DecodeString(body)
			if decErr != nil {
				return
			}
			body = string(decoded)
		}
		var data any
		// Parse failures are silently discarded: plenty of "api" URLs
		// return HTML or empty bodies.
		if err := json.Unmarshal([]byte(body), &data); err != nil {
			return
		}
		c.mu.Lock()
		c.responses = append(c.responses, models.CapturedResponse{URL: e.Response.URL, Data: data})
		c.mu.Unlock()
	})()
	return c
}

// Responses returns a snapshot of the captured payloads in arrival order.
func (c *capture) Responses() []models.CapturedResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CapturedResponse, len(c.responses))
	copy(out, c.responses)
	return out
}

// jsonLike inspects content-type and URL for JSON-likeness.
func jsonLike(url, mimeType string) bool {
	if strings.Contains(strings.ToLower(mimeType), "json") {
		return true
	}
	lower := strings.ToLower(url)
	if q := strings.IndexByte(lower, '?'); q >= 0 {
		lower = lower[:q]
	}
	return strings.HasSuffix(lower, ".json") ||
		strings.Contains(lower, "api") ||
		strings.Contains(lower, "data")
}
