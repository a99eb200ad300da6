package importer

import "testing"

func TestJSONLike(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		mimeType string
		want     bool
	}{
		{"json mime", "https://site.example/anything", "application/json", true},
		{"json mime with charset", "https://site.example/x", "application/json; charset=utf-8", true},
		{"json extension", "https://site.example/report.json", "text/plain", true},
		{"json extension with query", "https://site.example/report.json?v=2", "text/plain", true},
		{"api path", "https://site.example/api/v2/report", "text/html", true},
		{"data path", "https://site.example/data/scores", "text/html", true},
		{"plain page", "https://site.example/dashboard", "text/html", false},
		{"image", "https://site.example/logo.png", "image/png", false},
		{"query noise not matched", "https://site.example/page?redirect=api", "text/html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonLike(tt.url, tt.mimeType); got != tt.want {
				t.Errorf("jsonLike(%q, %q) = %v, want %v", tt.url, tt.mimeType, got, tt.want)
			}
		})
	}
}

func TestCapture_ResponsesReturnsSnapshot(t *testing.T) {
	c := &capture{}
	c.responses = append(c.responses, capturedJSON(t, "https://a.example/api/1", `{"a":1}`))

	snap := c.Responses()
	if len(snap) != 1 {
		t.Fatalf("expected 1 response, got %d", len(snap))
	}
	snap[0].URL = "mutated"
	if c.responses[0].URL != "https://a.example/api/1" {
		t.Error("snapshot mutation leaked into the capture buffer")
	}
}
