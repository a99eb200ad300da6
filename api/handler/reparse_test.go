package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/credimport/models"
)

func reparseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/reparse", Reparse())
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReparse_InlineHTML(t *testing.T) {
	r := reparseRouter()
	body := `{"html": "<div class=\"transunion_score\">712</div>"}`

	w := postJSON(t, r, "/reparse", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.ReparseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Report == nil {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Report.Scores.TransUnion != 712 {
		t.Errorf("scores = %+v", resp.Report.Scores)
	}
	if resp.Analytics == nil {
		t.Error("analytics missing from successful reparse")
	}
}

func TestReparse_RequiresExactlyOneSource(t *testing.T) {
	r := reparseRouter()

	for name, body := range map[string]string{
		"neither": `{}`,
		"both":    `{"html": "<p/>", "html_path": "/tmp/x.html"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := postJSON(t, r, "/reparse", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestReparse_MissingSnapshotFile(t *testing.T) {
	r := reparseRouter()
	w := postJSON(t, r, "/reparse", `{"html_path": "/nonexistent/report.html"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestReparse_MalformedBody(t *testing.T) {
	r := reparseRouter()
	w := postJSON(t, r, "/reparse", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
