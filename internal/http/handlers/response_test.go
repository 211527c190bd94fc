package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/services"
)

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal || resp.Message != "kaboom" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_404_NotLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-404")
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json 404: %v", err)
	}
	if er.RequestID != "rid-404" || er.Code != ErrCodeNotFound || er.Message != "nope" {
		t.Fatalf("unexpected 404 body: %+v", er)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx should not log, got: %s", buf.String())
	}
}

func Test_failErr_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrTaskNotFound, http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrSettingNotFound), http.StatusNotFound, ErrCodeNotFound},
		{services.ErrEmptyTitle, http.StatusBadRequest, ErrCodeValidation},
		{integrations.ErrUnknownScope, http.StatusBadRequest, ErrCodeValidation},
		{services.ErrDuplicateSlug, http.StatusConflict, ErrCodeConflict},
		{fmt.Errorf("x: %w", integrations.ErrServiceDisabled), http.StatusConflict, ErrCodeServiceDisabled},
		{integrations.ErrMissingEntity, http.StatusBadGateway, ErrCodeDispatchFailed},
		{errors.New("disk full"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { failErr(c, tc.err) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != tc.status {
			t.Errorf("%v: status=%d want %d", tc.err, w.Code, tc.status)
			continue
		}
		var er ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &er)
		if er.Code != tc.code {
			t.Errorf("%v: code=%q want %q", tc.err, er.Code, tc.code)
		}
	}
}

func Test_clampPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string][2]int{
		"":                      {1, 20},
		"?page=0&page_size=0":   {1, 1},
		"?page=3&page_size=50":  {3, 50},
		"?page=x&page_size=999": {1, 100},
	}
	for q, want := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/"+q, nil)
		p, s := clampPagination(c)
		if p != want[0] || s != want[1] {
			t.Errorf("%q: got (%d,%d) want %v", q, p, s, want)
		}
	}
}

func Test_newPagination(t *testing.T) {
	p := newPagination(2, 10, 25)
	if p.TotalPages != 3 || !p.HasNext {
		t.Fatalf("unexpected: %+v", p)
	}
	p = newPagination(3, 10, 25)
	if p.HasNext {
		t.Fatalf("last page should not have next: %+v", p)
	}
}
