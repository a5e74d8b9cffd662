package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_ClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_IgnoresNegativeValues(t *testing.T) {
	p := paramsFor(t, "limit=-3&offset=-10")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit for negative input, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0 for negative input, got %d", p.Offset)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	p := Params{Limit: 10, Offset: 0}
	resp := NewResponse([]int{1, 2, 3}, 25, p)
	if !resp.HasMore {
		t.Error("expected has_more for 25 total with first page of 10")
	}

	last := NewResponse([]int{1}, 25, Params{Limit: 10, Offset: 20})
	if last.HasMore {
		t.Error("expected no more results past the final page")
	}
}
