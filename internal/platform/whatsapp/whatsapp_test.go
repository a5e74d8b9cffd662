package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNormalizePhone_AddsCountryCode(t *testing.T) {
	got := NormalizePhone("(11) 98888-7777", "55")
	if got != "5511988887777" {
		t.Errorf("expected 5511988887777, got %s", got)
	}
}

func TestNormalizePhone_KeepsExistingPrefix(t *testing.T) {
	got := NormalizePhone("5511988887777", "55")
	if got != "5511988887777" {
		t.Errorf("expected unchanged number, got %s", got)
	}
}

func TestNormalizePhone_EmptyInput(t *testing.T) {
	if got := NormalizePhone("abc", "55"); got != "" {
		t.Errorf("expected empty result for digit-free input, got %q", got)
	}
}

func TestRenderTemplate_Interpolates(t *testing.T) {
	starts := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	msg, err := RenderTemplate(TemplateReminder, AppointmentData("Maria Silva", "Dr. Carlos Lima", starts))
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	for _, want := range []string{"Maria Silva", "Dr. Carlos Lima", "15/03/2026", "14:30"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got: %s", want, msg)
		}
	}
	if strings.Contains(msg, "{{") {
		t.Errorf("unresolved placeholder left in message: %s", msg)
	}
}

func TestRenderTemplate_UnknownID(t *testing.T) {
	if _, err := RenderTemplate("no_such_template", nil); err == nil {
		t.Error("expected an error for an unknown template id")
	}
}

func TestClient_SendText_Success(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotBody = req.Text.Body
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []map[string]string{{"id": "wamid.123"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-abc", "5511900000000")
	result := client.SendText(context.Background(), "5511988887777", "hello")

	if !result.Success {
		t.Fatalf("expected success, got error: %v", result.Error)
	}
	if result.MessageID != "wamid.123" {
		t.Errorf("expected provider message id, got %q", result.MessageID)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if gotBody != "hello" {
		t.Errorf("expected message body to reach provider, got %q", gotBody)
	}
}

func TestClient_SendText_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid token"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-token", "5511900000000")
	result := client.SendText(context.Background(), "5511988887777", "hello")

	if result.Success {
		t.Fatal("expected failure when provider rejects the send")
	}
	errStr, ok := result.Error.(string)
	if !ok || !strings.Contains(errStr, "401") {
		t.Errorf("expected provider status in error payload, got %v", result.Error)
	}
}

func TestClient_SendText_NetworkFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "tok", "sender")
	result := client.SendText(context.Background(), "5511988887777", "hello")
	if result.Success {
		t.Fatal("expected failure when provider is unreachable")
	}
}

func TestMockSender_RecordsCalls(t *testing.T) {
	mock := NewMockSender()
	r1 := mock.SendText(context.Background(), "5511988887777", "first")
	if !r1.Success || r1.MessageID == "" {
		t.Errorf("expected mock success with message id, got %+v", r1)
	}

	mock.ShouldFail = true
	r2 := mock.SendText(context.Background(), "5511988887777", "second")
	if r2.Success {
		t.Error("expected mock failure when ShouldFail is set")
	}

	calls := mock.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", len(calls))
	}
	if calls[1].Message != "second" {
		t.Errorf("unexpected recorded message %q", calls[1].Message)
	}
}
