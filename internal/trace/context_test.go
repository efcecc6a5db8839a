package trace

import (
	"context"
	"strings"
	"testing"
)

func TestExtractPathTag(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"/api/hill", "hill"},
		{"/api/playfair/", "playfair"},
		{"/health", "health"},
		{"/", "/"},
		{"", "/"},
	}
	for _, tc := range testCases {
		if got := ExtractPathTag(tc.path); got != tc.want {
			t.Errorf("ExtractPathTag(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestRequestContext(t *testing.T) {
	id := GenerateRequestID()
	if !strings.HasPrefix(id, "req-") || len(id) != 10 {
		t.Errorf("request id = %q", id)
	}

	ctx := WithPathTag(WithRequestID(context.Background(), id), "otp")
	if GetRequestID(ctx) != id || GetPathTag(ctx) != "otp" {
		t.Errorf("context values = %q, %q", GetRequestID(ctx), GetPathTag(ctx))
	}
	if got := LogPrefix(ctx, "encrypt"); got != "["+id+"] [otp] [encrypt]" {
		t.Errorf("LogPrefix = %q", got)
	}
	if got := LogPrefix(context.Background(), "x"); got != "[req-??????] [/] [x]" {
		t.Errorf("LogPrefix(empty) = %q", got)
	}
}
