// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ""},
		{"canceled", fmt.Errorf("post: %w", context.Canceled), Canceled},
		{"deadline", &url.Error{Op: "Post", URL: "http://m", Err: context.DeadlineExceeded}, Timeout},
		{"dns", &url.Error{Op: "Post", URL: "http://m", Err: &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "m"}}}, DNS},
		{"refused", &url.Error{Op: "Post", URL: "http://m", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}, ConnectionRefused},
		{"tls", errors.New("tls: failed to verify certificate: x509: unknown authority"), TLS},
		{"other", errors.New("EOF"), Network},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHints(t *testing.T) {
	if h := ConnectionRefused.Hints("matrix.local:8080"); len(h) == 0 || h[0] != "The matrix service is not running on matrix.local:8080" {
		t.Errorf("Hints() = %v", h)
	}
	if h := Canceled.Hints("x"); h != nil {
		t.Errorf("Canceled.Hints() = %v, want none", h)
	}
	if got := HostOf("http://matrix.local:8080/api"); got != "matrix.local:8080" {
		t.Errorf("HostOf() = %s", got)
	}
	if got := HostOf("::"); got != "the matrix host" {
		t.Errorf("HostOf(bad) = %s", got)
	}
}
