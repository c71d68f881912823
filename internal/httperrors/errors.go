// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors classifies failed HTTP exchanges with the matrix service
// so they can be explained to the user.
package httperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// Reason is the likely cause of a request that never got a response.
type Reason string

const (
	Timeout           Reason = "timeout"
	DNS               Reason = "dns"
	ConnectionRefused Reason = "connection_refused"
	TLS               Reason = "tls"
	Canceled          Reason = "canceled"
	Network           Reason = "network"
)

// Classify returns the most specific Reason for err.
func Classify(err error) Reason {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return Canceled
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isTLSError(err):
		return TLS
	default:
		return Network
	}
}

// Title is a one-line headline for r.
func (r Reason) Title() string {
	switch r {
	case Timeout:
		return "Matrix did not answer in time"
	case DNS:
		return "Cannot resolve the matrix host"
	case ConnectionRefused:
		return "Connection refused by the matrix host"
	case TLS:
		return "Secure connection to the matrix failed"
	case Canceled:
		return "Request canceled"
	default:
		return "Matrix unreachable"
	}
}

// Hints lists troubleshooting steps for r against host.
func (r Reason) Hints(host string) []string {
	switch r {
	case Timeout:
		return []string{
			"The display may be busy rendering; try again",
			"Raise timeout in the config file if the network is slow",
		}
	case DNS:
		return []string{
			"Check the spelling of " + host,
			"Use the display's IP address if its name is not in DNS",
		}
	case ConnectionRefused:
		return []string{
			"The matrix service is not running on " + host,
			"Check the port in --url / base_url",
		}
	case TLS:
		return []string{
			"Most displays serve plain http; try an http:// URL",
			"Check the system date and time",
		}
	case Canceled:
		return nil
	default:
		return []string{
			"The display host is powered on and on the network",
			"The --url / base_url setting points at the matrix service",
		}
	}
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// HostOf extracts the host of a URL for messages.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "the matrix host"
	}
	return u.Host
}
