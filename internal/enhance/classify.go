// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/api/googleapi"
)

// Kind is a coarse category of model failure, used in attempt summaries.
type Kind string

const (
	KindAuth      Kind = "auth"
	KindQuota     Kind = "quota"
	KindNetwork   Kind = "network"
	KindTimeout   Kind = "timeout"
	KindMalformed Kind = "malformed"
	KindRefusal   Kind = "refusal"
	KindEmpty     Kind = "empty"
	KindUnknown   Kind = "unknown"
)

var (
	// ErrEmptyResponse is returned when a model answers with no text.
	ErrEmptyResponse = errors.New("empty response")

	// ErrRefusal is returned when a model declines the task.
	ErrRefusal = errors.New("model refused the request")

	// ErrMalformedResponse is returned when a response cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// messagePatterns maps fragments of provider error text to a Kind, for
// SDK errors that carry no typed status.
var messagePatterns = []struct {
	fragment string
	kind     Kind
}{
	{"api key", KindAuth},
	{"api_key", KindAuth},
	{"unauthenticated", KindAuth},
	{"unauthorized", KindAuth},
	{"permission", KindAuth},
	{"forbidden", KindAuth},
	{"quota", KindQuota},
	{"rate limit", KindQuota},
	{"resource exhausted", KindQuota},
	{"resourceexhausted", KindQuota},
	{"too many requests", KindQuota},
	{"deadline", KindTimeout},
	{"timeout", KindTimeout},
	{"timed out", KindTimeout},
	{"connection refused", KindNetwork},
	{"no such host", KindNetwork},
	{"connection reset", KindNetwork},
	{"unavailable", KindNetwork},
	{"safety", KindRefusal},
	{"blocked", KindRefusal},
}

// Classify maps a model error to a Kind. A nil error is KindUnknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	switch {
	case errors.Is(err, ErrEmptyResponse):
		return KindEmpty
	case errors.Is(err, ErrRefusal):
		return KindRefusal
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	if code := statusCode(err); code != 0 {
		switch {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return KindAuth
		case code == http.StatusTooManyRequests || code == http.StatusPaymentRequired:
			return KindQuota
		case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
			return KindTimeout
		case code >= 500:
			return KindNetwork
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	for _, p := range messagePatterns {
		if strings.Contains(msg, p.fragment) {
			return p.kind
		}
	}
	return KindUnknown
}

// statusCode digs an HTTP status out of the error types the providers
// return, or 0.
func statusCode(err error) int {
	var oe *openai.Error
	if errors.As(err, &oe) {
		return oe.StatusCode
	}
	var ae *anthropic.Error
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return 0
}
