package generation

import (
	"context"
	"errors"
	"strings"
)

var ErrJobQueueNotConfigured = errors.New("job queue not configured")

const (
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeProviderTimeout = "PROVIDER_TIMEOUT"
	ErrorCodeProvider        = "PROVIDER_ERROR"
	ErrorCodeStorage         = "STORAGE_ERROR"
	ErrorCodeInternal        = "INTERNAL_ERROR"
)

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeProviderTimeout, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "openrouter request timeout") {
		return ErrorCodeProviderTimeout, true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openrouter") || strings.Contains(msg, "llm")) {
		return ErrorCodeProviderTimeout, true
	}
	if strings.Contains(msg, "openrouter") || strings.Contains(msg, "completion") || strings.Contains(msg, "provider") {
		return ErrorCodeProvider, true
	}
	if strings.Contains(msg, "validation") {
		return ErrorCodeValidation, false
	}
	if strings.Contains(msg, "brief") || strings.Contains(msg, "content") || strings.Contains(msg, "storage") || strings.Contains(msg, "template") {
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
