// Package logging keeps account credentials out of syncstatus log output.
//
// Session tokens, refresh tokens, bearer headers and e-mail addresses are
// redacted both at call sites (SafeValue) and on the way to disk
// (FilteringWriter wraps the rotating log file).
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue replaces anything that looks like a credential.
const RedactedValue = "[REDACTED]"

var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // compiled once, shared by all writers
	// Session tokens issued by the local account engine (sst_<32 hex>).
	regexp.MustCompile(`sst_[a-f0-9]{32}`),

	// Refresh tokens (srt_<32 hex>).
	regexp.MustCompile(`srt_[a-f0-9]{32}`),

	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/-]{16,}=*`),

	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9._~+/-]{16,}["']?`),

	regexp.MustCompile(`(?i)(session_token|refresh_token|password)\s*[:=]\s*["']?[^\s"',}]{8,}["']?`),

	// E-mail addresses.
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
}

var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // lookup table
	"token",
	"session_token",
	"refresh_token",
	"password",
	"secret",
	"authorization",
	"bearer",
	"email",
}

// SensitiveDataHook flags log events whose message carries sensitive data.
// zerolog hooks cannot rewrite the message, so FilteringWriter does the
// actual redaction.
type SensitiveDataHook struct{}

// NewSensitiveDataHook returns a SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any credential pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every credential-like substring of value.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a log field name denotes a credential.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns value fit for logging under fieldName.
//
//	log.Info().Str("email", logging.SafeValue("email", acct.Email)).Msg("signed in")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter redacts sensitive data from everything written through it.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write filters p and writes the result. It reports len(p) on success so
// callers never see a short write caused by redaction.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if _, err := fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
