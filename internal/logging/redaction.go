package logging

import (
	"io"
	"regexp"
)

// Redactor masks credentials in log output.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor returns a Redactor for provider API keys, bearer tokens and
// password assignments.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{20,}`),
			regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),
			regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`),
			regexp.MustCompile(`(?i)password["\s:=]+[^\s"]+`),
			regexp.MustCompile(`://[^:/\s]+:[^@\s]+@`),
		},
	}
}

// Redact returns s with every match replaced by [REDACTED].
func (r *Redactor) Redact(s string) string {
	for _, p := range r.patterns {
		s = p.ReplaceAllString(s, "[REDACTED]")
	}
	return s
}

// Wrap returns a writer that redacts before writing to w.
func (r *Redactor) Wrap(w io.Writer) io.Writer {
	return &redactingWriter{w: w, r: r}
}

type redactingWriter struct {
	w io.Writer
	r *Redactor
}

// Write reports len(p) on success so callers do not treat a shortened
// redacted line as a short write.
func (rw *redactingWriter) Write(p []byte) (int, error) {
	if _, err := rw.w.Write([]byte(rw.r.Redact(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
