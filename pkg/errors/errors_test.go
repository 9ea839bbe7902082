package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDuplicateLabel, "label %d is already in the tree", 7)

	if err.Code != ErrCodeDuplicateLabel {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDuplicateLabel)
	}

	if err.Message != "label 7 is already in the tree" {
		t.Errorf("Message = %v, want %v", err.Message, "label 7 is already in the tree")
	}

	expected := "DUPLICATE_LABEL: label 7 is already in the tree"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode snapshot")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNoRoot, "test"),
			code:     ErrCodeNoRoot,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNoRoot, "test"),
			code:     ErrCodeRootNotBlack,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeNoRoot, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeNoRoot,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeNoRoot,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeNotAValidTree, "graph is not a valid tree")
	if GetCode(err) != ErrCodeNotAValidTree {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeNotAValidTree)
	}
	if UserMessage(err) != "graph is not a valid tree" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}

	plain := errors.New("boom")
	if GetCode(plain) != "" {
		t.Errorf("GetCode(plain) = %v, want empty", GetCode(plain))
	}
	if UserMessage(plain) != "boom" {
		t.Errorf("UserMessage(plain) = %q, want boom", UserMessage(plain))
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidLabel, "x"), 400},
		{New(ErrCodeNotFound, "x"), 404},
		{New(ErrCodeDuplicateLabel, "x"), 409},
		{New(ErrCodeBlackHeightViolation, "x"), 422},
		{New(ErrCodeUnsupported, "x"), 501},
		{errors.New("plain"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
