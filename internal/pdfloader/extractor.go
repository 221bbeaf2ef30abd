package pdfloader

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mpesalytics/engine/internal/parsererror"
)

// Extractor defines the interface for extracting text from PDF statements.
// It allows dependency injection so everything above the extraction
// boundary can be tested without a real PDF or the pdftotext binary.
type Extractor interface {
	// ExtractText extracts the text content of the PDF at the given path,
	// decrypting with the password when one is supplied.
	ExtractText(pdfPath, password string) (string, error)
}

// PdftotextExtractor implements Extractor using the poppler pdftotext
// command. This is the production implementation.
type PdftotextExtractor struct {
	// Binary overrides the pdftotext executable looked up on PATH.
	Binary string
	// KeepTextFile retains the extracted .txt file next to the input
	// instead of removing it, for debugging statement layouts.
	KeepTextFile bool
}

// NewPdftotextExtractor creates an Extractor backed by pdftotext.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Binary: "pdftotext"}
}

// ExtractText runs pdftotext in layout mode. An encrypted document is
// decrypted with -upw; a rejected password surfaces as
// parsererror.InvalidPasswordError.
func (e *PdftotextExtractor) ExtractText(pdfPath, password string) (string, error) {
	binary := e.Binary
	if binary == "" {
		binary = "pdftotext"
	}

	outFile := pdfPath + ".txt"
	args := []string{"-layout"}
	if password != "" {
		args = append(args, "-upw", password)
	}
	args = append(args, pdfPath, outFile)

	var stderr bytes.Buffer
	cmd := exec.Command(binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isPasswordFailure(stderr.String()) {
			return "", &parsererror.InvalidPasswordError{Err: err}
		}
		return "", &parsererror.ExtractionError{
			Msg: strings.TrimSpace(stderr.String()),
			Err: fmt.Errorf("running %s: %w", binary, err),
		}
	}

	output, err := os.ReadFile(outFile)
	if err != nil {
		return "", &parsererror.ExtractionError{Msg: "reading extracted text", Err: err}
	}

	if !e.KeepTextFile {
		// Best effort cleanup; the extracted text is already in memory.
		_ = os.Remove(outFile)
	}

	return string(output), nil
}

// isPasswordFailure recognizes pdftotext's complaint about a wrong or
// missing document password.
func isPasswordFailure(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "incorrect password") ||
		strings.Contains(s, "encrypted") && strings.Contains(s, "password")
}

// MockExtractor implements Extractor for tests. It returns predefined text
// or an error, and records the password it was handed.
type MockExtractor struct {
	MockText     string
	MockErr      error
	WantPassword string
	GotPassword  string
}

// NewMockExtractor creates a MockExtractor returning the given text.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{MockText: text, MockErr: err}
}

// ExtractText returns the predefined text or error. When WantPassword is
// set, any other password is rejected the way an encrypted document would.
func (e *MockExtractor) ExtractText(pdfPath, password string) (string, error) {
	e.GotPassword = password
	if e.MockErr != nil {
		return "", e.MockErr
	}
	if e.WantPassword != "" && password != e.WantPassword {
		return "", &parsererror.InvalidPasswordError{Err: fmt.Errorf("incorrect password")}
	}
	return e.MockText, nil
}
