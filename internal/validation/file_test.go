package validation

import (
	"errors"
	"testing"
)

func TestCheckFileSize(t *testing.T) {
	constraints := FileConstraints{MaxSize: 5 << 20}

	if err := CheckFile("a.pdf", "application/pdf", 5<<20, constraints); err != nil {
		t.Fatalf("file at exact limit rejected: %v", err)
	}
	err := CheckFile("a.pdf", "application/pdf", 5<<20+1, constraints)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("got %v, want ErrFileTooLarge", err)
	}
}

func TestCheckFileNoSizeLimit(t *testing.T) {
	if err := CheckFile("big.bin", "application/octet-stream", 1<<40, FileConstraints{}); err != nil {
		t.Fatalf("unconstrained file rejected: %v", err)
	}
}

func TestCheckFilePatterns(t *testing.T) {
	cases := []struct {
		name     string
		mimeType string
		accepted string
		ok       bool
	}{
		// extension patterns
		{"report.pdf", "application/pdf", ".pdf", true},
		{"REPORT.PDF", "application/pdf", ".pdf", true},
		{"report.docx", "application/msword", ".pdf", false},
		{"archive.tar.gz", "application/gzip", ".gz", true},
		// exact MIME
		{"photo.png", "image/png", "image/png", true},
		{"photo.png", "image/jpeg", "image/png", false},
		// MIME wildcard
		{"photo.webp", "image/webp", "image/*", true},
		{"doc.pdf", "application/pdf", "image/*", false},
		// bare keyword matches MIME or extension substring
		{"photo.png", "image/png", "image", true},
		{"scan.jpeg", "application/octet-stream", "jpeg", true},
		{"notes.txt", "text/plain", "image", false},
		// multiple patterns, any match passes
		{"photo.gif", "image/gif", ".pdf, image/*", true},
		{"notes.txt", "text/plain", ".pdf, image/*", false},
	}

	for _, c := range cases {
		err := CheckFile(c.name, c.mimeType, 100, FileConstraints{AcceptedTypes: c.accepted})
		if c.ok && err != nil {
			t.Fatalf("CheckFile(%s, %s, %q): unexpected %v", c.name, c.mimeType, c.accepted, err)
		}
		if !c.ok && !errors.Is(err, ErrFileTypeNotAllowed) {
			t.Fatalf("CheckFile(%s, %s, %q): got %v, want ErrFileTypeNotAllowed", c.name, c.mimeType, c.accepted, err)
		}
	}
}

func TestCheckFileEmptyAcceptsAll(t *testing.T) {
	cases := []string{"", " ", ", ,"}
	for _, accepted := range cases {
		if err := CheckFile("anything.xyz", "application/x-unknown", 100, FileConstraints{AcceptedTypes: accepted}); err != nil {
			t.Fatalf("accepted=%q rejected file: %v", accepted, err)
		}
	}
}

func TestCheckFileSizeBeforeType(t *testing.T) {
	// Size runs first even when the type would also be rejected
	err := CheckFile("huge.exe", "application/x-msdownload", 100<<20, FileConstraints{MaxSize: 1 << 20, AcceptedTypes: ".pdf"})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("got %v, want ErrFileTooLarge", err)
	}
}
