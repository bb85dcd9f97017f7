package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeDocument = 3
	FileTypePDF      = 4
	FileTypeImage    = 6
	FileTypeUnknown  = 99
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".doc", ".docx":
		return FileTypeDocument
	case ".pdf":
		return FileTypePDF
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return FileTypeImage
	default:
		return FileTypeUnknown
	}
}

// IsImageUpload: ekstensi gambar dan Content-Type image/*
func IsImageUpload(filename, contentType string) bool {
	if DetectFileTypeFromExt(filename) != FileTypeImage {
		return false
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return ct == "" || strings.HasPrefix(ct, "image/")
}
