package audio

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bogem/id3v2/v2"
)

var fileExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt reports whether a file with this extension can be decoded.
func IsSupportedExt(ext string) bool {
	return fileExts[strings.ToLower(ext)]
}

// SupportedExtsList returns the decodable extensions for messages.
func SupportedExtsList() string {
	exts := make([]string, 0, len(fileExts))
	for ext := range fileExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// Metadata describes a file source.
type Metadata struct {
	Title  string
	Artist string
}

// Display joins artist and title when both are known.
func (m Metadata) Display() string {
	if m.Artist != "" && m.Title != "" {
		return m.Artist + " - " + m.Title
	}
	return m.Title
}

// ReadMetadata reads ID3v2 tags, falling back to the file name.
func ReadMetadata(path string) Metadata {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
			}
			if m.Title != "" {
				return m
			}
		}
	}

	base := filepath.Base(path)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
