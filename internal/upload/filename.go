// Package upload stores user-supplied images under a category directory
// and names them so that uploads for the same subject never overwrite each
// other.
package upload

import (
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	idWidth         = 6
	timestampLayout = "20060102150405.000"
	defaultExt      = ".jpg"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// Filename builds "{id}-{timestamp}-{name}" where id is left-padded with
// zeros to six characters, timestamp is now to the millisecond and name
// is the sanitized client filename. A missing or non-image extension is
// replaced by one taken from mimeType, falling back to .jpg.
func Filename(subjectID, originalName, mimeType string, now time.Time) string {
	name := Sanitize(originalName)
	if ext := path.Ext(name); !imageExts[strings.ToLower(ext)] {
		if base := strings.TrimSuffix(name, ext); base != "" {
			name = base
		} else {
			name = "image"
		}
		name += ExtForMIME(mimeType)
	}
	ts := strings.Replace(now.Format(timestampLayout), ".", "", 1)
	return padID(subjectID) + "-" + ts + "-" + name
}

// Sanitize drops any directory part of name and replaces every character
// outside [A-Za-z0-9._-] with an underscore.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	if strings.Trim(name, ".") == "" {
		return "image"
	}
	return name
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	".gif": true, ".heic": true, ".heif": true,
}

// IsImage reports whether mimeType is one of the accepted image types.
// SVG is not among them.
func IsImage(mimeType string) bool {
	_, ok := extByMIME[normalizeMIME(mimeType)]
	return ok
}

// ExtForMIME maps an image MIME type to a file extension.
func ExtForMIME(mimeType string) string {
	if ext, ok := extByMIME[normalizeMIME(mimeType)]; ok {
		return ext
	}
	return defaultExt
}

func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(strings.ToLower(strings.TrimSpace(mimeType)), ";")
	return strings.TrimSpace(mimeType)
}

// OwnedBy reports whether filename was generated by Filename for
// subjectID.
func OwnedBy(filename, subjectID string) bool {
	if subjectID == "" {
		return false
	}
	return strings.HasPrefix(filename, padID(subjectID)+"-")
}

func padID(id string) string {
	if len(id) >= idWidth {
		return id
	}
	return strings.Repeat("0", idWidth-len(id)) + id
}
