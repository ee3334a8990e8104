package campaign

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultImageTemplate is the template that embeds a per-recipient picture.
const DefaultImageTemplate = "template_shpe_2025_with_picture.html"

// imageExtensions is probed in order; the first existing file wins.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// ImageResolver finds the inline picture for a recipient by naming
// convention: "{company}_{name}{ext}" inside Dir.
type ImageResolver struct {
	Dir      string // folder holding the pictures
	Template string // only this template embeds pictures
}

// Resolve returns the picture path for a recipient of templateFile.
// It only checks that a regular file exists; the content is not inspected.
func (r ImageResolver) Resolve(templateFile, company, name string) (string, bool) {
	if r.Template == "" || templateFile != r.Template {
		return "", false
	}
	if company == "" || name == "" || r.Dir == "" {
		return "", false
	}

	base := company + "_" + name
	if strings.ContainsAny(base, `/\`) || base != filepath.Base(base) {
		return "", false
	}

	for _, ext := range imageExtensions {
		path := filepath.Join(r.Dir, base+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}
