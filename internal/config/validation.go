package config

import (
	"fmt"
	"slices"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects fatal errors and warnings.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether the config cannot be used.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether anything was ignored.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

// Variants lists the note variant names.
var Variants = []string{"plain", "kerala", "matrix", "polaroid"}

// ValidateConfig checks cfg for values no component can honor.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}

	if !slices.Contains(BorderStyles, cfg.Appearance.BorderStyle) {
		r.warnf("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
	}

	n := cfg.Notes
	if !slices.Contains(Variants, n.DefaultVariant) {
		r.errorf("notes", "default_variant", "unknown variant %q", n.DefaultVariant)
	}
	if !slices.Contains([]string{"variant", "blur", "explicit"}, n.CommitPolicy) {
		r.errorf("notes", "commit_policy", "unknown policy %q", n.CommitPolicy)
	}
	if n.MinWidth < 8 {
		r.errorf("notes", "min_width", "must be at least 8, got %d", n.MinWidth)
	}
	if n.MinHeight < 4 {
		r.errorf("notes", "min_height", "must be at least 4, got %d", n.MinHeight)
	}
	if n.MinWidth > n.MaxWidth {
		r.errorf("notes", "max_width", "min_width %d exceeds max_width %d", n.MinWidth, n.MaxWidth)
	}
	if n.MinHeight > n.MaxHeight {
		r.errorf("notes", "max_height", "min_height %d exceeds max_height %d", n.MinHeight, n.MaxHeight)
	} else if n.MinWidth <= n.MaxWidth {
		// Polaroids keep their height at ratio times their width, so some
		// width must fit both ranges.
		ratio := float64(PolaroidHeight) / float64(PolaroidWidth)
		lo := max(float64(n.MinWidth), float64(n.MinHeight)/ratio)
		hi := min(float64(n.MaxWidth), float64(n.MaxHeight)/ratio)
		if lo > hi {
			r.errorf("notes", "max_height", "polaroid notes keep a %.2f height to width ratio, no size fits width %d..%d and height %d..%d",
				ratio, n.MinWidth, n.MaxWidth, n.MinHeight, n.MaxHeight)
		}
	}

	c := cfg.Caret
	if c.Strategy != "auto" && c.Strategy != "scan" {
		r.errorf("caret", "strategy", "unknown strategy %q", c.Strategy)
	}
	if c.Extent != "caret" && c.Extent != "box" {
		r.errorf("caret", "extent", "unknown extent %q", c.Extent)
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		r.errorf("caret", "tab_width", "must be between 1 and 16, got %d", c.TabWidth)
	}

	if b := cfg.Storage.Backend; b != "bolt" && b != "memory" {
		r.errorf("storage", "backend", "unknown backend %q", b)
	}

	for action := range cfg.Keybindings.Board {
		if !slices.Contains(BoardActions, action) {
			r.warnf("keybindings.board", action, "unknown action, ignored")
		}
	}
	for action := range cfg.Keybindings.Edit {
		if !slices.Contains(EditActions, action) {
			r.warnf("keybindings.edit", action, "unknown action, ignored")
		}
	}

	return r
}
