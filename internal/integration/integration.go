// Package integration renders the zsh+fzf widget that interactively
// browses a duacc report, resolving the caller's own environment (zsh and
// duacc binary locations, the widget's keybinding) into the embedded
// template.
package integration

import (
	"bytes"
	_ "embed"
	"fmt"
	"os/exec"
	"path/filepath"
	"text/template"
)

// ZshFzf is the zsh widget that pipes a duacc report through fzf for
// interactive directory drill-down.
//
//go:embed zsh-fzf.sh
var ZshFzf string

// DefaultBind is the key sequence the widget binds itself to when bind is
// left empty.
const DefaultBind = "^G"

// Render resolves zsh and duacc on PATH and substitutes them, along with
// bind (the zsh keybinding the widget attaches to; DefaultBind if empty),
// into the embedded script. Resolving duacc's own path (rather than just
// zsh's, as the widget shells back out to duacc itself) lets the rendered
// script work from a login shell whose PATH differs from the one this
// process was invoked with.
func Render(bind string) (string, error) {
	if bind == "" {
		bind = DefaultBind
	}

	zsh, err := exec.LookPath("zsh")
	if err != nil {
		return "", fmt.Errorf("locating zsh: %w", err)
	}

	duaccBin, err := exec.LookPath("duacc")
	if err != nil {
		return "", fmt.Errorf("locating duacc on PATH (the widget shells out to it): %w", err)
	}

	tmpl, err := template.New("zsh-fzf").Parse(ZshFzf)
	if err != nil {
		return "", fmt.Errorf("parsing integration template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"ZSH":   filepath.ToSlash(zsh),
		"Duacc": filepath.ToSlash(duaccBin),
		"Bind":  bind,
	}); err != nil {
		return "", fmt.Errorf("rendering integration template: %w", err)
	}

	return buf.String(), nil
}
