package venv

import "io"

// SetOutput replaces the terminal streams the creator's output is copied to.
func (p *Provider) SetOutput(stdout, stderr io.Writer) {
	p.stdout = stdout
	p.stderr = stderr
}
