package pip

import "io"

// SetOutput replaces the terminal streams pip output is copied to.
func (i *Installer) SetOutput(stdout, stderr io.Writer) {
	i.stdout = stdout
	i.stderr = stderr
}
