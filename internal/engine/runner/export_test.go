package runner

// SetEnviron replaces the source of the base child environment.
func (r *Runner) SetEnviron(environ func() []string) {
	r.environ = environ
}
