package app

// ResetDefault forgets the process container so tests can start another.
func ResetDefault() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = nil
}
