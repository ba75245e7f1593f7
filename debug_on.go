//go:build arenadebug

package arena

// checkGeneration compares a view/sequence's captured generation against
// its arena's current one, catching use-after-reset cheaply. Built only
// with -tags arenadebug; a release build never pays for this.
func checkGeneration(a *Arena, captured uint64) error {
	if a.generationSnapshot() != captured {
		return ErrUseAfterReset
	}
	return nil
}
