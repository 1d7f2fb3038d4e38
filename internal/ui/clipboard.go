package ui

import (
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// copyToClipboard writes text to the terminal clipboard with an OSC 52
// sequence, which also works over SSH
func copyToClipboard(text string) error {
	_, err := osc52.New(text).WriteTo(os.Stderr)
	return err
}
