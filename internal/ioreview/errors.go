package ioreview

import (
	"fmt"
)

// UnknownWordError is returned when a card is requested for a word
// that does not exist.
func UnknownWordError(wordID uint) error {
	return fmt.Errorf("unknown word id %d", wordID)
}

// UnknownCardError is returned when grading targets a card that does
// not exist.
func UnknownCardError(cardID uint) error {
	return fmt.Errorf("unknown review card id %d", cardID)
}
