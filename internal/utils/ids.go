package utils

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateNanoIDWithPrefix returns an id of the form "<prefix>_<nanoid>".
func GenerateNanoIDWithPrefix(prefix string, length int) string {
	id, err := gonanoid.Generate(idAlphabet, length)
	if err != nil {
		// gonanoid only fails when the alphabet or length is invalid
		panic(err)
	}
	return prefix + "_" + id
}

func Now() time.Time {
	return time.Now().UTC()
}
