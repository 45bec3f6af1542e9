package main

import (
	"fmt"
	"os"

	"obranza/internal/password"
)

func main() {
	pw := "obranza2026"
	if len(os.Args) > 1 {
		pw = os.Args[1]
	}
	h, err := password.Hash(pw)
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
}
