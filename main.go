package main

import (
	"log"

	"github.com/yumeworks/talent-match/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
