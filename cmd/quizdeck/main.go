package main

import (
	"log"

	"github.com/quizdeck/quizdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
