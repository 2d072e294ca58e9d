package main

import (
	"microtest"

	_ "microtest/internal/demo"
)

func main() {
	microtest.Main()
}
