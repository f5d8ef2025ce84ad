package main

import (
	"glimpse/internal/ui"
)

func main() {
	ui.CreateApplication()
}
