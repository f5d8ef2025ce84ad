// Main entry point for the application
package main

import (
	"log"

	"glimpse/internal/ui"
)

func main() {
	// Set the logger prefix
	log.SetPrefix("Glimpse ")

	ui.CreateApplication()
}
