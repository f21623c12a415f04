package main

import "websewa_backend/internal/app"

func main() {
	app.Run()
}
