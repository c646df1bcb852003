package main

import "blog_backend/internal/app"

func main() {
	app.Run()
}
