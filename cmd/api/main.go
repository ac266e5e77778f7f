package main

import "github.com/podium-optique/catalog/internal/bootstrap"

func main() {
	bootstrap.Run()
}
