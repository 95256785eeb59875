package main

import (
	"github.com/eleven-am/sketch-backend/internal/bootstrap"
)

func main() {
	bootstrap.Run()
}
