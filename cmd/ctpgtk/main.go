package main

import (
	"os"

	"github.com/vburojevic/ctpgtk/internal/app"
)

func main() {
	os.Exit(app.Run())
}
