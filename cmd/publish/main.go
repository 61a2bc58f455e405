package main

import (
	"os"

	"github.com/romariotrain/moderation-platform/internal/app"
)

func main() {
	os.Exit(app.Run("publish", run))
}
