package main

import (
	"context"
	"log"

	"github.com/cams-platform/inventory-management/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("inventory api exited: %v", err)
	}
}
