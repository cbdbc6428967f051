package main

import (
	"github.com/SajiloSewa/registry_service/config"
	"github.com/SajiloSewa/registry_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
