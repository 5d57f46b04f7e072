package main

import (
	_ "github.com/callboard/callboard-backend/docs"
	"github.com/callboard/callboard-backend/internal/bootstrap"
)

// @title Callboard API
// @version 1.0.0
// @description Dashboard backend for voice assistant call metrics

// @host api.callboard.example.com
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey IngestSecret
// @in header
// @name Authorization

func main() {
	bootstrap.Run()
}
