package initializers

import (
	"log"

	"github.com/joho/godotenv"
)

func LoadEnvVariables() {
	err := godotenv.Load()
	if err != nil {
		// .env is optional; real deployments set env vars directly
		log.Println("no .env file found, reading environment directly")
	}
}
