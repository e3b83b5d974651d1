package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// APIServer wraps the Fiber app and its listen address
type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			BodyLimit: 30 * 1024 * 1024, // lesson uploads run up to 25 MiB
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Printf("Starting API server on %s", s.listenAddress)
	return s.app.Listen(s.listenAddress)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
