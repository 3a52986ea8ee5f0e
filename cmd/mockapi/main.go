package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	client "github.com/abisalde/povertyline-client/cmd"
	"github.com/abisalde/povertyline-client/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appCfg, err := client.InitConfig()
	if err != nil {
		log.Fatalf("❌ Failed to initialize configuration: %v", err)
	}

	srv, err := client.SetupMockAPI(ctx, cfg, appCfg.AppEnv)
	if err != nil {
		log.Fatalf("❌ Failed to setup mock API: %v", err)
	}

	portHost := utils.GetListenAddress(cfg.MockAPI.Port, appCfg.AppEnv)

	log.Printf("🧪 Hello, PovertyLine Mock API 🚀::: at http://localhost:%s/api", cfg.MockAPI.Port)
	log.Printf("〒 App Current Environment %s ㉿:", appCfg.AppEnv)
	log.Printf("☞ ☞ %s", portHost)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(portHost)
	}()

	select {
	case err := <-errCh:
		log.Fatalf("❌ Mock API stopped: %v", err)
	case <-ctx.Done():
		log.Println("🛑 Shutting down mock API...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("❌ Shutdown error: %v", err)
		}
	}
}
