package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/scene"
	"github.com/KirkDiggler/dx3rd-api/internal/seed"
)

var seedReplace bool

var seedCmd = &cobra.Command{
	Use:   "seed [file.yaml]",
	Short: "Load actors and scenes into Redis",
	Long: `Load a YAML fixture of actors and scenes into Redis. Example:

  actors:
    - id: kaito
      name: Kaito
      type: character
      items: [...]
  scenes:
    - id: alley
      tokens: [{id: t1, actorId: kaito}]
  activeScene: alley`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides DX3RD_REDIS_ADDR)")
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "overwrite actors that already exist")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	fixture, err := seed.Parse(data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := connectRedis(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	defer func() {
		_ = client.Close()
	}()

	actorRepo, err := actor.NewRedis(&actor.RedisConfig{Client: client})
	if err != nil {
		return err
	}
	sceneRepo, err := scene.NewRedis(&scene.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	result, err := seed.Apply(ctx, &seed.Config{
		ActorRepo: actorRepo,
		SceneRepo: sceneRepo,
		Replace:   seedReplace,
	}, fixture)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d actors (%d skipped) and %d scenes\n",
		result.ActorsCreated, result.ActorsSkipped, result.ScenesSaved)
	if fixture.ActiveScene != "" {
		fmt.Printf("Active scene: %s\n", fixture.ActiveScene)
	}
	return nil
}
