// Package seed loads actors and scenes from a YAML fixture into the store
package seed

import (
	"context"
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/scene"
)

// Fixture is the content of a seed file. Actors and scenes use the same
// field names as their stored documents.
type Fixture struct {
	Actors      []*dx3rd.Actor
	Scenes      []*dx3rd.Scene
	ActiveScene string
}

type document struct {
	Actors      []map[string]interface{} `yaml:"actors"`
	Scenes      []map[string]interface{} `yaml:"scenes"`
	ActiveScene string                   `yaml:"activeScene"`
}

// Parse reads a YAML fixture
func Parse(data []byte) (*Fixture, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse seed file")
	}

	fixture := &Fixture{ActiveScene: doc.ActiveScene}
	for i, raw := range doc.Actors {
		a := &dx3rd.Actor{}
		if err := convert(raw, a); err != nil {
			return nil, errors.Wrapf(err, "actor %d", i)
		}
		if a.ID == "" {
			return nil, errors.InvalidArgumentf("actor %d has no id", i)
		}
		fixture.Actors = append(fixture.Actors, a)
	}
	for i, raw := range doc.Scenes {
		s := &dx3rd.Scene{}
		if err := convert(raw, s); err != nil {
			return nil, errors.Wrapf(err, "scene %d", i)
		}
		if s.ID == "" {
			return nil, errors.InvalidArgumentf("scene %d has no id", i)
		}
		fixture.Scenes = append(fixture.Scenes, s)
	}

	return fixture, nil
}

// yaml maps go through JSON so the documents pick up their json tags and
// loose number handling
func convert(raw map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "unsupported value")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid document")
	}
	return nil
}

// Config holds the repositories a fixture is written to
type Config struct {
	ActorRepo actor.Repository
	SceneRepo scene.Repository
	// Replace overwrites actors that already exist instead of skipping them
	Replace bool
}

// Result counts what Apply wrote
type Result struct {
	ActorsCreated int
	ActorsSkipped int
	ScenesSaved   int
}

// Apply writes a fixture to the store
func Apply(ctx context.Context, cfg *Config, fixture *Fixture) (*Result, error) {
	if cfg == nil || cfg.ActorRepo == nil || cfg.SceneRepo == nil {
		return nil, errors.InvalidArgument("actor and scene repositories are required")
	}
	if fixture == nil {
		return nil, errors.InvalidArgument("fixture is required")
	}

	result := &Result{}
	for _, a := range fixture.Actors {
		created, err := createActor(ctx, cfg, a)
		if err != nil {
			return result, err
		}
		if created {
			result.ActorsCreated++
		} else {
			result.ActorsSkipped++
		}
	}

	for _, s := range fixture.Scenes {
		if _, err := cfg.SceneRepo.Save(ctx, scene.SaveInput{Scene: s}); err != nil {
			return result, errors.Wrapf(err, "failed to save scene %s", s.ID)
		}
		result.ScenesSaved++
	}

	if fixture.ActiveScene != "" {
		if _, err := cfg.SceneRepo.Activate(ctx, scene.ActivateInput{ID: fixture.ActiveScene}); err != nil {
			return result, errors.Wrapf(err, "failed to activate scene %s", fixture.ActiveScene)
		}
	}

	slog.InfoContext(ctx, "seed applied",
		"actors_created", result.ActorsCreated,
		"actors_skipped", result.ActorsSkipped,
		"scenes_saved", result.ScenesSaved,
		"active_scene", fixture.ActiveScene)

	return result, nil
}

func createActor(ctx context.Context, cfg *Config, a *dx3rd.Actor) (bool, error) {
	_, err := cfg.ActorRepo.Create(ctx, actor.CreateInput{Actor: a})
	if err == nil {
		return true, nil
	}
	if !errors.IsAlreadyExists(err) {
		return false, errors.Wrapf(err, "failed to create actor %s", a.ID)
	}
	if !cfg.Replace {
		slog.InfoContext(ctx, "actor exists, skipping", "actor_id", a.ID)
		return false, nil
	}

	if _, err := cfg.ActorRepo.Delete(ctx, actor.DeleteInput{ID: a.ID}); err != nil {
		return false, errors.Wrapf(err, "failed to replace actor %s", a.ID)
	}
	if _, err := cfg.ActorRepo.Create(ctx, actor.CreateInput{Actor: a}); err != nil {
		return false, errors.Wrapf(err, "failed to replace actor %s", a.ID)
	}
	return true, nil
}
