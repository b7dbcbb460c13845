package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/storage"
)

type StorageConfig struct {
	Npcs    AssetConfig[*game.NpcKind]    `json:"npcs"`
	Objects AssetConfig[*game.ObjectKind] `json:"objects"`
	Skills  AssetConfig[*game.Skill]      `json:"skills"`
	Spawns  AssetConfig[*game.Spawn]      `json:"spawns"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	npcs, err := c.Npcs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating npc store: %w", err)
	}
	objects, err := c.Objects.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating object store: %w", err)
	}
	skills, err := c.Skills.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating skill store: %w", err)
	}
	spawns, err := c.Spawns.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating spawn store: %w", err)
	}

	dict := &game.Dictionary{
		Npcs:    npcs,
		Objects: objects,
		Skills:  skills,
		Spawns:  spawns,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Npcs.Validate("npcs"))
	el.Add(c.Objects.Validate("objects"))
	el.Add(c.Skills.Validate("skills"))
	el.Add(c.Spawns.Validate("spawns"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
