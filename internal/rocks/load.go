package rocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"
)

// DefinitionFile is the name of the rock definition file inside a fetched
// bundle.
const DefinitionFile = "rocks.yaml"

type file struct {
	Rocks []Rock `yaml:"rocks"`
}

// LoadFile reads and validates a YAML rock definition file.
func LoadFile(path string) ([]Rock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rocks: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rocks %s: %w", path, err)
	}
	if err := validate(f.Rocks); err != nil {
		return nil, fmt.Errorf("rocks %s: %w", path, err)
	}
	return f.Rocks, nil
}

// Fetch downloads the bundle at src into dst. src is any go-getter source:
// a local path, an https URL, git::, s3:: or gcs:: addresses. dst is replaced.
func Fetch(ctx context.Context, src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("clear %s: %w", dst, err)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return err
	}
	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: get.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch rocks from %s: %w", src, err)
	}
	return nil
}

// Load fetches the bundle at src into dir and reads its definition file.
func Load(ctx context.Context, src, dir string) ([]Rock, error) {
	if err := Fetch(ctx, src, dir); err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, DefinitionFile))
}
