package shelf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/ewhitby/pipekit/core/config"
	"github.com/ewhitby/pipekit/core/constants"
	"github.com/ewhitby/pipekit/core/logger"
)

// ErrUnchanged is returned when the local shelf is byte-identical to the
// published copy, mirroring the revert-if-no-diff behavior the publish
// workflow has always had.
var ErrUnchanged = fmt.Errorf("shelf is unchanged")

// Manifest records what has been published into the global shelf directory.
// It lives next to the shelves as shelves.yaml.
type Manifest struct {
	Shelves map[string]ManifestEntry `yaml:"shelves"`
}

type ManifestEntry struct {
	File        string    `yaml:"file"`
	PublishedAt time.Time `yaml:"published_at"`
	Size        int64     `yaml:"size"`
}

// Publish copies a local shelf to the global shelf directory. Publishes are
// serialized with a lock file in the global directory so two artists saving
// at once cannot interleave writes. An unchanged shelf returns ErrUnchanged
// and writes nothing.
func Publish(name string, cfg config.Shelves) error {
	localDir, err := DirFor(Local, cfg)
	if err != nil {
		return err
	}
	globalDir, err := DirFor(Global, cfg)
	if err != nil {
		return err
	}

	localPath := filepath.Join(localDir, FileName(name))
	if _, err := os.Stat(localPath); err != nil {
		return fmt.Errorf("shelf %q has no local file: %w", name, err)
	}

	lock := flock.New(filepath.Join(globalDir, constants.ShelfLockFile))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock global shelf directory: %w", err)
	}
	defer lock.Unlock()

	globalPath := filepath.Join(globalDir, FileName(name))

	same, err := filesEqual(localPath, globalPath)
	if err != nil {
		return err
	}
	if same {
		logger.Debug("Shelf %s matches the published copy, skipping", name)
		return ErrUnchanged
	}

	if err := copyFile(localPath, globalPath); err != nil {
		return fmt.Errorf("failed to publish shelf %q: %w", name, err)
	}
	logger.Info("Published shelf %s -> %s", name, globalPath)

	return recordPublish(globalDir, name, globalPath)
}

// SyncResult summarizes a Sync run.
type SyncResult struct {
	Published []string
	Skipped   []string
}

// Sync publishes every local shelf whose contents differ from its global
// copy.
func Sync(cfg config.Shelves) (*SyncResult, error) {
	shelves, err := List(Local, cfg)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for _, name := range shelves {
		switch err := Publish(name, cfg); {
		case err == nil:
			result.Published = append(result.Published, name)
		case err == ErrUnchanged:
			result.Skipped = append(result.Skipped, name)
		default:
			return result, err
		}
	}
	return result, nil
}

func recordPublish(globalDir, name, globalPath string) error {
	manifestPath := filepath.Join(globalDir, constants.ShelfManifestFile)

	manifest := Manifest{Shelves: map[string]ManifestEntry{}}
	if data, err := os.ReadFile(manifestPath); err == nil {
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return fmt.Errorf("failed to parse shelf manifest: %w", err)
		}
		if manifest.Shelves == nil {
			manifest.Shelves = map[string]ManifestEntry{}
		}
	}

	info, err := os.Stat(globalPath)
	if err != nil {
		return fmt.Errorf("failed to stat published shelf: %w", err)
	}

	manifest.Shelves[name] = ManifestEntry{
		File:        FileName(name),
		PublishedAt: time.Now().UTC(),
		Size:        info.Size(),
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal shelf manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write shelf manifest: %w", err)
	}
	return nil
}

func filesEqual(a, b string) (bool, error) {
	dataA, err := os.ReadFile(a)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", a, err)
	}
	dataB, err := os.ReadFile(b)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", b, err)
	}
	return bytes.Equal(dataA, dataB), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}
