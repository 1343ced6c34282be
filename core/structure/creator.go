package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ewhitby/pipekit/core/logger"
)

// Creator materializes a template under a root directory. Folders that
// already exist are left alone, so running the same template twice is a
// no-op.
type Creator struct {
	DryRun  bool
	created []string
}

func NewCreator(dryRun bool) *Creator {
	return &Creator{DryRun: dryRun}
}

// Create validates the template in full, then walks it depth-first creating
// each folder. Validation happens before the first mkdir so a malformed
// template never produces a partial tree.
func (c *Creator) Create(root string, tmpl Template) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if !c.DryRun {
		if err := os.MkdirAll(root, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create root %s: %w", root, err)
		}
	}

	return c.createFolders(root, tmpl)
}

func (c *Creator) createFolders(root string, tmpl Template) error {
	names := make([]string, 0, len(tmpl))
	for name := range tmpl {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		folderPath := filepath.Join(root, name)

		exists, err := directoryExists(folderPath)
		if err != nil {
			return err
		}

		if !exists {
			if c.DryRun {
				logger.Info("Would create folder: %s", folderPath)
			} else {
				if err := os.Mkdir(folderPath, os.ModePerm); err != nil {
					return fmt.Errorf("failed to create folder %s: %w", folderPath, err)
				}
				logger.Info("Created folder: %s", folderPath)
			}
			c.created = append(c.created, folderPath)
		} else {
			logger.Debug("Folder already exists: %s", folderPath)
		}

		if !c.DryRun || exists {
			if err := c.createFolders(folderPath, tmpl[name]); err != nil {
				return err
			}
		} else {
			// Dry run under a folder that does not exist yet: report the
			// subtree without stat-ing paths that were never created.
			c.planFolders(folderPath, tmpl[name])
		}
	}
	return nil
}

func (c *Creator) planFolders(root string, tmpl Template) {
	names := make([]string, 0, len(tmpl))
	for name := range tmpl {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		folderPath := filepath.Join(root, name)
		logger.Info("Would create folder: %s", folderPath)
		c.created = append(c.created, folderPath)
		c.planFolders(folderPath, tmpl[name])
	}
}

// Created returns the folders created (or, for a dry run, the folders that
// would have been) in creation order.
func (c *Creator) Created() []string {
	return c.created
}

func directoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s exists and is not a directory", path)
	}
	return true, nil
}
