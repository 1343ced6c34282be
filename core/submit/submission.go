package submit

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewhitby/pipekit/core/constants"
	"github.com/ewhitby/pipekit/core/deadline"
	"github.com/ewhitby/pipekit/core/logger"
)

// submitter is what the workflow needs from the Deadline client.
type submitter interface {
	SubmitJob(ctx context.Context, sub deadline.JobSubmission) (string, error)
}

// Submission stages a scene file and its dependencies into a render folder
// on the farm share, then submits a job pointing at the staged copy.
type Submission struct {
	ScenePath string
	SceneName string

	client       submitter
	renderFolder string
}

// Options configures a submission run.
type Options struct {
	FarmRoot     string
	Dependencies []string
	Plugin       string
	Pool         string
	Group        string
	Priority     int
	Frames       string

	// DryRun performs every step except the submission itself.
	DryRun bool
}

// Result reports what a submission run did.
type Result struct {
	RenderFolder string
	SceneCopy    string
	Copied       []string
	BatchID      string
	JobID        string
	DryRun       bool
}

// New prepares a submission for a scene file. The scene must exist; its
// base name (without extension) names the render folder and the job.
func New(scenePath string, client submitter) (*Submission, error) {
	info, err := os.Stat(scenePath)
	if err != nil {
		return nil, fmt.Errorf("scene file is not readable: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a scene file", scenePath)
	}

	base := filepath.Base(scenePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return &Submission{
		ScenePath: scenePath,
		SceneName: name,
		client:    client,
	}, nil
}

// RenderFolder returns the destination folder for this submission. It is an
// error to ask for it before CreateRenderFolder has run.
func (s *Submission) RenderFolder() (string, error) {
	if s.renderFolder == "" {
		return "", fmt.Errorf("no render folder has been created yet, run CreateRenderFolder first")
	}
	return s.renderFolder, nil
}

// CreateRenderFolder creates the timestamped destination folder on the farm
// share. The folder must not already exist: a clash means two submissions of
// the same scene within a second, and the second one should fail loudly
// rather than mix files.
func (s *Submission) CreateRenderFolder(farmRoot string) (string, error) {
	if err := os.MkdirAll(farmRoot, os.ModePerm); err != nil {
		return "", fmt.Errorf("farm folder %s is not writable: %w", farmRoot, err)
	}

	stamp := time.Now().Format(constants.RenderFolderTimeLayout)
	dstFolder := filepath.Join(farmRoot, fmt.Sprintf("%s_%s", stamp, s.SceneName))

	if err := os.Mkdir(dstFolder, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create render folder %s: %w", dstFolder, err)
	}
	logger.Debug("Created render folder %s", dstFolder)

	s.renderFolder = dstFolder
	return dstFolder, nil
}

// CopySceneFile copies the scene into the render folder and returns the
// staged path.
func (s *Submission) CopySceneFile() (string, error) {
	dstFolder, err := s.RenderFolder()
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dstFolder, filepath.Base(s.ScenePath))
	if err := copyFile(s.ScenePath, dst); err != nil {
		return "", fmt.Errorf("failed to copy scene file: %w", err)
	}
	logger.Debug("Copied scene %s -> %s", s.ScenePath, dst)

	return dst, nil
}

// CopyDependencies copies each dependency file into the render folder,
// creating parent folders as needed, and returns the staged paths.
func (s *Submission) CopyDependencies(paths []string) ([]string, error) {
	dstFolder, err := s.RenderFolder()
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, src := range paths {
		dst := filepath.Join(dstFolder, filepath.Base(src))

		if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create folder for %s: %w", dst, err)
		}
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("failed to copy dependency %s: %w", src, err)
		}

		logger.Debug("Copied dependency %s -> %s", src, dst)
		copied = append(copied, dst)
	}

	return copied, nil
}

// ExternalReferences returns the dependency paths that live outside the
// scene's project folder. Workers can only see the staged render folder and
// the project share, so anything external gets flagged before submission.
func ExternalReferences(projectRoot string, paths []string) []string {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		root = projectRoot
	}

	var external []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			external = append(external, p)
		}
	}
	return external
}

// Run executes the whole workflow: stage the scene and dependencies, then
// submit. With DryRun set everything happens except the submission call.
func (s *Submission) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		BatchID: uuid.NewString(),
		DryRun:  opts.DryRun,
	}

	dstFolder, err := s.CreateRenderFolder(opts.FarmRoot)
	if err != nil {
		return nil, err
	}
	result.RenderFolder = dstFolder

	sceneCopy, err := s.CopySceneFile()
	if err != nil {
		return nil, err
	}
	result.SceneCopy = sceneCopy

	if len(opts.Dependencies) > 0 {
		copied, err := s.CopyDependencies(opts.Dependencies)
		if err != nil {
			return nil, err
		}
		result.Copied = copied
	}

	if opts.DryRun {
		logger.Info("Dry run: staged %s, skipping submission", dstFolder)
		return result, nil
	}

	jobID, err := s.client.SubmitJob(ctx, s.buildJob(sceneCopy, opts, result.BatchID))
	if err != nil {
		return nil, err
	}
	result.JobID = jobID

	logger.Info("Submitted job %s for %s", jobID, s.SceneName)
	return result, nil
}

func (s *Submission) buildJob(sceneCopy string, opts Options, batchID string) deadline.JobSubmission {
	plugin := opts.Plugin
	if plugin == "" {
		plugin = "Houdini"
	}
	frames := opts.Frames
	if frames == "" {
		frames = "1"
	}

	jobInfo := map[string]string{
		"Name":      s.SceneName,
		"BatchName": fmt.Sprintf("%s_%s", s.SceneName, batchID),
		"Plugin":    plugin,
		"Frames":    frames,
		"Pool":      opts.Pool,
		"Priority":  strconv.Itoa(opts.Priority),
	}
	if opts.Group != "" {
		jobInfo["Group"] = opts.Group
	}

	return deadline.JobSubmission{
		JobInfo: jobInfo,
		PluginInfo: map[string]string{
			"SceneFile": sceneCopy,
		},
	}
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
