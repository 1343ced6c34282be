package constants

// Defaults for the render-farm submission workflow. FarmRenderRoot points at
// the shared drive Deadline workers mount; every submission gets its own
// timestamped folder underneath it.
const (
	FarmRenderRoot         = "//truenas/projects/renders"
	RenderFolderTimeLayout = "20060102_150405"
)

// Deadline Web Service defaults.
const (
	DeadlineURL      = "http://deadline:8082"
	DeadlinePool     = "houdini"
	DeadlinePriority = 50
)

// Maya shelf file naming convention: shelf_<name>.mel.
const (
	ShelfFilePrefix = "shelf_"
	ShelfFileExt    = ".mel"

	// ShelfManifestFile records which shelves have been published to the
	// global shelf directory and when.
	ShelfManifestFile = "shelves.yaml"

	// ShelfLockFile serializes publishes to the global shelf directory.
	ShelfLockFile = ".shelves.lock"
)

// ShelfOrder is the canonical display order for studio shelves. Shelves not
// listed here sort after the known ones.
var ShelfOrder = []string{
	"Shotgrid",
	"vm_AI",
	"vm_Assets",
	"vm_Metahumans",
	"vm_Rigging",
	"vm_AnimTools",
	"vm_Utils",
	"Custom",
}

// StructureTemplateFile is the default folder-structure template consumed by
// `pipekit structure generate`.
const StructureTemplateFile = "example_structure.json"
