package cli

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

//go:embed schema.cue
var schemaCUE string

// LoadMode controls how errors are handled during catalogue loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading catalogue overrides.
type LoadResult struct {
	Entries   []mods.Modification
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadError represents an error that occurred during catalogue loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeSchema      = "E007" // Schema violation

	// Entry conversion errors
	ErrCodeBadParent       = "E101" // Parent not a canonical base
	ErrCodeBadPosition     = "E102" // Unparseable Sprinzl position
	ErrCodeBadConservation = "E103" // Unknown conservation class
	ErrCodeBadIncompatible = "E104" // Unparseable incompatible set
	ErrCodeCatalogue       = "E105" // Catalogue invariant violation
)

// catalogueEntry is the decoded CUE shape before conversion to the typed
// modification.
type catalogueEntry struct {
	ShortName    string   `json:"short_name"`
	Name         string   `json:"name"`
	Parent       string   `json:"parent"`
	Positions    []string `json:"positions"`
	Conservation string   `json:"conservation"`
	Isotypes     []string `json:"isotypes,omitempty"`
	ChEBI        int      `json:"chebi,omitempty"`
	Code         string   `json:"code,omitempty"`
	Incompatible string   `json:"incompatible,omitempty"`
}

// LoadOverrides loads catalogue override entries from a directory of CUE
// files, validated against the embedded schema.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadOverrides(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("mods directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing mods directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	// Unify with the embedded schema so malformed entries fail with
	// positions instead of surfacing as decode errors later.
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("compiling schema: %v", err)}}
	}
	value = value.Unify(schema)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("validating against schema: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	modsVal := value.LookupPath(cue.ParsePath("modification"))
	if !modsVal.Exists() {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no modification entries found"})
		return result, errs
	}

	iter, iterErr := modsVal.Fields()
	if iterErr != nil {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating modifications: %v", iterErr)})
		return result, errs
	}
	for iter.Next() {
		var entry catalogueEntry
		if err := iter.Value().Decode(&entry); err != nil {
			errs = append(errs, &LoadError{
				Code:    ErrCodeSchema,
				Message: fmt.Sprintf("modification.%s: %v", iter.Label(), err),
				Pos:     iter.Value().Pos(),
			})
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		m, convErr := convertEntry(entry)
		if convErr != nil {
			convErr.Pos = iter.Value().Pos()
			errs = append(errs, convErr)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Entries = append(result.Entries, m)
	}

	return result, errs
}

// convertEntry lowers a decoded CUE entry to the typed modification.
// An absent incompatible set defaults to every base except the parent.
func convertEntry(entry catalogueEntry) (mods.Modification, *LoadError) {
	if len(entry.Parent) != 1 {
		return mods.Modification{}, &LoadError{
			Code:    ErrCodeBadParent,
			Message: fmt.Sprintf("%s: parent %q is not a canonical base", entry.ShortName, entry.Parent),
		}
	}
	parent, err := mods.ParseBase(entry.Parent[0])
	if err != nil {
		return mods.Modification{}, &LoadError{
			Code:    ErrCodeBadParent,
			Message: fmt.Sprintf("%s: parent %q is not a canonical base", entry.ShortName, entry.Parent),
		}
	}

	positions := make([]sprinzl.Position, len(entry.Positions))
	for i, spec := range entry.Positions {
		pos, err := sprinzl.Parse(spec)
		if err != nil {
			return mods.Modification{}, &LoadError{
				Code:    ErrCodeBadPosition,
				Message: fmt.Sprintf("%s: position %q: %v", entry.ShortName, spec, err),
			}
		}
		positions[i] = pos
	}

	conservation, ok := mods.ParseConservation(entry.Conservation)
	if !ok {
		return mods.Modification{}, &LoadError{
			Code:    ErrCodeBadConservation,
			Message: fmt.Sprintf("%s: unknown conservation class %q", entry.ShortName, entry.Conservation),
		}
	}

	incompatible := mods.AllExcept(parent)
	if entry.Incompatible != "" {
		incompatible = 0
		for i := 0; i < len(entry.Incompatible); i++ {
			b, err := mods.ParseBase(entry.Incompatible[i])
			if err != nil {
				return mods.Modification{}, &LoadError{
					Code:    ErrCodeBadIncompatible,
					Message: fmt.Sprintf("%s: incompatible set %q: %v", entry.ShortName, entry.Incompatible, err),
				}
			}
			incompatible |= mods.NewBaseSet(b)
		}
	}

	return mods.Modification{
		ShortName:    entry.ShortName,
		Name:         entry.Name,
		Parent:       parent,
		Incompatible: incompatible,
		Positions:    positions,
		Conservation: conservation,
		Isotypes:     entry.Isotypes,
		ChEBI:        entry.ChEBI,
		Code:         entry.Code,
	}, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadEffectiveCatalogue resolves the modification database for a
// command: the builtin catalogue, merged with CUE overrides when a mods
// directory is configured.
func loadEffectiveCatalogue(opts *RootOptions, formatter *OutputFormatter) (*mods.Database, error) {
	db := mods.Eukaryotic()
	if opts.ModsDir == "" {
		return db, nil
	}

	result, errs := LoadOverrides(opts.ModsDir, LoadModeFailFast)
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, "loading catalogue overrides", errs[0])
	}
	formatter.VerboseLog("Loaded %d override(s) from %d CUE file(s) in %s",
		len(result.Entries), result.FileCount, opts.ModsDir)

	merged, err := db.Merge(result.Entries)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "merging catalogue overrides", err)
	}
	return merged, nil
}
