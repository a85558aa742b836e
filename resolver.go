package ipl

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-stdlog/stdlog"

	"github.com/loaderkit/ipl/errors"
	"github.com/loaderkit/ipl/internal/metrics"
)

// Assignment is one resolved LOD pairing: the low-detail model backing some
// high-detail model, plus the file whose scan produced the resolution.
type Assignment struct {
	LowID int32
	File  string
}

// Entry is one row of the final LOD table.
type Entry struct {
	HighID int32
	LowID  int32
	File   string
}

type ResolverStats struct {
	Resolutions int
	Conflicts   int
	Deferrals   int
}

// Resolver accumulates LOD pairings across a batch of placement files. It is
// created empty at batch start and discarded after the table is serialized;
// there is no incremental lifecycle beyond that.
//
// Files come in two classes. World files (plain text placement files) resolve
// their own references in place. Stream files (decoded binaries whose name
// carries a _streamN suffix) reference objects living in a sibling world
// file, so their references are parked until that world file is scanned. The
// stream pass must therefore complete before the world pass starts.
type Resolver struct {
	log    stdlog.Logger
	models ModelResolver

	table   map[int32]Assignment
	pending map[string]map[int]int32
	stats   ResolverStats
}

func NewResolver(config Config) *Resolver {
	return &Resolver{
		log:     config.GetLogger().Named("resolver"),
		models:  config.GetModels(),
		table:   map[int32]Assignment{},
		pending: map[string]map[int]int32{},
	}
}

// ScanStreamFile parks every LOD reference of a decoded stream file under the
// canonical name of the world file it points into. Only the high-detail model
// ID survives the deferral; the stream file's record array is not retained.
func (r *Resolver) ScanStreamFile(f *TextFile) {
	target, ok := CanonicalStreamTarget(f.Name)
	if !ok {
		r.log.Warning("File name carries no _stream suffix, skipping", "file", f.Name)
		return
	}

	for _, lodIdx := range sortedKeys(f.PendingLodRefs) {
		highIdx := f.PendingLodRefs[lodIdx]
		if highIdx < 0 || highIdx >= len(f.Records) {
			continue
		}
		m := r.pending[target]
		if m == nil {
			m = map[int]int32{}
			r.pending[target] = m
		}
		m[lodIdx] = f.Records[highIdx].ModelID
		r.stats.Deferrals++
		metrics.Simple(metrics.ResolverDeferrals, 1)
	}
}

// ScanWorldFile resolves the file's own LOD references against its record
// array, then drains any deferred stream references targeting this file.
func (r *Resolver) ScanWorldFile(f *TextFile) {
	for _, lodIdx := range sortedKeys(f.PendingLodRefs) {
		highIdx := f.PendingLodRefs[lodIdx]
		if lodIdx < 0 || lodIdx >= len(f.Records) {
			continue
		}
		r.assign(f.Records[highIdx].ModelID, f.Records[lodIdx].ModelID, f.Name)
	}

	canonical := CanonicalWorldName(f.Name)
	deferred, ok := r.pending[canonical]
	if !ok {
		return
	}
	for _, lodIdx := range sortedKeys(deferred) {
		if lodIdx < 0 || lodIdx >= len(f.Records) {
			r.log.Warning("Deferred reference points past the record array",
				"file", f.Name, "index", lodIdx)
			continue
		}
		r.assign(deferred[lodIdx], f.Records[lodIdx].ModelID, f.Name)
	}
	delete(r.pending, canonical)
}

// assign applies the single-assignment rule: the first low-detail assignment
// for a high-detail model wins, and later diverging proposals are dropped
// with a warning.
func (r *Resolver) assign(highID, lowID int32, file string) {
	if existing, ok := r.table[highID]; ok {
		if existing.LowID == lowID {
			return
		}
		conflict := errors.LodConflictError{
			ModelID:      highID,
			AssignedID:   existing.LowID,
			AssignedFile: existing.File,
			ProposedID:   lowID,
			ProposedFile: file,
		}
		r.log.Warning("Rejecting conflicting LOD assignment", "err", conflict.Error())
		r.stats.Conflicts++
		metrics.Simple(metrics.ResolverConflicts, 1)
		return
	}

	r.table[highID] = Assignment{LowID: lowID, File: file}
	r.stats.Resolutions++
	metrics.Simple(metrics.ResolverResolutions, 1)
}

func (r *Resolver) Stats() ResolverStats { return r.stats }

// PendingTargets returns the canonical names of world files that deferred
// references still wait on, sorted. A non-empty result after the world pass
// means some stream file pointed at a world file the batch never saw.
func (r *Resolver) PendingTargets() []string {
	targets := sortedKeys(r.pending)
	for _, t := range targets {
		metrics.Simple(metrics.ResolverUnresolved, float64(len(r.pending[t])))
	}
	return targets
}

// Entries returns the resolved table ordered by ascending high-detail model
// ID.
func (r *Resolver) Entries() []Entry {
	entries := make([]Entry, 0, len(r.table))
	for _, highID := range sortedKeys(r.table) {
		a := r.table[highID]
		entries = append(entries, Entry{HighID: highID, LowID: a.LowID, File: a.File})
	}
	return entries
}

// WriteTable serializes the resolved table as the literal-array source
// fragment consumed downstream. The shape, doubled braces included, is a
// compatibility boundary and must not change.
func (r *Resolver) WriteTable(w io.Writer) error {
	entries := r.Entries()
	var b strings.Builder
	fmt.Fprintf(&b, "// Total: %d\n", len(entries))
	b.WriteString("OBJ_LOD_MODELS = {{\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "{%d, %d}, // %s => %s (%s)\n",
			e.HighID, e.LowID,
			r.models.ModelName(e.HighID), r.models.ModelName(e.LowID), e.File)
	}
	b.WriteString("}};\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// CanonicalWorldName derives the canonical identity of a world placement
// file: the extension (last four characters) is dropped and the remainder is
// lower-cased.
func CanonicalWorldName(name string) string {
	name = strings.ToLower(name)
	if len(name) > 4 {
		return name[:len(name)-4]
	}
	return name
}

// CanonicalStreamTarget derives, from a stream file's name, the canonical
// identity of the world file it references: everything from the first
// "_stream" occurrence onward is dropped and the remainder is lower-cased.
// Returns false when the name carries no such suffix.
func CanonicalStreamTarget(name string) (string, bool) {
	name = strings.ToLower(name)
	idx := strings.Index(name, "_stream")
	if idx < 0 {
		return "", false
	}
	return name[:idx], true
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
