package ipl

import (
	"bytes"
	errs "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-stdlog/stdlog"
	"github.com/heyvito/gommap"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/loaderkit/ipl/errors"
	"github.com/loaderkit/ipl/internal"
	"github.com/loaderkit/ipl/internal/lockfile"
	"github.com/loaderkit/ipl/internal/metrics"
)

// LockFileName is the name of the advisory lock guarding a batch output
// location.
const LockFileName = ".ipl-batch.lock"

// Batch runs directory-level operations: bulk binary-to-text conversion and
// the two-pass LOD resolution. Failures are scoped to a single file; the
// batch always continues.
type Batch struct {
	config Config
	log    stdlog.Logger
}

func NewBatch(config Config) *Batch {
	return &Batch{config: config, log: config.GetLogger().Named("batch")}
}

// ConvertAll converts every binary placement file under inDir into a text
// file of the same base name under outDir. Files that do not start with the
// binary magic are skipped. The output directory is locked for the duration
// of the run.
func (b *Batch) ConvertAll(inDir, outDir string) error {
	lock, err := b.acquireLock(outDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()
	done := metrics.Measure(metrics.BatchRunLatency)
	defer done()

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("failed listing %s: %w", inDir, err)
	}

	var converted, failed int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(inDir, entry.Name())
		dst := filepath.Join(outDir, swapExtension(entry.Name(), ".ipl"))
		if err = b.ConvertFile(src, dst); err != nil {
			b.log.Error(err, "Skipping file", "file", entry.Name())
			metrics.Simple(metrics.BatchFileFailures, 1)
			failed++
			continue
		}
		metrics.Simple(metrics.BatchFilesConverted, 1)
		converted++
	}

	b.log.Info("Batch conversion finished", "converted", converted, "failed", failed)
	return nil
}

// ConvertFile converts a single binary placement file. dst may live anywhere;
// no lock is taken.
func (b *Batch) ConvertFile(src, dst string) error {
	buf, release, err := mapFile(src)
	if err != nil {
		return fmt.Errorf("failed reading %s: %w", src, err)
	}
	defer release()

	f, err := Decode(buf, b.config)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	out := EncodeText(f.Objects, f.Cars, EncodeOptions{
		Comment: "converted from " + filepath.Base(src),
		Models:  b.config.GetModels(),
	})
	if err = os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("failed writing %s: %w", dst, err)
	}

	b.log.Debug("Converted file", "src", src, "dst", dst,
		"objects", len(f.Objects), "cars", len(f.Cars))
	return nil
}

// ResolveLods runs the two-pass LOD resolution: every stream file under
// streamDir is scanned first, parking its references, and only then are the
// world files under worldDir scanned, performing the actual resolutions. The
// resulting table is written to outPath. Stream inputs may be pre-decoded
// text files or raw binaries; the latter are decoded in memory.
func (b *Batch) ResolveLods(streamDir, worldDir, outPath string) error {
	lock, err := b.acquireLock(filepath.Dir(outPath))
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()
	done := metrics.Measure(metrics.BatchRunLatency)
	defer done()

	r := NewResolver(b.config)

	// The stream pass must complete before the first world file is
	// scanned: a world file's scan also drains deferred references
	// accumulated up to that point.
	if err = b.eachFile(streamDir, func(f *TextFile) { r.ScanStreamFile(f) }); err != nil {
		return err
	}
	if err = b.eachFile(worldDir, func(f *TextFile) { r.ScanWorldFile(f) }); err != nil {
		return err
	}

	for _, target := range r.PendingTargets() {
		b.log.Warning("Deferred references never found their world file", "target", target)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed creating %s: %w", outPath, err)
	}
	if err = r.WriteTable(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed writing %s: %w", outPath, err)
	}
	if err = out.Close(); err != nil {
		return err
	}

	stats := r.Stats()
	b.log.Info("LOD resolution finished",
		"resolved", stats.Resolutions,
		"conflicts", stats.Conflicts,
		"deferred", stats.Deferrals,
	)
	return nil
}

func (b *Batch) eachFile(dir string, fn func(*TextFile)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed listing %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == LockFileName {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			b.log.Error(err, "Skipping unreadable file", "file", path)
			metrics.Simple(metrics.BatchFileFailures, 1)
			continue
		}

		var f *TextFile
		if bytes.HasPrefix(data, internal.Magic) {
			bf, err := Decode(data, b.config)
			if err != nil {
				b.log.Error(err, "Skipping undecodable file", "file", path)
				metrics.Simple(metrics.BatchFileFailures, 1)
				continue
			}
			f = bf.TextFile(entry.Name(), b.config.GetModels())
		} else {
			f = ParseText(entry.Name(), data, b.config)
		}
		fn(f)
	}
	return nil
}

// acquireLock leases the batch lock inside dir. Beyond the flock lease, the
// PID recorded in the file is cross-checked for liveness, since a lease can
// be lost across container boundaries while the owner still runs.
func (b *Batch) acquireLock(dir string) (*lockfile.Lock, error) {
	path := filepath.Join(dir, LockFileName)
	lock, err := lockfile.Acquire(path)
	if errs.Is(err, lockfile.ErrHeld) {
		return nil, errors.BatchLockedError{PID: recordedPID(path)}
	}
	if err != nil {
		return nil, err
	}

	pid, err := lock.OwnerPID()
	if err != nil {
		_ = lock.Release()
		return nil, err
	}
	if pid != 0 && pid != os.Getpid() && pidRunning(pid) {
		_ = lock.Release()
		return nil, errors.BatchLockedError{PID: pid}
	}

	if err = lock.WriteOwnerPID(os.Getpid()); err != nil {
		_ = lock.Release()
		return nil, err
	}
	return lock, nil
}

func pidRunning(pid int) bool {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	return err == nil && running
}

func recordedPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 8 {
		return 0
	}
	var pid int
	for _, c := range data[:8] {
		pid = pid<<8 | int(c)
	}
	return pid
}

// mapFile maps path read-only. The returned release function unmaps and
// closes the file. Empty files cannot be mapped and come back as a nil
// buffer.
func mapFile(path string) ([]byte, func(), error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	stat, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return nil, nil, err
	}
	if stat.Size() == 0 {
		return nil, func() { _ = fd.Close() }, nil
	}

	mapped, err := gommap.Map(fd.Fd(), gommap.PROT_READ, gommap.MAP_SHARED)
	if err != nil {
		_ = fd.Close()
		return nil, nil, err
	}
	return mapped, func() {
		_ = mapped.UnsafeUnmap()
		_ = fd.Close()
	}, nil
}

func swapExtension(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
