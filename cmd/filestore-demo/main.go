// Command filestore-demo walks through the simulated block device and
// exercises a replicated store on top of it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash"
	"github.com/zeebo/errs"
	"github.com/zeebo/filestore"
	"github.com/zeebo/filestore/device"
	"github.com/zeebo/filestore/internal/pcg"
)

// Error is the class that contains all the errors from this command.
var Error = errs.Class("demo")

func main() {
	def := filestore.DefaultConfig()
	var (
		mode     = flag.String("mode", "store", "what to demo: device or store")
		replicas = flag.Int("replicas", 3, "replicas per block")
		timeout  = flag.Duration("timeout", def.Timeout, "timeout for a single block write")
		blocks   = flag.Int("blocks", def.BlockCount, "blocks on the device")
		size     = flag.Int("block-size", def.BlockSize, "bytes per block")
		rate     = flag.Float64("rate", 0.01, "corruption rate of every access")
		files    = flag.Int("files", 20, "files to put and get back")
		maxLen   = flag.Int("max-len", 64, "maximum file length")
		seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
		verbose  = flag.Bool("v", false, "log every operation")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := filestore.NewTextLogger(level)

	var err error
	switch *mode {
	case "device":
		err = runDevice(os.Stdout, *seed)
	case "store":
		err = runStore(os.Stdout, storeParams{
			cfg: filestore.Config{
				Replicas:       *replicas,
				Timeout:        *timeout,
				BlockCount:     *blocks,
				BlockSize:      *size,
				CorruptionRate: *rate,
			},
			files:  *files,
			maxLen: *maxLen,
			seed:   *seed,
			logger: logger,
		})
	default:
		err = Error.New("unknown mode: %q", *mode)
	}

	if err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

// runDevice shows truncation, merging, and sticky corruption on a device.
func runDevice(w io.Writer, seed uint64) error {
	dev := device.New(device.DefaultBlockCount, device.DefaultBlockSize, 0, device.WithSeed(seed))

	step := func(what string, fn func() ([]byte, error)) error {
		got, err := fn()
		if err != nil {
			return Error.Wrap(err)
		}
		fmt.Fprintf(w, "%s: %s\n", what, got)
		return nil
	}
	write := func(content string) func() ([]byte, error) {
		return func() ([]byte, error) { return dev.Write(0, []byte(content)) }
	}
	read := func() ([]byte, error) { return dev.Read(0) }

	for _, s := range []struct {
		what string
		fn   func() ([]byte, error)
	}{
		{"Writing '12345678' to the block device", write("12345678")},
		{"Reading from the block device", read},
		// longer content is truncated
		{"Writing '123456789' to the block device", write("123456789")},
		// shorter content keeps the existing tail
		{"Writing 'abcd' to the block device", write("abcd")},
	} {
		if err := step(s.what, s.fn); err != nil {
			return err
		}
	}

	dev = device.New(device.DefaultBlockCount, device.DefaultBlockSize, 1, device.WithSeed(seed+1))
	if err := step("Writing '12345678' to the corrupting block device", write("12345678")); err != nil {
		return err
	}

	dev.SetCorruptionRate(0)
	if err := step("Writing '1234abcd' to the corrupting block device", write("1234abcd")); err != nil {
		return err
	}
	if err := step("Reading (no corruption)", read); err != nil {
		return err
	}

	dev.SetCorruptionRate(1)
	if err := step("Reading (corrupts)", read); err != nil {
		return err
	}

	dev.SetCorruptionRate(0)
	if err := step("Reading (original data lost)", read); err != nil {
		return err
	}

	fmt.Fprintln(w, "Success!")
	return nil
}

type storeParams struct {
	cfg    filestore.Config
	files  int
	maxLen int
	seed   uint64
	logger *filestore.Logger
}

// runStore puts random files, reads them back comparing digests, scrubs,
// and prints what happened.
func runStore(w io.Writer, p storeParams) error {
	metrics := new(filestore.BasicMetricsCollector)
	st, err := filestore.New(p.cfg,
		filestore.WithSeed(p.seed),
		filestore.WithLogger(p.logger),
		filestore.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	gen := pcg.New(p.seed, 1)
	digests := make(map[string]uint64)
	var timeouts, full int

	for i := 0; i < p.files; i++ {
		name := fmt.Sprintf("file-%04d", i)
		content := make([]byte, gen.Intn(p.maxLen+1))
		for j := range content {
			content[j] = byte('a' + gen.Intn(26))
		}

		_, err := st.Put(name, content)
		switch filestore.KindOf(err) {
		case filestore.KindUnknown:
			if err != nil {
				return err
			}
			digests[name] = xxhash.Sum64(content)
		case filestore.KindTimeout:
			timeouts++
		case filestore.KindOutOfSpace:
			full++
		default:
			return err
		}
	}

	var clean, corrupted, mismatched int
	for _, name := range st.Names() {
		got, err := st.Get(name)
		if err != nil {
			return err
		}
		switch {
		case got.IsCorrupted():
			corrupted++
		case xxhash.Sum64(got.Bytes()) != digests[name]:
			mismatched++
		default:
			clean++
		}
	}

	report, err := st.Scrub()
	if err != nil {
		return err
	}

	stats := metrics.GetStats()
	fmt.Fprintf(w, "puts: %d ok, %d timed out, %d out of space\n", len(digests), timeouts, full)
	fmt.Fprintf(w, "gets: %d clean, %d corrupted, %d mismatched\n", clean, corrupted, mismatched)
	fmt.Fprintf(w, "writes: %d blocks in %d attempts, %d repairs (%d failed)\n",
		stats.BlockWrites, stats.WriteAttempts, stats.Repairs, stats.RepairFailures)
	fmt.Fprintf(w, "scrub: %d files, %d blocks, %d repaired, %d lost\n",
		report.Files, report.Blocks, report.Repaired, len(report.Lost))
	for _, timing := range filestore.Timings() {
		fmt.Fprintf(w, "%s: %d calls, avg %v\n", timing.Name, timing.Total, timing.Average)
	}
	fmt.Fprintf(w, "free: %d bytes\n", st.Free())

	if mismatched > 0 {
		return Error.New("%d files read back different content without being marked corrupt", mismatched)
	}
	return nil
}
