package profile

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler controls the lifecycle of runtime profiling sessions.
//
// Call [Profiler.Start] to begin profiling and [Profiler.Stop] to write all
// enabled profiles.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile   *os.File
	traceFile *os.File
	Config
}

// Start configures runtime profiling rates, then starts CPU profiling and
// execution tracing if enabled. Call [Profiler.Stop] when profiling is
// complete to write snapshot profiles.
func (c *Profiler) Start() error {
	// Configure profiling rates.
	runtime.MemProfileRate = c.MemProfileRate
	runtime.SetBlockProfileRate(c.BlockProfileRate)
	runtime.SetMutexProfileFraction(c.MutexProfileFraction)

	// Start CPU profiling if enabled.
	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		c.cpuFile = f

		err = pprof.StartCPUProfile(f)
		if err != nil {
			must(c.cpuFile.Close())

			c.cpuFile = nil

			return fmt.Errorf("starting CPU profile: %w", err)
		}
	}

	// Start execution tracing if enabled.
	if c.Trace != "" {
		f, err := os.Create(c.Trace) //nolint:gosec // Trace path from CLI flag is expected.
		if err != nil {
			must(c.stopCPU())

			return fmt.Errorf("creating execution trace: %w", err)
		}

		c.traceFile = f

		err = trace.Start(f)
		if err != nil {
			must(c.traceFile.Close())

			c.traceFile = nil

			must(c.stopCPU())

			return fmt.Errorf("starting execution trace: %w", err)
		}
	}

	return nil
}

// Stop stops CPU profiling and execution tracing, then writes all enabled
// snapshot profiles.
func (c *Profiler) Stop() error {
	err := c.stopCPU()
	if err != nil {
		return err
	}

	err = c.stopTrace()
	if err != nil {
		return err
	}

	return c.writeSnapshots()
}

// stopCPU stops an active CPU profile and closes its file.
func (c *Profiler) stopCPU() error {
	if c.cpuFile == nil {
		return nil
	}

	pprof.StopCPUProfile()

	err := c.cpuFile.Close()
	c.cpuFile = nil

	if err != nil {
		return fmt.Errorf("closing CPU profile: %w", err)
	}

	return nil
}

// stopTrace stops an active execution trace and closes its file.
func (c *Profiler) stopTrace() error {
	if c.traceFile == nil {
		return nil
	}

	trace.Stop()

	err := c.traceFile.Close()
	c.traceFile = nil

	if err != nil {
		return fmt.Errorf("closing execution trace: %w", err)
	}

	return nil
}

// writeSnapshots writes all enabled snapshot profiles (heap, allocs, goroutine,
// etc.).
func (c *Profiler) writeSnapshots() error {
	profiles := []struct {
		name string
		path string
	}{
		{"heap", c.HeapProfile},
		{"allocs", c.AllocsProfile},
		{"goroutine", c.GoroutineProfile},
		{"threadcreate", c.ThreadcreateProfile},
		{"block", c.BlockProfile},
		{"mutex", c.MutexProfile},
	}

	for _, p := range profiles {
		if p.path == "" {
			continue
		}

		err := c.writeProfile(p.name, p.path)
		if err != nil {
			return fmt.Errorf("write %s profile: %w", p.name, err)
		}
	}

	return nil
}

// writeProfile writes a named pprof profile to the given file path.
func (c *Profiler) writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	prof := pprof.Lookup(name)
	if prof == nil {
		must(f.Close())

		return fmt.Errorf("unknown profile: %s", name)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		must(f.Close())

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("write %s profile: %w", name, err)
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
