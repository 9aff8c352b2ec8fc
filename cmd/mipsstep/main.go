// Command mipsstep is a minimal driver around the instruction execution
// core: it loads a raw binary image into memory, seeds the register file's
// PC, and repeatedly calls cpu.Step until the core reports failure or a
// trap, or a step budget is exhausted. There is no PPU, bus, or cartridge
// concept here — one flat memory and one register file are enough to run
// the core — but the overall shape is "parse flags, load an image, drive
// Step in a loop, report via the debug logger."
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/BurntSushi/toml"

	"mipsr6/internal/cpu"
	"mipsr6/internal/dbg"
	"mipsr6/internal/image"
	"mipsr6/internal/memory"
	"mipsr6/internal/regfile"
)

// config holds the run parameters that a TOML file may supply; CLI flags
// that were explicitly set override whatever the file contains.
type config struct {
	MemSize  uint32 `toml:"mem_size"`
	LoadAt   uint32 `toml:"load_at"`
	Entry    uint32 `toml:"entry"`
	MaxSteps int    `toml:"max_steps"`
}

func loadConfig(path string) (config, error) {
	cfg := config{MemSize: 1 << 20}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decoding config file %q", path)
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("mem-size") {
		cfg.MemSize = uint32(c.Uint("mem-size"))
	}
	if c.IsSet("load-at") {
		cfg.LoadAt = uint32(c.Uint("load-at"))
	}
	if c.IsSet("entry") {
		cfg.Entry = uint32(c.Uint("entry"))
	}
	if c.IsSet("max-steps") {
		cfg.MaxSteps = c.Int("max-steps")
	}

	imagePath := c.String("image")
	if imagePath == "" {
		return cli.Exit("an --image path is required", 1)
	}

	img, err := image.Load(imagePath, cfg.LoadAt)
	if err != nil {
		return errors.Wrap(err, "loading image")
	}

	mem := memory.New(cfg.MemSize)
	if err := img.PlaceInto(mem); err != nil {
		return errors.Wrap(err, "placing image into memory")
	}

	rf := regfile.New()
	rf.SetPC(cfg.Entry)

	trace := c.Bool("trace")
	steps := 0
	for cfg.MaxSteps <= 0 || steps < cfg.MaxSteps {
		pcBefore := rf.GetPC()
		ok, err := cpu.Step(rf, mem)
		steps++

		if trace {
			okInt := 0
			if ok {
				okInt = 1
			}
			dbg.WithField("pc", fmt.Sprintf("0x%08X", pcBefore)).
				Tracef("step %d ok=%d", steps, okInt)
		}

		if err != nil {
			return errors.Wrapf(err, "step %d at pc=0x%08X", steps, pcBefore)
		}
		if !ok {
			if exc, isSet := rf.Exception(); isSet {
				fmt.Fprintf(os.Stderr, "trap at pc=0x%08X: cause=%d raw=0x%08X\n", pcBefore, exc.Cause, exc.Raw)
			}
			break
		}
	}

	fmt.Printf("ran %d step(s)\n", steps)
	return nil
}

func main() {
	app := &cli.App{
		Name:  "mipsstep",
		Usage: "step a MIPS32 Release 6 instruction core over a raw binary image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "image", Usage: "path to a raw binary image"},
			&cli.StringFlag{Name: "config", Usage: "path to a TOML run configuration"},
			&cli.UintFlag{Name: "mem-size", Usage: "memory size in bytes", Value: 1 << 20},
			&cli.UintFlag{Name: "load-at", Usage: "address to place the image at"},
			&cli.UintFlag{Name: "entry", Usage: "initial program counter"},
			&cli.IntFlag{Name: "max-steps", Usage: "stop after this many steps (0 = unbounded)"},
			&cli.BoolFlag{Name: "trace", Usage: "log each step via the debug logger"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
