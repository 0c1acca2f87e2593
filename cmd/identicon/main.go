package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/esimov/identicon"
	"github.com/esimov/identicon/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┬┌┬┐┌─┐┌┐┌┌┬┐┬┌─┐┌─┐┌┐┌
│ ││├┤ │││ │ ││  │ ││││
┴─┴┘└─┘┘└┘ ┴ ┴└─┘└─┘┘└┘

Deterministic avatar generator.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	hash       = flag.String("hash", "", "Identity hash (at least 15 hex digits)")
	name       = flag.String("name", "", "Identity to hash with SHA-256 (user name, e-mail)")
	source     = flag.String("in", "", "File listing one identity per line, or - for stdin (batch mode)")
	dest       = flag.String("out", pipeName, "Destination file, or directory in batch mode")
	size       = flag.Int("size", 64, "Image size in pixels")
	margin     = flag.Float64("margin", 0.08, "Margin as a fraction of the image size")
	background = flag.String("bg", "#f0f0f0ff", "Background color (#rgb, #rrggbb or #rrggbbaa)")
	foreground = flag.String("fg", "", "Foreground color, derived from the hash when empty")
	saturation = flag.Float64("sat", 0.7, "Saturation of the derived color")
	brightness = flag.Float64("bright", 0.5, "Brightness of the derived color")
	format     = flag.String("format", "raster", "Output format: raster (png) or vector (svg); must agree with the -out extension when both are given")
	ext        = flag.String("ext", "", "Batch output container: .png, .svg, .jpg, .bmp, .gif or .tiff")
	encode64   = flag.Bool("base64", false, "Write the output base64 encoded")
	dataURI    = flag.Bool("datauri", false, "Write the output as a data URI")
	inspect    = flag.String("inspect", "", "Verify a PNG identicon and print its pattern")
	workers    = flag.Int("conc", runtime.NumCPU(), "Number of identicons generated concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inspect != "" {
		if err := inspectFile(*inspect, *margin); err != nil {
			fatal("Inspection failed: %v", err)
		}
		return
	}

	opts, err := options()
	if err != nil {
		flag.Usage()
		fatal("\nInvalid options: %v", err)
	}

	now := time.Now()

	switch {
	case *source != "":
		spinnerText := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ IDENTICON", utils.StatusMessage),
			utils.DecorateText("⇢ generating identicons...", utils.DefaultMessage))
		spinner := utils.NewSpinner(spinnerText, time.Millisecond*80, true)
		spinner.StopMsg = fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ IDENTICON", utils.StatusMessage),
			utils.DecorateText("⇢ done ✔\n", utils.SuccessMessage))

		op := &identicon.Ops{
			Src:      *source,
			Dst:      *dest,
			PipeName: pipeName,
			Ext:      *ext,
			Workers:  *workers,
			Spinner:  spinner,
		}
		if *dest == pipeName {
			fatal("Please provide a destination directory with -out in batch mode!")
		}
		paths, err := opts.Execute(op)
		if err != nil {
			fatal("\nError generating the identicons: %s", err.Error())
		}
		fmt.Fprintf(os.Stderr, "\n%d identicons saved in: %s\n",
			len(paths), utils.DecorateText(*dest, utils.SuccessMessage))

	case *hash != "" || *name != "":
		h := *hash
		if *name != "" {
			h = identicon.HashIdentity(*name)
		}
		if err := single(h, opts); err != nil {
			fatal("\nError generating the identicon: %s", err.Error())
		}

	default:
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide a -hash, a -name or an -in file!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// options maps the command line flags onto identicon.Options.
func options() (identicon.Options, error) {
	opts := identicon.DefaultOptions()
	opts.Size = *size
	opts.Margin = *margin
	opts.Saturation = *saturation
	opts.Brightness = *brightness

	f, err := identicon.ParseFormat(*format)
	if err != nil {
		return opts, err
	}
	opts.Format = f

	bg, err := utils.HexToNRGBA(*background)
	if err != nil {
		return opts, err
	}
	opts.Background = bg

	if *foreground != "" {
		fg, err := utils.HexToNRGBA(*foreground)
		if err != nil {
			return opts, err
		}
		opts.Foreground = &fg
	}
	return opts, opts.Validate()
}

// single generates one identicon and writes it to the destination.
func single(hash string, opts identicon.Options) error {
	var (
		out []byte
		err error
	)
	switch {
	case *dataURI:
		var s string
		s, err = identicon.DataURI(hash, opts)
		out = []byte(s + "\n")
	case *encode64:
		var s string
		s, err = identicon.GenerateBase64(hash, opts)
		out = []byte(s + "\n")
	case *dest != pipeName && filepath.Ext(*dest) != "":
		// The destination extension decides the container, like "avatar.jpg".
		if err := checkContainer(isFlagSet("format"), opts.Format, *dest); err != nil {
			return err
		}
		var ic *identicon.Identicon
		ic, err = identicon.New(hash, &opts)
		if err == nil {
			var buf bytes.Buffer
			err = identicon.ExportFile(&buf, *dest, ic)
			out = buf.Bytes()
		}
	default:
		out, err = identicon.Generate(hash, opts)
	}
	if err != nil {
		return err
	}

	dst, err := destination(*dest, utils.DetectContentType(out))
	if err != nil {
		return err
	}
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}()
	}
	if _, err := dst.Write(out); err != nil {
		return err
	}
	if *dest != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe identicon has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(*dest), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
	return nil
}

// checkContainer rejects an explicit -format the destination extension contradicts:
// only ".svg" holds vector output and ".svg" holds nothing else.
func checkContainer(explicit bool, f identicon.Format, dest string) error {
	if !explicit {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(dest))
	if (f == identicon.Vector) != (ext == ".svg") {
		return fmt.Errorf("-format %s conflicts with the %q destination extension", f, ext)
	}
	return nil
}

// isFlagSet reports whether the flag was given on the command line.
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// destination converts the destination path to a writable file.
// Binary output is never written to a terminal.
func destination(out, contentType string) (io.Writer, error) {
	if out == pipeName {
		if strings.HasPrefix(contentType, "image/") && contentType != "image/svg+xml" &&
			term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %v", err)
	}
	return f, nil
}

// inspectFile verifies a PNG identicon and prints what it found.
func inspectFile(path string, margin float64) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := identicon.Inspect(b)
	if err != nil {
		return err
	}
	fmt.Printf("chunks:   %s\n", strings.Join(info.Chunks, " "))
	fmt.Printf("size:     %dx%d\n", info.Size, info.Size)
	fmt.Printf("palette:  %v\n", info.Palette)
	fmt.Printf("adler32:  %08x\n", info.Adler32)
	fmt.Printf("pattern:\n%s\n", info.Grid(margin))
	return nil
}

func fatal(format string, args ...interface{}) {
	log.Fatal(utils.DecorateText(fmt.Sprintf(format, args...), utils.ErrorMessage))
}
