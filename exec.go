package identicon

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/esimov/identicon/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the batch generation parameters.
type Ops struct {
	// Src is a text file with one identity per line, or PipeName to read stdin.
	Src string
	// Dst is the directory receiving one image per identity. It is created if missing.
	Dst      string
	PipeName string
	// Ext selects the output container (see ExportExtensions). Empty means the
	// extension of the renderer selected by Options.Format.
	Ext     string
	Workers int
	// Spinner, when not nil, shows the progress.
	Spinner *utils.Spinner
}

// result holds the outcome of generating one identicon.
type result struct {
	path string
	err  error
}

// HashIdentity returns the hex encoded SHA-256 of an identity (user name, e-mail, id).
func HashIdentity(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])
}

// Execute generates an identicon for every identity listed in op.Src, using a pool
// of op.Workers goroutines. It returns the paths of the written files, in
// completion order, and the first error encountered.
func (o Options) Execute(op *Ops) ([]string, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	ext := op.Ext
	if ext == "" {
		r, _ := o.Format.Renderer()
		ext = r.Ext()
	}
	if !isValidExtension(strings.ToLower(ext), ExportExtensions) {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "file extension %q", ext)
	}

	src, err := op.source()
	if err != nil {
		return nil, err
	}
	if c, ok := src.(io.Closer); ok && src != os.Stdin {
		defer c.Close()
	}

	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	if op.Spinner != nil {
		op.Spinner.Start()
		defer op.Spinner.Stop()
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	identities, errc := readIdentities(done, src)
	claimed := newNameSet()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			o.consumer(op.Dst, ext, claimed, ch, done, identities)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var (
		paths    []string
		firstErr error
	)
	for res := range ch {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		paths = append(paths, res.path)
		if op.Spinner != nil {
			op.Spinner.SetMessage(fmt.Sprintf("%s %s",
				utils.DecorateText("⚡ IDENTICON", utils.StatusMessage),
				utils.DecorateText(fmt.Sprintf("⇢ %d generated", len(paths)), utils.DefaultMessage),
			))
		}
	}
	if err := <-errc; err != nil && firstErr == nil {
		firstErr = err
	}
	return paths, firstErr
}

// source opens the identity list.
func (op *Ops) source() (io.Reader, error) {
	if op.Src == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, nil
	}
	f, err := os.Open(op.Src)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, nil
}

// consumer reads identities from the channel, renders each into its own file
// and sends the outcome on the results channel.
func (o Options) consumer(
	dest, ext string,
	claimed *nameSet,
	res chan<- result,
	done <-chan struct{},
	identities <-chan string,
) {
	for id := range identities {
		name := FileName(id)
		path := filepath.Join(dest, name+ext)
		err := claimed.claim(name, id)
		if err == nil {
			err = o.generate(id, path, ext)
		}

		select {
		case <-done:
			return
		case res <- result{
			path: path,
			err:  err,
		}:
		}
	}
}

// generate renders one identity. The file is written only once the encoding succeeded.
func (o Options) generate(identity, path, ext string) error {
	ic, err := New(HashIdentity(identity), &o)
	if err != nil {
		return errors.Wrapf(err, "identity %q", identity)
	}
	var buf bytes.Buffer
	if err := Export(&buf, ext, ic); err != nil {
		return errors.Wrapf(err, "identity %q", identity)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}

// readIdentities starts a goroutine reading the source line by line and sending
// every non empty, trimmed line on the returned channel. Repeated lines are sent once.
// It finishes early in case the done channel is getting closed.
func readIdentities(done <-chan struct{}, r io.Reader) (<-chan string, <-chan error) {
	idChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(idChan)

		seen := make(map[string]bool)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			select {
			case <-done:
				errChan <- errors.New("identity read cancelled")
				return
			case idChan <- line:
			}
		}
		errChan <- scanner.Err()
	}()
	return idChan, errChan
}

// FileName turns an identity into a safe file name: letters, digits, dots,
// dashes and underscores are kept, everything else becomes an underscore.
// When a character had to be replaced, the first eight hex digits of the
// identity hash are appended, so "a@b" and "a_b" get different files.
// Identities made only of unsafe characters are named after their hash.
func FileName(identity string) string {
	var (
		sb   strings.Builder
		safe int
	)
	for _, r := range identity {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
			safe++
		case r == '.' && sb.Len() > 0:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if safe == 0 {
		return HashIdentity(identity)[:16]
	}
	if name := sb.String(); name != identity {
		return name + "-" + HashIdentity(identity)[:8]
	}
	return identity
}

// nameSet records the file names claimed during one batch.
type nameSet struct {
	mu    sync.Mutex
	names map[string]string
}

func newNameSet() *nameSet {
	return &nameSet{names: make(map[string]string)}
}

// claim reserves name for identity. It fails when another identity holds it already.
func (s *nameSet) claim(name, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.names[name]; ok && prev != identity {
		return errors.Wrapf(ErrInvalidInput, "identities %q and %q map to the same file %q", prev, identity, name)
	}
	s.names[name] = identity
	return nil
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
